package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"lending-ledger/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type namedCheck struct {
	name string
	p    Pinger
}

type Handler struct{ checks []namedCheck }

// NewHandler reports database health when db is non-nil.
func NewHandler(db Pinger) *Handler {
	h := &Handler{}
	if db != nil {
		h.WithCheck("database", db)
	}
	return h
}

// WithCheck adds a dependency to the health report.
func (h *Handler) WithCheck(name string, p Pinger) *Handler {
	h.checks = append(h.checks, namedCheck{name: name, p: p})
	return h
}

func (h *Handler) Health(c echo.Context) error {
	status, code := "ok", http.StatusOK
	body := map[string]any{}
	if len(h.checks) > 0 {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		checks := make(map[string]string, len(h.checks))
		for _, chk := range h.checks {
			if err := chk.p.PingContext(ctx); err != nil {
				checks[chk.name] = "down"
				status, code = "degraded", http.StatusServiceUnavailable
				continue
			}
			checks[chk.name] = "up"
		}
		body["checks"] = checks
	}
	body["status"] = status
	body["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	return c.JSON(code, body)
}

func uintParam(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	return n, err == nil && n > 0
}

// actorAllowed reports whether the request's actor is admin or exactly role_<id>.
func actorAllowed(c echo.Context, role string, id uint64) bool {
	r, n, ok := middleware.ParseActor(middleware.Actor(c))
	if !ok {
		return false
	}
	return r == "admin" || (r == role && n == id)
}

func actorIsAdmin(c echo.Context) bool { return middleware.Actor(c) == "admin" }
