package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"lending-ledger/internal/infrastructure/db"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	DBMaxOpenConns int
	DBMaxIdleConns int

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	LogLevel  string
	LogFormat string

	UploadDir string

	// Offset of the zone block timestamps are written in; hashed verbatim.
	LedgerTZOffsetMinutes int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads .env (when present) and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "lending"),
		MySQLUser: getenv("MYSQL_USER", "lending"),
		MySQLPass: getenv("MYSQL_PASS", "lending"),

		DBMaxOpenConns: getenvInt("DB_MAX_OPEN_CONNS", db.DefaultPool.MaxOpen),
		DBMaxIdleConns: getenvInt("DB_MAX_IDLE_CONNS", db.DefaultPool.MaxIdle),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getenvInt("REDIS_DB", 0),
		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		UploadDir: getenv("UPLOAD_DIR", "uploads"),

		LedgerTZOffsetMinutes: getenvInt("LEDGER_TZ_OFFSET_MINUTES", 330),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.LedgerTZOffsetMinutes <= -24*60 || c.LedgerTZOffsetMinutes >= 24*60 {
		return fmt.Errorf("invalid LEDGER_TZ_OFFSET_MINUTES %d", c.LedgerTZOffsetMinutes)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; loc=UTC keeps loan timestamps comparable
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DBPool sizes the connection pool from the environment.
func (c *Config) DBPool() db.Pool {
	p := db.DefaultPool
	if c.DBMaxOpenConns > 0 {
		p.MaxOpen = c.DBMaxOpenConns
	}
	if c.DBMaxIdleConns >= 0 {
		p.MaxIdle = c.DBMaxIdleConns
	}
	return p
}
