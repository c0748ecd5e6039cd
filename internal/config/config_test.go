package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "MYSQL_HOST", "REDIS_DB", "IDEMPOTENCY_TTL_SECONDS", "LEDGER_TZ_OFFSET_MINUTES"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.AppPort != "8080" {
		t.Fatalf("AppPort = %q", c.AppPort)
	}
	if c.IdempTTLSecs != 300 {
		t.Fatalf("IdempTTLSecs = %d", c.IdempTTLSecs)
	}
	if c.LedgerTZOffsetMinutes != 330 {
		t.Fatalf("LedgerTZOffsetMinutes = %d", c.LedgerTZOffsetMinutes)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate defaults: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")
	t.Setenv("LEDGER_TZ_OFFSET_MINUTES", "0")
	t.Setenv("REDIS_ADDR", "localhost:6380")

	c := Load()
	if c.RedisDB != 3 || c.IdempTTLSecs != 60 || c.LedgerTZOffsetMinutes != 0 || c.RedisAddr != "localhost:6380" {
		t.Fatalf("overrides not applied: %+v", c)
	}
}

func TestLoad_IgnoresGarbageInts(t *testing.T) {
	t.Setenv("REDIS_DB", "x")
	if c := Load(); c.RedisDB != 0 {
		t.Fatalf("RedisDB = %d, want 0", c.RedisDB)
	}
}

func TestValidate(t *testing.T) {
	c := Load()
	c.MySQLHost = ""
	if err := c.Validate(); err == nil {
		t.Fatal("want error for missing host")
	}

	c = Load()
	c.MySQLPort = "not-a-port"
	if err := c.Validate(); err == nil {
		t.Fatal("want error for bad port")
	}

	c = Load()
	c.LedgerTZOffsetMinutes = 24 * 60
	if err := c.Validate(); err == nil {
		t.Fatal("want error for out-of-range offset")
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "h", MySQLPort: "3306", MySQLDB: "d"}
	dsn := c.MySQLDSN()
	if !strings.HasPrefix(dsn, "u:p@tcp(h:3306)/d?") || !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("dsn = %q", dsn)
	}
}

func TestDBPool(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "5")
	t.Setenv("DB_MAX_IDLE_CONNS", "")
	p := Load().DBPool()
	if p.MaxOpen != 5 || p.MaxIdle != 10 {
		t.Fatalf("pool = %+v", p)
	}
}
