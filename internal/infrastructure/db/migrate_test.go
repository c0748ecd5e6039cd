package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrate_CreatesEveryTable(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatal(err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// second run is a no-op
	if err := Migrate(gdb); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}

	for _, table := range []string{"users", "lenders", "borrowers", "loans", "collaterals", "blocks"} {
		if !gdb.Migrator().HasTable(table) {
			t.Errorf("table %s missing", table)
		}
	}
	if !gdb.Migrator().HasIndex("blocks", "ux_blocks_prev_hash") {
		t.Error("blocks.prev_hash must carry a unique index")
	}
}
