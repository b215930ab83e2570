package database

import (
	"testing"

	"realme/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrateCreatesAllTables(t *testing.T) {
	t.Parallel()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	for _, model := range []any{
		&models.User{},
		&models.Profile{},
		&models.Community{},
		&models.Membership{},
		&models.Post{},
		&models.Comment{},
		&models.Admin{},
	} {
		if !db.Migrator().HasTable(model) {
			t.Fatalf("missing table for %T", model)
		}
	}

	// Migrate is idempotent; Connect runs it on every non-production boot.
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}
