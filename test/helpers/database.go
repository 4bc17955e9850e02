package helpers

import (
	"gorm.io/gorm"

	"github.com/andrescamacho/spaceshard-go/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory SQLite database that is closed with the test
func NewTestDB(t TB) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
