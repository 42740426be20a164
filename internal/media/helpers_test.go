package media

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mediavault/mediavault/internal/models"
	"github.com/mediavault/mediavault/internal/storage"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Document{},
		&models.Track{},
		&models.Video{},
		&models.Game{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return gdb
}

func newTestStore(t *testing.T) *storage.DiskStore {
	t.Helper()
	return storage.NewDiskStore(t.TempDir())
}

// newStoreAt is used when the test needs to inspect the directory itself.
func newStoreAt(dir string) *storage.DiskStore {
	return storage.NewDiskStore(dir)
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// seedAt inserts a row with an explicit creation time so ordering tests are
// deterministic.
func seedAt(t *testing.T, gdb *gorm.DB, row interface{}, createdAt time.Time) {
	t.Helper()
	if err := gdb.Create(row).Error; err != nil {
		t.Fatalf("failed to seed row: %v", err)
	}
	if err := gdb.Model(row).Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("failed to set created_at: %v", err)
	}
}
