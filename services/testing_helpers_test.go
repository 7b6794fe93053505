package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/AriJaya07/voyra-tour-bali/config"
	"github.com/AriJaya07/voyra-tour-bali/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// One connection keeps the in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// decodePatch builds a patch document the way gin binds it from a request body.
func decodePatch[T any](t *testing.T, body string) T {
	t.Helper()
	var out T
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return out
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) models.Category {
	t.Helper()
	c := models.Category{Name: name, Slug: slug}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return c
}

func seedDestination(t *testing.T, db *gorm.DB, categoryID uint, title string, price float64) models.Destination {
	t.Helper()
	d := models.Destination{Title: title, Description: title + " description", Price: price, CategoryID: categoryID}
	if err := db.Create(&d).Error; err != nil {
		t.Fatalf("seed destination: %v", err)
	}
	return d
}

func seedPackage(t *testing.T, db *gorm.DB, title string, price float64, categoryID, destinationID *uint) models.Package {
	t.Helper()
	p := models.Package{Title: title, Description: title + " description", Price: price, CategoryID: categoryID, DestinationID: destinationID}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed package: %v", err)
	}
	return p
}

func uintPtr(v uint) *uint { return &v }

func expectValidation(t *testing.T, err error, msg string) {
	t.Helper()
	var v *ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("expected validation error %q, got %v", msg, err)
	}
	if v.Message != msg {
		t.Fatalf("expected message %q, got %q", msg, v.Message)
	}
}

func expectConflict(t *testing.T, err error, msg string) {
	t.Helper()
	var c *ConflictError
	if !errors.As(err, &c) {
		t.Fatalf("expected conflict %q, got %v", msg, err)
	}
	if c.Message != msg {
		t.Fatalf("expected message %q, got %q", msg, c.Message)
	}
}

func expectNotFound(t *testing.T, err error, msg string) {
	t.Helper()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != msg {
		t.Fatalf("expected %q, got %q", msg, err.Error())
	}
}

// fakeHost records calls instead of talking to a hosted image service.
type fakeHost struct {
	mu         sync.Mutex
	uploads    int
	destroyed  []string
	assets     map[string]bool
	uploadErr  error
	destroyErr error
}

func newFakeHost() *fakeHost { return &fakeHost{assets: map[string]bool{}} }

func (h *fakeHost) Upload(_ context.Context, data []byte, folder, publicID string) (string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.uploads++
	if h.uploadErr != nil {
		return "", "", h.uploadErr
	}
	id := folder + "/" + publicID
	h.assets[id] = true
	return fmt.Sprintf("https://res.example.com/demo/image/upload/v1/%s.png", id), id, nil
}

func (h *fakeHost) Destroy(_ context.Context, publicID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyErr != nil {
		return h.destroyErr
	}
	h.destroyed = append(h.destroyed, publicID)
	delete(h.assets, publicID)
	return nil
}

func (h *fakeHost) uploadCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.uploads
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
