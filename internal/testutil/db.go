// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"orfanato-app/database"
	"orfanato-app/internal/api/pagesvc"
	"orfanato-app/internal/domain/media"
	"orfanato-app/internal/domain/route"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory sqlite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), database.Config(zerolog.Nop()))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the in-memory database alive and serialises access
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// FakeStorage records uploads and deletes. Set FailUpload or FailDelete to
// make the corresponding call return an error.
type FakeStorage struct {
	mu         sync.Mutex
	Uploaded   []string
	Deleted    []string
	FailUpload error
	FailDelete error
}

var _ media.Storage = (*FakeStorage)(nil)

func (f *FakeStorage) Upload(_ context.Context, file *media.File) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailUpload != nil {
		return "", f.FailUpload
	}
	url := fmt.Sprintf("https://orfanato.s3.amazonaws.com/test/uploads/%d_%s", len(f.Uploaded)+1, file.OriginalName)
	f.Uploaded = append(f.Uploaded, url)
	return url, nil
}

func (f *FakeStorage) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, url)
	return f.FailDelete
}

func (f *FakeStorage) DeleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Deleted)
}

// PNG returns a small in-memory file for multipart fixtures.
func PNG(field, name string) *media.File {
	data := []byte("\x89PNG\r\n\x1a\nfake")
	return &media.File{
		FieldName:    field,
		OriginalName: name,
		ContentType:  "image/png",
		Size:         int64(len(data)),
		Data:         data,
	}
}

// NewDeps wires the content services to db and store.
func NewDeps(db *gorm.DB, store media.Storage) pagesvc.Deps {
	log := zerolog.Nop()
	return pagesvc.Deps{
		DB:      db,
		Media:   media.NewProcessor(log),
		Routes:  route.NewService(db, log),
		Storage: store,
		Log:     log,
	}
}
