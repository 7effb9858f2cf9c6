package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/remaimber-it/quiztrainer/internal/domain/questionbank"
)

var (
	ErrFileNotFound = errors.New("file not found")
)

// IsSQLitePath reports whether path names a SQLite question bank rather
// than a text question file.
func IsSQLitePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// Load reads a question bank from path, choosing the format by extension.
func Load(ctx context.Context, path string) (*questionbank.QuestionBank, error) {
	if !IsSQLitePath(path) {
		return LoadFile(path)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, notFound(path, err)
	}

	db, err := NewSQLite(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.LoadBank(ctx, path)
}

func notFound(path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	return err
}
