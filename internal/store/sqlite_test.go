package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/remaimber-it/quiztrainer/internal/store"
)

func TestSQLite_SaveAndLoadBank(t *testing.T) {
	ctx := context.Background()
	bank, err := store.Parse(strings.NewReader(sampleFile))
	if err != nil {
		t.Fatalf("failed to parse sample: %v", err)
	}

	path := filepath.Join(t.TempDir(), "bank.db")
	db, err := store.NewSQLite(path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.SaveBank(ctx, bank); err != nil {
		t.Fatalf("failed to save bank: %v", err)
	}

	loaded, err := db.LoadBank(ctx, path)
	if err != nil {
		t.Fatalf("failed to load bank: %v", err)
	}

	want := bank.Questions()
	got := loaded.Questions()
	if len(got) != len(want) {
		t.Fatalf("expected %d questions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Text != want[i].Text || got[i].Explanation != want[i].Explanation {
			t.Errorf("question %d differs: got %+v, want %+v", i, got[i], want[i])
		}
		if strings.Join(got[i].Choices, "|") != strings.Join(want[i].Choices, "|") {
			t.Errorf("question %d choices: got %v, want %v", want[i].ID, got[i].Choices, want[i].Choices)
		}
		if len(got[i].CorrectIndices) != len(want[i].CorrectIndices) {
			t.Errorf("question %d correct indices: got %v, want %v", want[i].ID, got[i].CorrectIndices, want[i].CorrectIndices)
		}
	}
}

func TestSQLite_SaveBankReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bank.db")
	db, err := store.NewSQLite(path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	first, _ := store.Parse(strings.NewReader(sampleFile))
	second, _ := store.Parse(strings.NewReader(`9|"Only one"|"x","y"|1|"y it is"`))

	if err := db.SaveBank(ctx, first); err != nil {
		t.Fatalf("failed to save first bank: %v", err)
	}
	if err := db.SaveBank(ctx, second); err != nil {
		t.Fatalf("failed to save second bank: %v", err)
	}

	loaded, err := db.LoadBank(ctx, path)
	if err != nil {
		t.Fatalf("failed to load bank: %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("expected 1 question, got %d", loaded.Len())
	}
	if _, ok := loaded.Get(9); !ok {
		t.Error("expected question 9 to be stored")
	}
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	ctx := context.Background()
	textPath := writeFile(t, sampleFile)

	fromText, err := store.Load(ctx, textPath)
	if err != nil {
		t.Fatalf("failed to load text bank: %v", err)
	}

	dbPath := filepath.Join(t.TempDir(), "bank.sqlite")
	db, err := store.NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.SaveBank(ctx, fromText); err != nil {
		t.Fatalf("failed to save bank: %v", err)
	}
	db.Close()

	fromDB, err := store.Load(ctx, dbPath)
	if err != nil {
		t.Fatalf("failed to load sqlite bank: %v", err)
	}
	if fromDB.Len() != fromText.Len() {
		t.Errorf("expected %d questions, got %d", fromText.Len(), fromDB.Len())
	}
	if fromDB.Source != dbPath {
		t.Errorf("expected source %q, got %q", dbPath, fromDB.Source)
	}
}

func TestLoad_MissingSQLiteFile(t *testing.T) {
	_, err := store.Load(context.Background(), filepath.Join(t.TempDir(), "missing.db"))
	if !errors.Is(err, store.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestIsSQLitePath(t *testing.T) {
	tests := map[string]bool{
		"bank.db":       true,
		"bank.SQLITE":   true,
		"bank.sqlite3":  true,
		"questions.txt": false,
		"questions":     false,
	}
	for path, want := range tests {
		if got := store.IsSQLitePath(path); got != want {
			t.Errorf("IsSQLitePath(%q) = %v, want %v", path, got, want)
		}
	}
}
