package console_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/remaimber-it/quiztrainer/internal/infrastructure/console"
)

func TestPaint_Plain(t *testing.T) {
	var buf bytes.Buffer
	c := console.NewWriter(&buf, false)

	c.Println(c.Success("Correct!"), c.Failure("Incorrect!"), c.Info("Explanation:"))

	if got := buf.String(); got != "Correct! Incorrect! Explanation:\n" {
		t.Errorf("expected plain output, got %q", got)
	}
}

func TestPaint_Colored(t *testing.T) {
	var buf bytes.Buffer
	c := console.NewWriter(&buf, true)

	c.Print(c.Success("Correct!"))
	c.Print(c.Failure("Incorrect!"))
	c.Print(c.Info("Explanation:"))

	want := "\033[32mCorrect!\033[0m\033[31mIncorrect!\033[0m\033[34mExplanation:\033[0m"
	if got := buf.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNew_RegularFileIsNotColored(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if console.New(f, console.ColorAuto).Colored() {
		t.Error("expected no color when writing to a regular file")
	}
	if !console.New(f, console.ColorAlways).Colored() {
		t.Error("expected color when forced")
	}
	if console.New(f, console.ColorNever).Colored() {
		t.Error("expected no color when disabled")
	}
}

func TestNew_NonFileWriter(t *testing.T) {
	var buf bytes.Buffer

	if console.New(&buf, console.ColorAuto).Colored() {
		t.Error("expected no color for an in-memory writer")
	}

	c := console.New(&buf, console.ColorAlways)
	c.Print(c.Success("ok"))
	if buf.String() != "\033[32mok\033[0m" {
		t.Errorf("expected forced color, got %q", buf.String())
	}
}
