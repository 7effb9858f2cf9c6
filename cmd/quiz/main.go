package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	practicesession "github.com/remaimber-it/quiztrainer/internal/domain/practice_session"
	"github.com/remaimber-it/quiztrainer/internal/domain/questionbank"
	"github.com/remaimber-it/quiztrainer/internal/infrastructure/config"
	"github.com/remaimber-it/quiztrainer/internal/infrastructure/console"
	"github.com/remaimber-it/quiztrainer/internal/service"
	"github.com/remaimber-it/quiztrainer/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	// ── Question bank ───────────────────────────────────────────────
	bank, err := store.Load(ctx, cfg.File)
	if err != nil {
		return reportLoadError(stderr, logger, cfg.File, err)
	}
	logger.Info("question bank loaded", "path", cfg.File, "questions", bank.Len())

	if cfg.Output != "" {
		if err := writeBank(ctx, bank, cfg.Output); err != nil {
			logger.Error("failed to write question bank", "path", cfg.Output, "error", err)
			fmt.Fprintf(stderr, "Error: could not write %s: %v\n", cfg.Output, err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote %d questions to %s\n", bank.Len(), cfg.Output)
		return 0
	}

	// ── Session ─────────────────────────────────────────────────────
	session := practicesession.NewWithConfig(bank, practicesession.SessionConfig{
		MaxQuestions: cfg.Number,
		MatchMode:    practicesession.MatchMode(cfg.MatchMode),
	})

	out := console.New(stdout, cfg.Color)
	runner := service.NewQuizRunner(stdin, out, logger, service.RunOptions{
		ShowExplanations: cfg.ShowExplanations,
	})

	grade, err := runner.Run(ctx, session)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrQuit):
		return 0
	case errors.Is(err, practicesession.ErrNothingToGrade):
		fmt.Fprintln(stderr, "No questions answered; nothing to grade.")
		return 1
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stdout)
		fmt.Fprintln(stderr, "Interrupted.")
		return 130
	default:
		logger.Error("quiz failed", "session_id", session.ID, "error", err)
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	out.Printf("Your grade is %s %%\n", strconv.FormatFloat(grade, 'f', -1, 64))
	return 0
}

func reportLoadError(stderr io.Writer, logger *slog.Logger, path string, err error) int {
	if errors.Is(err, store.ErrFileNotFound) {
		fmt.Fprintf(stderr, "Error: File %s was not found.\n", path)
		return 1
	}

	logger.Error("failed to load questions", "path", path, "error", err)
	var perr *store.ParseError
	if errors.As(err, &perr) {
		fmt.Fprintf(stderr, "Error: malformed question file: %v\n", perr)
		return 1
	}
	fmt.Fprintln(stderr, "Error:", err)
	return 1
}

func writeBank(ctx context.Context, bank *questionbank.QuestionBank, path string) error {
	db, err := store.NewSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.SaveBank(ctx, bank)
}
