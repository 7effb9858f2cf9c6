package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/remaimber-it/quiztrainer/internal/infrastructure/console"
)

// ErrUsage marks errors caused by bad command-line arguments or settings.
var ErrUsage = errors.New("usage error")

type Config struct {
	File             string `validate:"required"`
	Number           *int   `validate:"omitempty,gte=0"` // nil = every question
	ShowExplanations bool
	Output           string // optional SQLite bank to write instead of quizzing

	Color     console.ColorMode `validate:"oneof=auto always never"`
	LogLevel  string            `validate:"oneof=debug info warn error"`
	MatchMode string            `validate:"oneof=identity text"`
}

// settingNames maps Config fields to the flag or variable a user sets.
var settingNames = map[string]string{
	"File":      "-f/--file",
	"Number":    "-n/--number",
	"Color":     "QUIZ_COLOR",
	"LogLevel":  "QUIZ_LOG_LEVEL",
	"MatchMode": "QUIZ_MATCH_MODE",
}

var validate = validator.New()

// Load reads settings from the environment (and a .env file if one exists),
// then applies command-line flags from args on top.
func Load(args []string, stderr io.Writer) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Color:     colorFromEnv(),
		LogLevel:  strings.ToLower(getenvDefault("QUIZ_LOG_LEVEL", "warn")),
		MatchMode: strings.ToLower(getenvDefault("QUIZ_MATCH_MODE", "identity")),
	}

	fs := flag.NewFlagSet("quiz", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Take a test.")
		fmt.Fprintln(fs.Output(), "\nUsage: quiz -f <file> [-n <number>] [-e] [-o <bank.db>]")
		fs.PrintDefaults()
	}

	var number int
	fs.StringVar(&cfg.File, "f", "", "questions file (shorthand)")
	fs.StringVar(&cfg.File, "file", "", "questions file")
	fs.IntVar(&number, "n", 0, "number of questions (shorthand)")
	fs.IntVar(&number, "number", 0, "number of questions")
	fs.BoolVar(&cfg.ShowExplanations, "e", false, "provide explanations for right answers (shorthand)")
	fs.BoolVar(&cfg.ShowExplanations, "explanation", false, "provide explanations for right answers")
	fs.StringVar(&cfg.Output, "o", "", "write the questions to a SQLite bank and exit (shorthand)")
	fs.StringVar(&cfg.Output, "output", "", "write the questions to a SQLite bank and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "n" || f.Name == "number" {
			cfg.Number = &number
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the assembled configuration.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := settingNames[fe.Field()]
		if name == "" {
			name = fe.Field()
		}
		if fe.Tag() == "required" {
			msgs = append(msgs, name+" is required")
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: invalid value %v", name, fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrUsage, strings.Join(msgs, "; "))
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// colorFromEnv honours QUIZ_COLOR first, then the NO_COLOR convention.
func colorFromEnv() console.ColorMode {
	if v := os.Getenv("QUIZ_COLOR"); v != "" {
		return console.ColorMode(strings.ToLower(v))
	}
	if os.Getenv("NO_COLOR") != "" {
		return console.ColorNever
	}
	return console.ColorAuto
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
