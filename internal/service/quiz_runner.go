// internal/service/quiz_runner.go
package service

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"

	practicesession "github.com/remaimber-it/quiztrainer/internal/domain/practice_session"
	"github.com/remaimber-it/quiztrainer/internal/domain/questionbank"
	"github.com/remaimber-it/quiztrainer/internal/infrastructure/console"
)

// ErrQuit is returned when the user types "exit" or input ends. The whole
// program stops and no grade is reported.
var ErrQuit = errors.New("quiz aborted by user")

// RunOptions changes what the runner prints.
type RunOptions struct {
	ShowExplanations bool // also explain correct answers
}

// QuizRunner asks the questions of a practice session one by one on a
// line-oriented terminal and keeps the session's score.
type QuizRunner struct {
	in     *bufio.Reader
	out    *console.Console
	logger *slog.Logger
	opts   RunOptions
}

// NewQuizRunner creates a QuizRunner reading answers from in.
func NewQuizRunner(in io.Reader, out *console.Console, logger *slog.Logger, opts RunOptions) *QuizRunner {
	return &QuizRunner{
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
		opts:   opts,
	}
}

type lineResult struct {
	line string
	err  error
}

// Run asks every question in the session and returns the final grade.
func (r *QuizRunner) Run(ctx context.Context, session *practicesession.PracticeSession) (float64, error) {
	r.logger.Info("session started",
		"session_id", session.ID,
		"source", session.Source,
		"questions", len(session.Questions),
		"match_mode", session.MatchMode,
	)

	for _, q := range session.Questions {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		outcome, err := r.AskQuestion(ctx, session, q)
		if err != nil {
			if errors.Is(err, ErrQuit) {
				r.logger.Info("session aborted",
					"session_id", session.ID,
					"answered", session.Answered(),
				)
			}
			return 0, err
		}

		session.Record(outcome)
		r.report(q, outcome)
	}

	grade, err := session.Grade()
	if err != nil {
		return 0, err
	}

	r.logger.Info("session finished",
		"session_id", session.ID,
		"correct", session.Correct,
		"incorrect", session.Incorrect,
		"grade", grade,
	)
	return grade, nil
}

// AskQuestion shows q with freshly shuffled choices, reads one answer and
// judges it. It does not touch the session's score.
func (r *QuizRunner) AskQuestion(ctx context.Context, session *practicesession.PracticeSession, q questionbank.Question) (practicesession.Outcome, error) {
	p, err := session.Present(q)
	if err != nil {
		return practicesession.Incorrect, err
	}

	r.out.Println(q.Text)
	for _, c := range p.Choices {
		r.out.Printf("\t %s) %s\n", c.Label, c.Text)
	}
	r.out.Print("Answer: ")

	line, err := r.readLine(ctx)
	if errors.Is(err, io.EOF) && line == "" {
		r.out.Println()
		return practicesession.Incorrect, ErrQuit
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return practicesession.Incorrect, err
	}

	if practicesession.IsExit(line) {
		return practicesession.Incorrect, ErrQuit
	}

	outcome := p.Judge(line)
	r.logger.Debug("answer judged",
		"session_id", session.ID,
		"question_id", q.ID,
		"correct_labels", p.CorrectLabels(),
		"outcome", outcome.String(),
	)
	return outcome, nil
}

// readLine waits for one line of input or for ctx to end.
func (r *QuizRunner) readLine(ctx context.Context) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := r.in.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.line, res.err
	}
}

func (r *QuizRunner) report(q questionbank.Question, outcome practicesession.Outcome) {
	if outcome == practicesession.Correct {
		r.out.Println(r.out.Success("Correct!"))
		if r.opts.ShowExplanations {
			r.out.Println(r.out.Info("Explanation:"), q.Explanation)
		}
	} else {
		r.out.Println(r.out.Failure("Incorrect!"))
		r.out.Println(r.out.Info("Explanation:"), q.Explanation)
	}
	r.out.Println()
}
