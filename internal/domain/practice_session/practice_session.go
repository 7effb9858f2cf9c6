package practicesession

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"

	"github.com/remaimber-it/quiztrainer/internal/domain/questionbank"
)

// ErrNothingToGrade is returned when a grade is requested before any
// question has been answered.
var ErrNothingToGrade = errors.New("no questions answered")

// Outcome is the result of judging one answer.
type Outcome int

const (
	Incorrect Outcome = iota
	Correct
)

func (o Outcome) String() string {
	if o == Correct {
		return "correct"
	}
	return "incorrect"
}

// PracticeSession is one run through a question bank: the questions to ask,
// in order, and the running score.
type PracticeSession struct {
	ID        string
	Source    string
	Questions []questionbank.Question
	MatchMode MatchMode
	Correct   int
	Incorrect int

	rnd *rand.Rand
}

// New creates a practice session with all questions from the bank (randomized).
func New(bank *questionbank.QuestionBank) *PracticeSession {
	return NewWithConfig(bank, DefaultConfig())
}

// NewWithConfig creates a practice session with the given configuration.
// Questions are always randomized. If MaxQuestions is set and less than
// the total available, only that many questions are included.
func NewWithConfig(bank *questionbank.QuestionBank, config SessionConfig) *PracticeSession {
	questions := shuffleQuestions(bank.Questions(), config.Rand)

	// Apply question limit if set
	if config.MaxQuestions != nil && *config.MaxQuestions >= 0 && *config.MaxQuestions < len(questions) {
		questions = questions[:*config.MaxQuestions]
	}

	mode := config.MatchMode
	if mode == "" {
		mode = MatchIdentity
	}

	return &PracticeSession{
		ID:        uuid.NewString(),
		Source:    bank.Source,
		Questions: questions,
		MatchMode: mode,
		rnd:       config.Rand,
	}
}

// Present shuffles the choices of q for display using the session's
// random source.
func (s *PracticeSession) Present(q questionbank.Question) (*Presentation, error) {
	return Present(q, s.MatchMode, s.rnd)
}

// Record scores one answered question.
func (s *PracticeSession) Record(outcome Outcome) {
	if outcome == Correct {
		s.Correct++
		return
	}
	s.Incorrect++
}

func (s *PracticeSession) Answered() int {
	return s.Correct + s.Incorrect
}

// Grade returns the percentage of answered questions that were correct.
func (s *PracticeSession) Grade() (float64, error) {
	return CalcGrade(s.Correct, s.Incorrect)
}

// CalcGrade returns correct / (correct + incorrect) * 100.
func CalcGrade(correct, incorrect int) (float64, error) {
	total := correct + incorrect
	if total <= 0 {
		return 0, ErrNothingToGrade
	}
	return float64(correct) / float64(total) * 100, nil
}

// shuffleQuestions returns a new slice with questions in random order.
func shuffleQuestions(questions []questionbank.Question, rnd *rand.Rand) []questionbank.Question {
	shuffled := make([]questionbank.Question, len(questions))
	copy(shuffled, questions)

	shuffle(rnd, len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled
}

func shuffle(rnd *rand.Rand, n int, swap func(i, j int)) {
	if rnd == nil {
		rand.Shuffle(n, swap)
		return
	}
	rnd.Shuffle(n, swap)
}
