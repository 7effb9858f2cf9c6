package questionbank

import (
	"errors"
	"fmt"
)

// MaxChoices is the number of choices a question may carry. Choices are
// labelled a through z when presented.
const MaxChoices = 26

var (
	ErrNoChoices        = errors.New("question has no choices")
	ErrNoCorrectChoice  = errors.New("question has no correct choice")
	ErrTooManyChoices   = fmt.Errorf("question has more than %d choices", MaxChoices)
	ErrDuplicateID      = errors.New("duplicate question id")
	ErrEmptyQuestion    = errors.New("question text cannot be empty")
	ErrChoiceOutOfRange = errors.New("correct choice index out of range")
)

// Question is a single multiple-choice question as read from a bank file.
// CorrectIndices point into Choices in their original, unshuffled order.
type Question struct {
	ID             int
	Text           string
	Choices        []string
	CorrectIndices []int
	Explanation    string
}

// Validate checks the invariants every question in a bank must hold.
func (q Question) Validate() error {
	if q.Text == "" {
		return ErrEmptyQuestion
	}
	if len(q.Choices) == 0 {
		return ErrNoChoices
	}
	if len(q.Choices) > MaxChoices {
		return ErrTooManyChoices
	}
	if len(q.CorrectIndices) == 0 {
		return ErrNoCorrectChoice
	}
	for _, idx := range q.CorrectIndices {
		if idx < 0 || idx >= len(q.Choices) {
			return fmt.Errorf("%w: %d (have %d choices)", ErrChoiceOutOfRange, idx, len(q.Choices))
		}
	}
	return nil
}

// CorrectChoices returns the text of every correct choice.
func (q Question) CorrectChoices() []string {
	out := make([]string, 0, len(q.CorrectIndices))
	for _, idx := range q.CorrectIndices {
		out = append(out, q.Choices[idx])
	}
	return out
}

// QuestionBank maps question ids to questions and remembers the order in
// which they were added. A bank is filled once by a loader and then only read.
type QuestionBank struct {
	Source    string
	questions map[int]Question
	order     []int
}

func New(source string) *QuestionBank {
	return &QuestionBank{
		Source:    source,
		questions: make(map[int]Question),
		order:     []int{},
	}
}

// AddQuestion validates q and adds it to the bank. Ids must be unique.
func (qb *QuestionBank) AddQuestion(q Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if _, exists := qb.questions[q.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateID, q.ID)
	}

	q.Choices = append([]string(nil), q.Choices...)
	q.CorrectIndices = append([]int(nil), q.CorrectIndices...)

	qb.questions[q.ID] = q
	qb.order = append(qb.order, q.ID)
	return nil
}

// Get returns the question with the given id.
func (qb *QuestionBank) Get(id int) (Question, bool) {
	q, ok := qb.questions[id]
	return q, ok
}

func (qb *QuestionBank) Len() int {
	return len(qb.order)
}

// Questions returns the bank's questions in load order. The slice is a copy;
// the choice slices inside it are shared with the bank and must not be
// modified.
func (qb *QuestionBank) Questions() []Question {
	out := make([]Question, 0, len(qb.order))
	for _, id := range qb.order {
		out = append(out, qb.questions[id])
	}
	return out
}
