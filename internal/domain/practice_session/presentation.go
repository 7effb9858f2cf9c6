package practicesession

import (
	"math/rand"
	"strings"

	"github.com/remaimber-it/quiztrainer/internal/domain/questionbank"
)

// Choice is one answer option as shown to the user.
type Choice struct {
	Label         string
	Text          string
	OriginalIndex int
}

// Presentation is a question with its choices in display order.
type Presentation struct {
	Question questionbank.Question
	Choices  []Choice

	correctLabels map[string]struct{}
	correctTexts  map[string]struct{}
}

// Label returns the display label for the choice at position i.
func Label(i int) (string, error) {
	if i < 0 || i >= questionbank.MaxChoices {
		return "", questionbank.ErrTooManyChoices
	}
	return string(rune('a' + i)), nil
}

// Normalize lowercases s and removes every space.
func Normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// ParseAnswer splits raw user input into normalized, comma-separated entries.
func ParseAnswer(input string) []string {
	input = strings.TrimRight(input, "\r\n")
	return strings.Split(Normalize(input), ",")
}

// IsExit reports whether input is the quit command.
func IsExit(input string) bool {
	answer := ParseAnswer(input)
	return len(answer) == 1 && answer[0] == "exit"
}

// Present shuffles the choices of q and assigns labels by position.
func Present(q questionbank.Question, mode MatchMode, rnd *rand.Rand) (*Presentation, error) {
	choices := make([]Choice, len(q.Choices))
	for i, text := range q.Choices {
		choices[i] = Choice{Text: text, OriginalIndex: i}
	}
	shuffle(rnd, len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	correctIdx := make(map[int]struct{}, len(q.CorrectIndices))
	correctTexts := make(map[string]struct{}, len(q.CorrectIndices))
	for _, idx := range q.CorrectIndices {
		correctIdx[idx] = struct{}{}
		correctTexts[Normalize(q.Choices[idx])] = struct{}{}
	}

	correctLabels := make(map[string]struct{}, len(q.CorrectIndices))
	for i := range choices {
		label, err := Label(i)
		if err != nil {
			return nil, err
		}
		choices[i].Label = label

		var isCorrect bool
		if mode == MatchText {
			_, isCorrect = correctTexts[Normalize(choices[i].Text)]
		} else {
			_, isCorrect = correctIdx[choices[i].OriginalIndex]
		}
		if isCorrect {
			correctLabels[label] = struct{}{}
		}
	}

	return &Presentation{
		Question:      q,
		Choices:       choices,
		correctLabels: correctLabels,
		correctTexts:  correctTexts,
	}, nil
}

// CorrectLabels returns the labels of the correct choices in display order.
func (p *Presentation) CorrectLabels() []string {
	out := make([]string, 0, len(p.correctLabels))
	for _, c := range p.Choices {
		if _, ok := p.correctLabels[c.Label]; ok {
			out = append(out, c.Label)
		}
	}
	return out
}

// Judge compares raw user input against the correct answers. The set of
// entries must match either every correct label or every correct choice
// text; anything else, partial selections included, is incorrect.
func (p *Presentation) Judge(input string) Outcome {
	answer := toSet(ParseAnswer(input))
	if sameSet(answer, p.correctLabels) || sameSet(answer, p.correctTexts) {
		return Correct
	}
	return Incorrect
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
