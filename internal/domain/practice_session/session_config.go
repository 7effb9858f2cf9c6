package practicesession

import "math/rand"

// MatchMode selects how correct choice labels are worked out after a shuffle.
type MatchMode string

const (
	// MatchIdentity follows each choice's original index through the shuffle.
	MatchIdentity MatchMode = "identity"
	// MatchText treats any choice whose normalized text equals a correct
	// choice's normalized text as correct, duplicates included.
	MatchText MatchMode = "text"
)

// SessionConfig holds optional constraints for a practice session.
type SessionConfig struct {
	MaxQuestions *int      // nil = all questions from the bank
	MatchMode    MatchMode // "" = MatchIdentity
	Rand         *rand.Rand
}

// DefaultConfig returns a config with no constraints.
func DefaultConfig() SessionConfig {
	return SessionConfig{
		MaxQuestions: nil,
		MatchMode:    MatchIdentity,
		Rand:         nil,
	}
}
