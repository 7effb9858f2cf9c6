// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/remaimber-it/quiztrainer/internal/domain/questionbank"
)

const schema = `
CREATE TABLE IF NOT EXISTS questions (
    id INTEGER PRIMARY KEY,
    text TEXT NOT NULL,
    explanation TEXT NOT NULL,
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS choices (
    question_id INTEGER NOT NULL,
    idx INTEGER NOT NULL,
    text TEXT NOT NULL,
    correct INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (question_id, idx),
    FOREIGN KEY (question_id) REFERENCES questions(id) ON DELETE CASCADE
);
`

// SQLiteStore keeps a single question bank in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveBank replaces the stored bank with bank.
func (s *SQLiteStore) SaveBank(ctx context.Context, bank *questionbank.QuestionBank) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM choices"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM questions"); err != nil {
		return err
	}

	for pos, q := range bank.Questions() {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO questions (id, text, explanation, position) VALUES (?, ?, ?, ?)",
			q.ID, q.Text, q.Explanation, pos,
		)
		if err != nil {
			return fmt.Errorf("save question %d: %w", q.ID, err)
		}

		correct := make(map[int]bool, len(q.CorrectIndices))
		for _, idx := range q.CorrectIndices {
			correct[idx] = true
		}
		for idx, text := range q.Choices {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO choices (question_id, idx, text, correct) VALUES (?, ?, ?, ?)",
				q.ID, idx, text, correct[idx],
			)
			if err != nil {
				return fmt.Errorf("save choice %d of question %d: %w", idx, q.ID, err)
			}
		}
	}

	return tx.Commit()
}

// LoadBank reads the stored bank in its saved order. source becomes the
// bank's Source.
func (s *SQLiteStore) LoadBank(ctx context.Context, source string) (*questionbank.QuestionBank, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, text, explanation FROM questions ORDER BY position")
	if err != nil {
		return nil, err
	}

	var questions []*questionbank.Question
	byID := make(map[int]*questionbank.Question)
	for rows.Next() {
		var q questionbank.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Explanation); err != nil {
			rows.Close()
			return nil, err
		}
		questions = append(questions, &q)
		byID[q.ID] = &q
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	choiceRows, err := s.db.QueryContext(ctx, "SELECT question_id, idx, text, correct FROM choices ORDER BY question_id, idx")
	if err != nil {
		return nil, err
	}
	defer choiceRows.Close()

	for choiceRows.Next() {
		var (
			questionID, idx int
			text            string
			correct         bool
		)
		if err := choiceRows.Scan(&questionID, &idx, &text, &correct); err != nil {
			return nil, err
		}
		q, ok := byID[questionID]
		if !ok {
			continue
		}
		if idx != len(q.Choices) {
			return nil, fmt.Errorf("question %d: choice index %d out of sequence", questionID, idx)
		}
		q.Choices = append(q.Choices, text)
		if correct {
			q.CorrectIndices = append(q.CorrectIndices, idx)
		}
	}
	if err := choiceRows.Err(); err != nil {
		return nil, err
	}

	bank := questionbank.New(source)
	for _, q := range questions {
		if err := bank.AddQuestion(*q); err != nil {
			return nil, fmt.Errorf("stored question %d: %w", q.ID, err)
		}
	}
	return bank, nil
}
