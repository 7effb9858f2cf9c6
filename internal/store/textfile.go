package store

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/remaimber-it/quiztrainer/internal/domain/questionbank"
)

const (
	fieldCount     = 5
	fieldSeparator = "|"
	choiceSep      = `","`
	maxLineSize    = 1024 * 1024
)

// ParseError reports the first malformed line of a question file.
type ParseError struct {
	Path string
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadFile reads a pipe-delimited question file. Each non-blank line holds
// one question:
//
//	<id>|"<question>"|"<choice>","<choice>",...|<index>,<index>,...|"<explanation>"
//
// The first malformed line aborts the load.
func LoadFile(path string) (*questionbank.QuestionBank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, notFound(path, err)
	}
	defer f.Close()

	bank, err := parse(f, path)
	if err != nil {
		return nil, err
	}
	return bank, nil
}

// Parse reads questions in the text file format from r.
func Parse(r io.Reader) (*questionbank.QuestionBank, error) {
	return parse(r, "")
}

func parse(r io.Reader, path string) (*questionbank.QuestionBank, error) {
	bank := questionbank.New(path)
	firstSeen := make(map[int]int)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		q, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Path: path, Line: lineNo, Msg: err.Error(), Err: err}
		}

		if first, dup := firstSeen[q.ID]; dup {
			err := fmt.Errorf("%w: %d (first defined on line %d)", questionbank.ErrDuplicateID, q.ID, first)
			return nil, &ParseError{Path: path, Line: lineNo, Msg: err.Error(), Err: err}
		}
		if err := bank.AddQuestion(q); err != nil {
			return nil, &ParseError{Path: path, Line: lineNo, Msg: err.Error(), Err: err}
		}
		firstSeen[q.ID] = lineNo
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading questions: %w", err)
	}

	return bank, nil
}

func parseLine(line string) (questionbank.Question, error) {
	fields := strings.Split(line, fieldSeparator)
	if len(fields) != fieldCount {
		return questionbank.Question{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return questionbank.Question{}, fmt.Errorf("invalid question id %q", fields[0])
	}

	text, err := unquote(fields[1], "question")
	if err != nil {
		return questionbank.Question{}, err
	}

	choiceList, err := unquote(fields[2], "choice list")
	if err != nil {
		return questionbank.Question{}, err
	}
	choices := strings.Split(choiceList, choiceSep)

	indices, err := parseIndices(fields[3])
	if err != nil {
		return questionbank.Question{}, err
	}

	explanation, err := unquote(fields[4], "explanation")
	if err != nil {
		return questionbank.Question{}, err
	}

	return questionbank.Question{
		ID:             id,
		Text:           text,
		Choices:        choices,
		CorrectIndices: indices,
		Explanation:    explanation,
	}, nil
}

// unquote strips exactly one leading and one trailing double quote.
func unquote(field, name string) (string, error) {
	if len(field) < 2 || field[0] != '"' || field[len(field)-1] != '"' {
		return "", fmt.Errorf("%s must be enclosed in double quotes", name)
	}
	return field[1 : len(field)-1], nil
}

func parseIndices(field string) ([]int, error) {
	if field == "" {
		return nil, fmt.Errorf("missing correct choice indices")
	}

	parts := strings.Split(field, ",")
	indices := make([]int, 0, len(parts))
	for _, p := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid correct choice index %q", p)
		}
		indices = append(indices, idx)
	}
	return indices, nil
}
