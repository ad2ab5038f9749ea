package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Quiz is an optional multiple-choice check shipped next to an exercise.
type Quiz struct {
	Title     string     `toml:"title"`
	Questions []Question `toml:"questions"`
}

// Question is one multiple-choice question.
type Question struct {
	Prompt      string   `toml:"prompt"`
	Options     []string `toml:"options"`
	AnswerIndex int      `toml:"answer_index"`
}

// LoadQuiz reads quiz.toml from dir. It returns nil, nil when the exercise
// has no quiz.
func LoadQuiz(dir string) (*Quiz, error) {
	p := filepath.Join(dir, QuizFile)
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read quiz at %s: %w", p, err)
	}

	var q Quiz
	if err := toml.Unmarshal(data, &q); err != nil {
		return nil, &ParseError{Path: p, Err: err}
	}
	for i, qu := range q.Questions {
		if qu.AnswerIndex < 0 || qu.AnswerIndex >= len(qu.Options) {
			return nil, &ParseError{Path: p, Err: fmt.Errorf("question %d: answer_index %d out of range", i+1, qu.AnswerIndex)}
		}
	}
	return &q, nil
}

// Score counts correct answers. answers[i] is the chosen option index for
// question i; missing answers count as wrong.
func (q *Quiz) Score(answers []int) int {
	correct := 0
	for i, qu := range q.Questions {
		if i < len(answers) && answers[i] == qu.AnswerIndex {
			correct++
		}
	}
	return correct
}
