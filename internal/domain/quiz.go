package domain

import (
	"time"
)

// QuizQuestion is a single fill-in-the-blank multiple choice question.
// Options always holds four distinct entries, one of which is CorrectAnswer.
type QuizQuestion struct {
	ID            string
	QuestionText  string
	CorrectAnswer string
	Options       []string
	UserAnswer    *string
}

// IsCorrect reports whether the recorded user answer matches the correct answer.
func (q *QuizQuestion) IsCorrect() bool {
	return q.UserAnswer != nil && *q.UserAnswer == q.CorrectAnswer
}

// Validate validates the question
func (q *QuizQuestion) Validate() error {
	if q.QuestionText == "" {
		return NewValidationError("question is required")
	}
	if q.CorrectAnswer == "" {
		return NewValidationError("correct answer is required")
	}
	seen := make(map[string]struct{}, len(q.Options))
	containsAnswer := false
	for _, opt := range q.Options {
		if _, dup := seen[opt]; dup {
			return NewValidationError("options must be unique")
		}
		seen[opt] = struct{}{}
		if opt == q.CorrectAnswer {
			containsAnswer = true
		}
	}
	if !containsAnswer {
		return NewValidationError("options must contain the correct answer")
	}
	return nil
}

// QuizSession is a taken quiz: the source text, its questions and the score.
type QuizSession struct {
	ID             string
	UserID         string
	ExtractedText  string
	Score          int
	TotalQuestions int
	Questions      []QuizQuestion
	CreatedAt      time.Time
}

// NewQuizSession creates a session and scores it from the recorded answers.
func NewQuizSession(userID, extractedText string, questions []QuizQuestion) *QuizSession {
	s := &QuizSession{
		UserID:         userID,
		ExtractedText:  extractedText,
		Questions:      questions,
		TotalQuestions: len(questions),
		CreatedAt:      time.Now(),
	}
	s.Score = s.CalculateScore()
	return s
}

// CalculateScore counts the questions answered correctly.
func (s *QuizSession) CalculateScore() int {
	correct := 0
	for i := range s.Questions {
		if s.Questions[i].IsCorrect() {
			correct++
		}
	}
	return correct
}

// ScorePercent returns the score as a percentage; zero when there are no questions.
func (s *QuizSession) ScorePercent() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.Score) / float64(s.TotalQuestions) * 100
}

// entityValidationError is returned by the entity Validate methods.
type entityValidationError struct {
	message string
}

func (e *entityValidationError) Error() string {
	return e.message
}

func NewValidationError(message string) error {
	return &entityValidationError{message: message}
}
