package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a string list as a JSON array in a text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface. NULL, empty and "null" all scan
// to an empty slice.
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// QuizSession is a row of quiz_sessions.
type QuizSession struct {
	ID             string         `db:"ID"`
	UserID         string         `db:"USER_ID"`
	ExtractedText  sql.NullString `db:"EXTRACTED_TEXT"`
	Score          int            `db:"SCORE"`
	TotalQuestions int            `db:"TOTAL_QUESTIONS"`
	CreatedAt      time.Time      `db:"CREATED_AT"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}

// QuizQuestion is a row of quiz_questions. Position keeps display order.
type QuizQuestion struct {
	ID            string         `db:"ID"`
	SessionID     string         `db:"SESSION_ID"`
	Position      int            `db:"POSITION"`
	QuestionText  string         `db:"QUESTION_TEXT"`
	CorrectAnswer string         `db:"CORRECT_ANSWER"`
	Options       StringSlice    `db:"OPTIONS"`
	UserAnswer    sql.NullString `db:"USER_ANSWER"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
