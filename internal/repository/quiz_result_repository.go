package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"textquiz/internal/domain"
	"textquiz/internal/repository/models"
	"textquiz/internal/util"
)

// sqlxQuizResultRepository implements domain.QuizResultRepository using sqlx.
type sqlxQuizResultRepository struct {
	db *sqlx.DB
}

// NewQuizResultRepository creates a repository over an Oracle connection.
func NewQuizResultRepository(db *sqlx.DB) domain.QuizResultRepository {
	return &sqlxQuizResultRepository{db: db}
}

func toDomainQuizSession(m *models.QuizSession) *domain.QuizSession {
	if m == nil {
		return nil
	}
	return &domain.QuizSession{
		ID:             m.ID,
		UserID:         m.UserID,
		ExtractedText:  m.ExtractedText.String,
		Score:          m.Score,
		TotalQuestions: m.TotalQuestions,
		CreatedAt:      m.CreatedAt,
	}
}

func fromDomainQuizSession(s *domain.QuizSession) *models.QuizSession {
	if s == nil {
		return nil
	}
	return &models.QuizSession{
		ID:             s.ID,
		UserID:         s.UserID,
		ExtractedText:  util.StringToNullString(s.ExtractedText),
		Score:          s.Score,
		TotalQuestions: s.TotalQuestions,
		CreatedAt:      s.CreatedAt,
	}
}

func toDomainQuizQuestion(m models.QuizQuestion) domain.QuizQuestion {
	q := domain.QuizQuestion{
		ID:            m.ID,
		QuestionText:  m.QuestionText,
		CorrectAnswer: m.CorrectAnswer,
		Options:       []string(m.Options),
	}
	if m.UserAnswer.Valid {
		answer := m.UserAnswer.String
		q.UserAnswer = &answer
	}
	return q
}

func (r *sqlxQuizResultRepository) CreateSession(ctx context.Context, session *domain.QuizSession) error {
	if session.ID == "" {
		session.ID = util.NewULID()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	m := fromDomainQuizSession(session)

	query := `INSERT INTO quiz_sessions (ID, USER_ID, EXTRACTED_TEXT, SCORE, TOTAL_QUESTIONS, CREATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.ID, m.UserID, m.ExtractedText, m.Score, m.TotalQuestions, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create quiz session: %w", err)
	}
	return nil
}

func (r *sqlxQuizResultRepository) CreateQuestions(ctx context.Context, sessionID string, questions []domain.QuizQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	exec := GetExecutor(ctx, r.db)

	query := `INSERT INTO quiz_questions (ID, SESSION_ID, POSITION, QUESTION_TEXT, CORRECT_ANSWER, OPTIONS, USER_ANSWER)
	          VALUES (:1, :2, :3, :4, :5, :6, :7)`
	stmt, err := exec.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare quiz question insert: %w", err)
	}
	defer stmt.Close()

	for i := range questions {
		q := &questions[i]
		if q.ID == "" {
			q.ID = util.NewULID()
		}
		// go-ora binds driver.Valuer inconsistently for CLOBs; pass the JSON text.
		options, err := models.StringSlice(q.Options).Value()
		if err != nil {
			return fmt.Errorf("failed to encode options: %w", err)
		}
		var userAnswer sql.NullString
		if q.UserAnswer != nil {
			userAnswer = sql.NullString{String: *q.UserAnswer, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, q.ID, sessionID, i, q.QuestionText, q.CorrectAnswer, options, userAnswer); err != nil {
			return fmt.Errorf("failed to create quiz question %d: %w", i, err)
		}
	}
	return nil
}

func (r *sqlxQuizResultRepository) ListSessionsByUser(ctx context.Context, userID string) ([]domain.QuizSession, error) {
	var rows []models.QuizSession
	query := `SELECT ID, USER_ID, EXTRACTED_TEXT, SCORE, TOTAL_QUESTIONS, CREATED_AT
	          FROM quiz_sessions WHERE USER_ID = :1 ORDER BY CREATED_AT DESC`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list quiz sessions: %w", err)
	}

	sessions := make([]domain.QuizSession, 0, len(rows))
	for i := range rows {
		sessions = append(sessions, *toDomainQuizSession(&rows[i]))
	}
	return sessions, nil
}

func (r *sqlxQuizResultRepository) GetSession(ctx context.Context, sessionID string) (*domain.QuizSession, error) {
	exec := GetExecutor(ctx, r.db)

	var m models.QuizSession
	query := `SELECT ID, USER_ID, EXTRACTED_TEXT, SCORE, TOTAL_QUESTIONS, CREATED_AT
	          FROM quiz_sessions WHERE ID = :1`
	if err := exec.GetContext(ctx, &m, query, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz session: %w", err)
	}

	var rows []models.QuizQuestion
	query = `SELECT ID, SESSION_ID, POSITION, QUESTION_TEXT, CORRECT_ANSWER, OPTIONS, USER_ANSWER
	         FROM quiz_questions WHERE SESSION_ID = :1 ORDER BY POSITION`
	if err := exec.SelectContext(ctx, &rows, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to get quiz questions: %w", err)
	}

	session := toDomainQuizSession(&m)
	session.Questions = make([]domain.QuizQuestion, 0, len(rows))
	for _, row := range rows {
		session.Questions = append(session.Questions, toDomainQuizQuestion(row))
	}
	return session, nil
}

func (r *sqlxQuizResultRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
