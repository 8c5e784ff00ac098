package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textquiz/internal/domain"
	"textquiz/internal/repository/models"
)

// setupQuizResultTestDB creates a new sqlx.DB instance and sqlmock for quiz result repository testing.
func setupQuizResultTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

var sessionColumns = []string{"ID", "USER_ID", "EXTRACTED_TEXT", "SCORE", "TOTAL_QUESTIONS", "CREATED_AT"}
var questionColumns = []string{"ID", "SESSION_ID", "POSITION", "QUESTION_TEXT", "CORRECT_ANSWER", "OPTIONS", "USER_ANSWER"}

func TestToDomainQuizQuestion(t *testing.T) {
	m := models.QuizQuestion{
		ID:            "q1",
		QuestionText:  "The _______ is the powerhouse of the cell.",
		CorrectAnswer: "mitochondria",
		Options:       models.StringSlice{"cell", "mitochondria", "option2", "system"},
		UserAnswer:    sql.NullString{String: "cell", Valid: true},
	}

	q := toDomainQuizQuestion(m)
	assert.Equal(t, "q1", q.ID)
	assert.Equal(t, []string{"cell", "mitochondria", "option2", "system"}, q.Options)
	require.NotNil(t, q.UserAnswer)
	assert.Equal(t, "cell", *q.UserAnswer)

	m.UserAnswer = sql.NullString{}
	assert.Nil(t, toDomainQuizQuestion(m).UserAnswer)
}

func TestQuizSessionConverters(t *testing.T) {
	assert.Nil(t, toDomainQuizSession(nil))
	assert.Nil(t, fromDomainQuizSession(nil))

	m := fromDomainQuizSession(&domain.QuizSession{ID: "s1", UserID: "u1"})
	assert.False(t, m.ExtractedText.Valid)
}

func TestQuizResultRepository_CreateSession(t *testing.T) {
	db, mock := setupQuizResultTestDB(t)
	defer db.Close()
	repo := NewQuizResultRepository(db)

	session := &domain.QuizSession{UserID: "user-1", ExtractedText: "some text", Score: 2, TotalQuestions: 3}

	mock.ExpectExec(`INSERT INTO quiz_sessions \(ID, USER_ID, EXTRACTED_TEXT, SCORE, TOTAL_QUESTIONS, CREATED_AT\)`).
		WithArgs(sqlmock.AnyArg(), "user-1", "some text", 2, 3, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateSession(context.Background(), session)
	require.NoError(t, err)
	assert.Len(t, session.ID, 26)
	assert.False(t, session.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizResultRepository_CreateSession_Error(t *testing.T) {
	db, mock := setupQuizResultTestDB(t)
	defer db.Close()
	repo := NewQuizResultRepository(db)

	mock.ExpectExec(`INSERT INTO quiz_sessions`).WillReturnError(errors.New("ORA-00001"))

	err := repo.CreateSession(context.Background(), &domain.QuizSession{ID: "s1", UserID: "user-1"})
	assert.ErrorContains(t, err, "failed to create quiz session")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizResultRepository_CreateQuestions(t *testing.T) {
	db, mock := setupQuizResultTestDB(t)
	defer db.Close()
	repo := NewQuizResultRepository(db)

	answer := "cell"
	questions := []domain.QuizQuestion{
		{QuestionText: "The _______ is small.", CorrectAnswer: "cell", Options: []string{"cell", "a", "b", "c"}, UserAnswer: &answer},
		{ID: "fixed", QuestionText: "Plants _______ light.", CorrectAnswer: "absorb", Options: []string{"absorb", "x", "y", "z"}},
	}

	prep := mock.ExpectPrepare(`INSERT INTO quiz_questions`)
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), "s1", 0, "The _______ is small.", "cell", `["cell","a","b","c"]`, "cell").
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs("fixed", "s1", 1, "Plants _______ light.", "absorb", `["absorb","x","y","z"]`, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.WillBeClosed()

	err := repo.CreateQuestions(context.Background(), "s1", questions)
	require.NoError(t, err)
	assert.NotEmpty(t, questions[0].ID)
	assert.Equal(t, "fixed", questions[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizResultRepository_CreateQuestions_Empty(t *testing.T) {
	db, mock := setupQuizResultTestDB(t)
	defer db.Close()
	repo := NewQuizResultRepository(db)

	require.NoError(t, repo.CreateQuestions(context.Background(), "s1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizResultRepository_ListSessionsByUser(t *testing.T) {
	db, mock := setupQuizResultTestDB(t)
	defer db.Close()
	repo := NewQuizResultRepository(db)

	newer := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)
	rows := sqlmock.NewRows(sessionColumns).
		AddRow("s2", "user-1", "second", 3, 4, newer).
		AddRow("s1", "user-1", nil, 1, 5, older)

	mock.ExpectQuery(`SELECT .* FROM quiz_sessions WHERE USER_ID = :1 ORDER BY CREATED_AT DESC`).
		WithArgs("user-1").
		WillReturnRows(rows)

	sessions, err := repo.ListSessionsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s2", sessions[0].ID)
	assert.Equal(t, 3, sessions[0].Score)
	assert.Equal(t, "", sessions[1].ExtractedText)
	assert.Nil(t, sessions[0].Questions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizResultRepository_GetSession(t *testing.T) {
	db, mock := setupQuizResultTestDB(t)
	defer db.Close()
	repo := NewQuizResultRepository(db)

	created := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .* FROM quiz_sessions WHERE ID = :1`).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(sessionColumns).AddRow("s1", "user-1", "text", 1, 2, created))
	mock.ExpectQuery(`SELECT .* FROM quiz_questions WHERE SESSION_ID = :1 ORDER BY POSITION`).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(questionColumns).
			AddRow("q1", "s1", 0, "A _______.", "cell", `["cell","a","b","c"]`, "cell").
			AddRow("q2", "s1", 1, "B _______.", "gene", `["gene","d","e","f"]`, nil))

	session, err := repo.GetSession(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, created, session.CreatedAt)
	require.Len(t, session.Questions, 2)
	assert.True(t, session.Questions[0].IsCorrect())
	assert.Nil(t, session.Questions[1].UserAnswer)
	assert.Equal(t, []string{"gene", "d", "e", "f"}, session.Questions[1].Options)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizResultRepository_GetSession_NotFound(t *testing.T) {
	db, mock := setupQuizResultTestDB(t)
	defer db.Close()
	repo := NewQuizResultRepository(db)

	mock.ExpectQuery(`SELECT .* FROM quiz_sessions WHERE ID = :1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	session, err := repo.GetSession(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, session)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizResultRepository_UsesTransactionFromContext(t *testing.T) {
	db, mock := setupQuizResultTestDB(t)
	defer db.Close()
	repo := NewQuizResultRepository(db)
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO quiz_sessions`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return repo.CreateSession(ctx, &domain.QuizSession{ID: "s1", UserID: "user-1"})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
