//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textquiz/internal/config"
	"textquiz/internal/database"
	"textquiz/internal/domain"
)

// Runs against a live Oracle instance configured through config.yaml or
// APP_DB_* variables: go test -tags integration ./internal/repository/...
func TestQuizResultRepository_OracleRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Oracle integration test in short mode.")
	}
	os.Setenv("ENV", "test")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.Connect(ctx, cfg)
	require.NoError(t, err)
	defer db.Close()

	_, err = database.RunMigrations(ctx, db)
	require.NoError(t, err)

	repo := NewQuizResultRepository(db)
	tx := NewTransactionManagerAdapter(db)

	answer := "membrane"
	session := domain.NewQuizSession("integration-user", "The membrane controls transport.", []domain.QuizQuestion{
		{
			QuestionText:  "The _______ controls transport.",
			CorrectAnswer: "membrane",
			Options:       []string{"membrane", "system", "transport", "process"},
			UserAnswer:    &answer,
		},
		{
			QuestionText:  "The membrane controls _______.",
			CorrectAnswer: "transport",
			Options:       []string{"example", "membrane", "transport", "system"},
		},
	})

	err = tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := repo.CreateSession(txCtx, session); err != nil {
			return err
		}
		return repo.CreateQuestions(txCtx, session.ID, session.Questions)
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM quiz_questions WHERE SESSION_ID = :1`, session.ID)
		_, _ = db.Exec(`DELETE FROM quiz_sessions WHERE ID = :1`, session.ID)
	})

	got, err := repo.GetSession(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Score)
	assert.Equal(t, 2, got.TotalQuestions)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, session.Questions[0].Options, got.Questions[0].Options)
	assert.Nil(t, got.Questions[1].UserAnswer)

	history, err := repo.ListSessionsByUser(ctx, "integration-user")
	require.NoError(t, err)
	assert.NotEmpty(t, history)
}
