package domain

import "context"

// QuizResultRepository persists taken quizzes and their questions.
type QuizResultRepository interface {
	// CreateSession inserts the session row. Questions are written separately.
	CreateSession(ctx context.Context, session *QuizSession) error
	// CreateQuestions inserts the questions of a session in display order.
	CreateQuestions(ctx context.Context, sessionID string, questions []QuizQuestion) error
	// ListSessionsByUser returns the user's sessions, newest first, without questions.
	ListSessionsByUser(ctx context.Context, userID string) ([]QuizSession, error)
	// GetSession returns the session with its questions, or (nil, nil) when absent.
	GetSession(ctx context.Context, sessionID string) (*QuizSession, error)
	// Ping checks database connectivity.
	Ping(ctx context.Context) error
}

// TransactionManager runs fn inside a transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
