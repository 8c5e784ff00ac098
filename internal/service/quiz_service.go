package service

import (
	"context"
	"math/rand"
	"strings"

	"textquiz/internal/config"
	"textquiz/internal/domain"
	"textquiz/internal/dto"
	"textquiz/internal/logger"
	"textquiz/internal/quizgen"
	"textquiz/internal/textnorm"
	"textquiz/internal/util"
	"textquiz/internal/validation"

	"go.uber.org/zap"
)

// QuizGenerator builds questions from text. *quizgen.Generator satisfies it.
type QuizGenerator interface {
	Assemble(text string, targetCount int, rng *rand.Rand) (*quizgen.Assembly, error)
}

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	CleanText(req *dto.PreprocessTextRequest) (*dto.PreprocessTextResponse, error)
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	SaveQuizResult(ctx context.Context, req *dto.SaveQuizResultRequest) (*dto.SaveQuizResultResponse, error)
	GetQuizHistory(ctx context.Context, userID string) (*dto.QuizHistoryResponse, error)
	GetQuizDetails(ctx context.Context, sessionID string) (*dto.QuizDetailsResponse, error)
}

type quizService struct {
	generator QuizGenerator
	repo      domain.QuizResultRepository
	txManager domain.TransactionManager
	validator *validation.Validator
	cfg       config.QuizConfig
	newRand   func() *rand.Rand
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	generator QuizGenerator,
	repo domain.QuizResultRepository,
	txManager domain.TransactionManager,
	validator *validation.Validator,
	cfg config.QuizConfig,
) QuizService {
	return &quizService{
		generator: generator,
		repo:      repo,
		txManager: txManager,
		validator: validator,
		cfg:       cfg,
		newRand:   util.NewRequestRand,
	}
}

// CleanText implements QuizService
func (s *quizService) CleanText(req *dto.PreprocessTextRequest) (*dto.PreprocessTextResponse, error) {
	if errs := s.validator.ValidateText("text", req.Text); len(errs) > 0 {
		return nil, errs
	}
	return &dto.PreprocessTextResponse{CleanedText: textnorm.Normalize(req.Text)}, nil
}

// GenerateQuiz implements QuizService. Fewer questions than requested is a
// success; none at all is reported as insufficient content.
func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	count, errs := s.validator.ValidateGenerateQuizRequest(*req, s.cfg.DefaultQuestions)
	if len(errs) > 0 {
		return nil, errs
	}

	assembly, err := s.generator.Assemble(req.Text, count, s.newRand())
	if err != nil {
		fields := []zap.Field{zap.Error(err), zap.Int("requested", count)}
		if assembly != nil {
			fields = append(fields,
				zap.Int("usableSentences", assembly.UsableSentences),
				zap.Int("attempts", assembly.Attempts),
				zap.String("reason", string(assembly.Reason)))
		}
		logger.Get().Warn("Quiz generation produced no questions", fields...)
		return nil, domain.FromPipelineError(err)
	}

	logger.Get().Info("Quiz generated",
		zap.Int("requested", count),
		zap.Int("generated", len(assembly.Questions)),
		zap.Int("usableSentences", assembly.UsableSentences),
		zap.Int("attempts", assembly.Attempts),
		zap.String("reason", string(assembly.Reason)))

	resp := &dto.GenerateQuizResponse{Questions: make([]dto.QuizQuestionResponse, 0, len(assembly.Questions))}
	for _, q := range assembly.Questions {
		resp.Questions = append(resp.Questions, dto.QuizQuestionResponse{
			Question:      q.QuestionText,
			CorrectAnswer: q.CorrectAnswer,
			Options:       q.Options,
		})
	}
	return resp, nil
}

// SaveQuizResult implements QuizService. The score is recomputed here from
// the submitted answers.
func (s *quizService) SaveQuizResult(ctx context.Context, req *dto.SaveQuizResultRequest) (*dto.SaveQuizResultResponse, error) {
	if errs := s.validator.ValidateSaveQuizResultRequest(*req); len(errs) > 0 {
		return nil, errs
	}

	questions := make([]domain.QuizQuestion, 0, len(req.Results))
	for _, r := range req.Results {
		questions = append(questions, domain.QuizQuestion{
			QuestionText:  r.Question,
			CorrectAnswer: r.CorrectAnswer,
			Options:       r.Options,
			UserAnswer:    r.UserAnswer,
		})
	}

	text := util.TruncateRunes(strings.TrimSpace(req.ExtractedText), s.cfg.ResultTextLimit)
	session := domain.NewQuizSession(req.UserID, text, questions)

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.CreateSession(txCtx, session); err != nil {
			return err
		}
		return s.repo.CreateQuestions(txCtx, session.ID, session.Questions)
	})
	if err != nil {
		logger.Get().Error("Failed to save quiz result",
			zap.Error(err),
			zap.String("userID", req.UserID),
			zap.Int("questions", len(questions)))
		return nil, domain.NewInternalError("Failed to save quiz result", err)
	}

	logger.Get().Info("Quiz result saved",
		zap.String("sessionID", session.ID),
		zap.String("userID", session.UserID),
		zap.Int("score", session.Score),
		zap.Int("total", session.TotalQuestions))

	return &dto.SaveQuizResultResponse{
		ID:             session.ID,
		Score:          session.Score,
		TotalQuestions: session.TotalQuestions,
		Message:        "Quiz result saved successfully",
	}, nil
}

// GetQuizHistory implements QuizService
func (s *quizService) GetQuizHistory(ctx context.Context, userID string) (*dto.QuizHistoryResponse, error) {
	if errs := s.validator.ValidateUserID(userID); len(errs) > 0 {
		return nil, errs
	}

	sessions, err := s.repo.ListSessionsByUser(ctx, userID)
	if err != nil {
		logger.Get().Error("Failed to list quiz sessions", zap.Error(err), zap.String("userID", userID))
		return nil, domain.NewInternalError("Failed to get quiz history", err)
	}

	resp := &dto.QuizHistoryResponse{QuizResults: make([]dto.QuizSessionResponse, 0, len(sessions))}
	for i := range sessions {
		resp.QuizResults = append(resp.QuizResults, toSessionResponse(&sessions[i]))
	}
	return resp, nil
}

// GetQuizDetails implements QuizService
func (s *quizService) GetQuizDetails(ctx context.Context, sessionID string) (*dto.QuizDetailsResponse, error) {
	if errs := s.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return nil, errs
	}

	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		logger.Get().Error("Failed to get quiz session", zap.Error(err), zap.String("sessionID", sessionID))
		return nil, domain.NewInternalError("Failed to get quiz details", err)
	}
	if session == nil {
		return nil, domain.NewQuizNotFoundError(sessionID)
	}

	resp := &dto.QuizDetailsResponse{
		QuizMetadata: toSessionResponse(session),
		Questions:    make([]dto.QuizQuestionResultResponse, 0, len(session.Questions)),
	}
	for i := range session.Questions {
		q := &session.Questions[i]
		resp.Questions = append(resp.Questions, dto.QuizQuestionResultResponse{
			Question:      q.QuestionText,
			CorrectAnswer: q.CorrectAnswer,
			Options:       q.Options,
			UserAnswer:    q.UserAnswer,
			IsCorrect:     q.IsCorrect(),
		})
	}
	return resp, nil
}

func toSessionResponse(s *domain.QuizSession) dto.QuizSessionResponse {
	return dto.QuizSessionResponse{
		ID:             s.ID,
		Date:           s.CreatedAt,
		Score:          s.Score,
		TotalQuestions: s.TotalQuestions,
		ScorePercent:   s.ScorePercent(),
		ExtractedText:  s.ExtractedText,
	}
}
