package handler

import (
	"textquiz/internal/domain"
	"textquiz/internal/dto"
	"textquiz/internal/logger"
	"textquiz/internal/middleware"
	"textquiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// CleanText godoc
// @Summary Normalize text
// @Description Collapses whitespace and composes Unicode in raw OCR text
// @Tags text
// @Accept json
// @Produce json
// @Param request body dto.PreprocessTextRequest true "Raw text"
// @Success 200 {object} dto.PreprocessTextResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /preprocess [post]
func (h *QuizHandler) CleanText(c *fiber.Ctx) error {
	var req dto.PreprocessTextRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.CleanText(&req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GenerateQuiz godoc
// @Summary Generate a quiz from text
// @Description Builds fill-in-the-blank multiple choice questions. Fewer questions than requested may be returned.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Source text and question count"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /generate_quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.GenerateQuiz(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SaveQuizResult godoc
// @Summary Save a taken quiz
// @Description Stores the questions and answers of a taken quiz. The score is computed by the server.
// @Tags results
// @Accept json
// @Produce json
// @Param request body dto.SaveQuizResultRequest true "Quiz result"
// @Success 201 {object} dto.SaveQuizResultResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz_results [post]
func (h *QuizHandler) SaveQuizResult(c *fiber.Ctx) error {
	var req dto.SaveQuizResultRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.SaveQuizResult(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetQuizHistory godoc
// @Summary List a user's quizzes
// @Description Returns the stored quizzes of a user, newest first, without questions
// @Tags results
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} dto.QuizHistoryResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz_results [get]
func (h *QuizHandler) GetQuizHistory(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.ValidatedUserIDKey).(string)
	if userID == "" {
		userID = c.Query("user_id")
	}

	resp, err := h.service.GetQuizHistory(c.UserContext(), userID)
	if err != nil {
		return err
	}
	logger.Get().Debug("Quiz history retrieved", zap.String("userID", userID), zap.Int("count", len(resp.QuizResults)))
	return c.JSON(resp)
}

// GetQuizDetails godoc
// @Summary Get a stored quiz
// @Description Returns quiz metadata and every question with the user's answer
// @Tags results
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizDetailsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz_details/{id} [get]
func (h *QuizHandler) GetQuizDetails(c *fiber.Ctx) error {
	id, _ := c.Locals(middleware.ValidatedSessionIDKey).(string)
	if id == "" {
		id = c.Params("id")
	}

	resp, err := h.service.GetQuizDetails(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
