package dto

import "time"

// PreprocessTextRequest is the body of POST /api/preprocess
// @Description Raw text to normalize
type PreprocessTextRequest struct {
	Text string `json:"text"`
}

// PreprocessTextResponse carries the normalized text
type PreprocessTextResponse struct {
	CleanedText string `json:"cleaned_text"`
}

// GenerateQuizRequest is the body of POST /api/generate_quiz
// @Description Source text and the number of questions wanted
type GenerateQuizRequest struct {
	Text         string `json:"text"`
	NumQuestions *int   `json:"num_questions,omitempty"`
}

// QuizQuestionResponse is a generated question. Options are in display order.
type QuizQuestionResponse struct {
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
}

// GenerateQuizResponse may hold fewer questions than requested
type GenerateQuizResponse struct {
	Questions []QuizQuestionResponse `json:"questions"`
}

// ProcessImageResponse is the OCR result of an uploaded page
type ProcessImageResponse struct {
	ExtractedText string   `json:"extracted_text"`
	Engine        string   `json:"engine,omitempty"`
	Cached        bool     `json:"cached"`
	SkewAngle     *float64 `json:"skew_angle,omitempty"`
}

// QuizAnswerRequest is one answered question of a taken quiz
type QuizAnswerRequest struct {
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
	UserAnswer    *string  `json:"user_answer"`
}

// SaveQuizResultRequest is the body of POST /api/quiz_results. The score is
// computed by the server from the answers.
// @Description A taken quiz with the user's answers
type SaveQuizResultRequest struct {
	UserID        string              `json:"user_id"`
	ExtractedText string              `json:"extracted_text"`
	Results       []QuizAnswerRequest `json:"results"`
}

// SaveQuizResultResponse is returned after a quiz result is stored
type SaveQuizResultResponse struct {
	ID             string `json:"id"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	Message        string `json:"message"`
}

// QuizSessionResponse is the metadata of a stored quiz
type QuizSessionResponse struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	ScorePercent   float64   `json:"score_percent"`
	ExtractedText  string    `json:"extracted_text"`
}

// QuizHistoryResponse lists a user's quizzes, newest first
type QuizHistoryResponse struct {
	QuizResults []QuizSessionResponse `json:"quiz_results"`
}

// QuizQuestionResultResponse is a stored question with the user's answer
type QuizQuestionResultResponse struct {
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
	UserAnswer    *string  `json:"user_answer"`
	IsCorrect     bool     `json:"is_correct"`
}

// QuizDetailsResponse is the body of GET /api/quiz_details/:id
type QuizDetailsResponse struct {
	QuizMetadata QuizSessionResponse          `json:"quiz_metadata"`
	Questions    []QuizQuestionResultResponse `json:"questions"`
}

// HealthResponse reports liveness or readiness
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
