package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textquiz/internal/domain"
	"textquiz/internal/dto"
)

func intPtr(i int) *int { return &i }

func TestValidateGenerateQuizRequest(t *testing.T) {
	v := NewValidator(50)

	tests := []struct {
		name      string
		req       dto.GenerateQuizRequest
		wantCount int
		wantCodes []domain.ErrorCode
	}{
		{name: "default count", req: dto.GenerateQuizRequest{Text: "some text"}, wantCount: 5},
		{name: "explicit count", req: dto.GenerateQuizRequest{Text: "some text", NumQuestions: intPtr(12)}, wantCount: 12},
		{name: "zero count", req: dto.GenerateQuizRequest{Text: "some text", NumQuestions: intPtr(0)}, wantCount: 0,
			wantCodes: []domain.ErrorCode{domain.CodeOutOfRange}},
		{name: "too many", req: dto.GenerateQuizRequest{Text: "x", NumQuestions: intPtr(51)}, wantCount: 51,
			wantCodes: []domain.ErrorCode{domain.CodeOutOfRange}},
		{name: "blank text", req: dto.GenerateQuizRequest{Text: "   "}, wantCount: 5,
			wantCodes: []domain.ErrorCode{domain.CodeMissingField}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, errs := v.ValidateGenerateQuizRequest(tt.req, 5)
			assert.Equal(t, tt.wantCount, count)
			require.Len(t, errs, len(tt.wantCodes))
			for i, code := range tt.wantCodes {
				assert.Equal(t, code, errs[i].Code)
			}
		})
	}
}

func TestValidateSaveQuizResultRequest(t *testing.T) {
	v := NewValidator(50)
	long := strings.Repeat("a", maxAnswerLength+1)

	valid := dto.SaveQuizResultRequest{
		UserID: "user-1",
		Results: []dto.QuizAnswerRequest{
			{Question: "The _______ divides.", CorrectAnswer: "cell", Options: []string{"cell", "a", "b", "c"}},
		},
	}
	assert.Empty(t, v.ValidateSaveQuizResultRequest(valid))

	errs := v.ValidateSaveQuizResultRequest(dto.SaveQuizResultRequest{})
	require.Len(t, errs, 2)
	assert.Equal(t, "user_id", errs[0].Field)
	assert.Equal(t, "results", errs[1].Field)

	bad := dto.SaveQuizResultRequest{
		UserID:  "user-1",
		Results: []dto.QuizAnswerRequest{{UserAnswer: &long}},
	}
	errs = v.ValidateSaveQuizResultRequest(bad)
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{
		"results[0].question",
		"results[0].correct_answer",
		"results[0].options",
		"results[0].user_answer",
	}, fields)
}

func TestValidateSessionID(t *testing.T) {
	v := NewValidator(50)

	assert.Empty(t, v.ValidateSessionID("01HZY3R8Q7M2C5XKJ9V4T6B1NA"))
	assert.Equal(t, domain.CodeMissingField, v.ValidateSessionID("")[0].Code)
	assert.Equal(t, domain.CodeInvalidFormat, v.ValidateSessionID("42")[0].Code)
	assert.Equal(t, domain.CodeInvalidFormat, v.ValidateSessionID("01HZY3R8Q7M2C5XKJ9V4T6B1NU")[0].Code)
}

func TestValidateUserID(t *testing.T) {
	v := NewValidator(50)

	assert.Empty(t, v.ValidateUserID("42"))
	assert.Equal(t, domain.CodeOutOfRange, v.ValidateUserID(strings.Repeat("u", 129))[0].Code)
}
