package validation

import (
	"strings"
	"unicode/utf8"

	"textquiz/internal/domain"
	"textquiz/internal/dto"
)

const (
	maxTextLength   = 100000
	maxUserIDLength = 128
	maxAnswerLength = 512
	maxResults      = 200
)

// Validator provides request validation functionality
type Validator struct {
	maxQuestions int
}

// NewValidator creates a validator accepting 1..maxQuestions questions per quiz.
func NewValidator(maxQuestions int) *Validator {
	return &Validator{maxQuestions: maxQuestions}
}

// ValidateText checks a free text field.
func (v *Validator) ValidateText(field, text string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(text) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if n := utf8.RuneCountInString(text); n > maxTextLength {
		errors = append(errors, domain.NewOutOfRangeError(field, n, 1, maxTextLength))
	}
	return errors
}

// ValidateGenerateQuizRequest validates the request and returns the
// question count to use, defaulting when the request omits it.
func (v *Validator) ValidateGenerateQuizRequest(req dto.GenerateQuizRequest, defaultCount int) (int, domain.ValidationErrors) {
	errors := v.ValidateText("text", req.Text)

	count := defaultCount
	if req.NumQuestions != nil {
		count = *req.NumQuestions
		if count < 1 || count > v.maxQuestions {
			errors = append(errors, domain.NewOutOfRangeError("num_questions", count, 1, v.maxQuestions))
		}
	}
	return count, errors
}

// ValidateUserID validates the opaque caller supplied user identifier.
func (v *Validator) ValidateUserID(userID string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(userID) == "" {
		errors = append(errors, domain.NewMissingFieldError("user_id"))
	} else if len(userID) > maxUserIDLength {
		errors = append(errors, domain.NewOutOfRangeError("user_id", len(userID), 1, maxUserIDLength))
	}
	return errors
}

// ValidateSaveQuizResultRequest validates a taken quiz before it is stored.
func (v *Validator) ValidateSaveQuizResultRequest(req dto.SaveQuizResultRequest) domain.ValidationErrors {
	errors := v.ValidateUserID(req.UserID)

	if len(req.Results) == 0 {
		errors = append(errors, domain.NewMissingFieldError("results"))
		return errors
	}
	if len(req.Results) > maxResults {
		errors = append(errors, domain.NewOutOfRangeError("results", len(req.Results), 1, maxResults))
		return errors
	}

	for i, r := range req.Results {
		prefix := "results[" + itoa(i) + "]."
		if strings.TrimSpace(r.Question) == "" {
			errors = append(errors, domain.NewMissingFieldError(prefix+"question"))
		}
		if strings.TrimSpace(r.CorrectAnswer) == "" {
			errors = append(errors, domain.NewMissingFieldError(prefix+"correct_answer"))
		}
		if len(r.Options) == 0 {
			errors = append(errors, domain.NewMissingFieldError(prefix+"options"))
		}
		if r.UserAnswer != nil && len(*r.UserAnswer) > maxAnswerLength {
			errors = append(errors, domain.NewOutOfRangeError(prefix+"user_answer", len(*r.UserAnswer), 0, maxAnswerLength))
		}
	}
	return errors
}

// ValidateSessionID checks a stored quiz id.
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("id", id))
	}
	return errors
}
