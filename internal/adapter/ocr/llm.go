// Package ocr holds the text recognition engines that do not need cgo.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"textquiz/internal/domain"
	"textquiz/internal/logger"
)

const transcribePrompt = `Transcribe all text in this image exactly as written.
Output only the transcribed text as plain text, keeping line breaks.
Do not describe the image, do not translate and do not add commentary.
If the image contains no readable text, output nothing.`

// VisionEngine recognizes text by asking a multimodal LLM to transcribe the image.
type VisionEngine struct {
	provider string
	model    string
	llm      llms.Model
	timeout  time.Duration
}

// NewVisionEngine wraps an already constructed langchaingo model.
func NewVisionEngine(provider, model string, llm llms.Model, timeout time.Duration) *VisionEngine {
	return &VisionEngine{provider: provider, model: model, llm: llm, timeout: timeout}
}

// NewOllamaVisionEngine connects to an Ollama server running a vision model such as llava.
func NewOllamaVisionEngine(serverURL, model string, timeout time.Duration) (*VisionEngine, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}
	llm, err := ollama.New(
		ollama.WithModel(model),
		ollama.WithServerURL(serverURL),
		ollama.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo Ollama client: %w", err)
	}
	return NewVisionEngine("ollama", model, llm, timeout), nil
}

// NewOpenAIVisionEngine uses the OpenAI chat completions API.
func NewOpenAIVisionEngine(apiKey, model string, timeout time.Duration) (*VisionEngine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("openai model name cannot be empty")
	}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
		openai.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo OpenAI client: %w", err)
	}
	return NewVisionEngine("openai", model, llm, timeout), nil
}

func (e *VisionEngine) Name() string { return e.provider }

// Recognize sends the PNG image with a transcription prompt and returns the
// model's answer with any reasoning block removed.
func (e *VisionEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	l := logger.Get()
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.llm.GenerateContent(ctx, []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart("image/png", image),
				llms.TextPart(transcribePrompt),
			},
		},
	}, llms.WithTemperature(0))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("Vision OCR request timed out", zap.String("provider", e.provider), zap.Duration("timeout", e.timeout))
			return "", fmt.Errorf("vision OCR timed out: %w", err)
		}
		return "", fmt.Errorf("vision OCR call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("vision OCR returned no choices")
	}

	text := stripThinking(resp.Choices[0].Content)
	l.Debug("Vision OCR response received",
		zap.String("provider", e.provider),
		zap.String("model", e.model),
		zap.Int("chars", len(text)),
	)
	return text, nil
}

// stripThinking drops a <think>...</think> block some reasoning models emit.
func stripThinking(s string) string {
	s = strings.TrimSpace(s)
	if start := strings.Index(s, "<think>"); start != -1 {
		if end := strings.Index(s, "</think>"); end > start {
			s = s[:start] + s[end+len("</think>"):]
		}
	}
	return strings.TrimSpace(s)
}

var _ domain.TextRecognizer = (*VisionEngine)(nil)
