// Package tesseract recognizes text with the Tesseract engine through cgo.
// It needs libtesseract and the language data installed on the host.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"textquiz/internal/domain"
)

// Engine runs Tesseract over a single uniform block of text, the layout a
// photographed page is reduced to after preprocessing.
type Engine struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// New creates an engine for the given Tesseract language codes, e.g. "eng".
func New(languages ...string) *Engine {
	return &Engine{languages: languages, clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize returns the trimmed text of a PNG encoded image. A gosseract
// client is not safe for concurrent use, so each call gets its own.
func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := e.clientFactory()
	defer c.Close()

	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}
	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

var _ domain.TextRecognizer = (*Engine)(nil)
