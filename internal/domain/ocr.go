package domain

import "context"

// TextRecognizer runs OCR over an already preprocessed image.
// The image is PNG encoded.
type TextRecognizer interface {
	Name() string
	Recognize(ctx context.Context, image []byte) (string, error)
}
