// Package textnorm cleans raw OCR output before sentence segmentation.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize composes the text to NFC, collapses every run of whitespace
// (including newlines and tabs) into a single space and trims both ends.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}
