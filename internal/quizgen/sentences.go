package quizgen

import (
	"math/rand"
	"strings"
)

// Sentence is a span of normalized text considered for a question.
type Sentence struct {
	Text      string
	WordCount int
}

// SentenceSelector filters out short sentences and caps the rest with a
// uniform sample. It does not rank sentences by importance.
type SentenceSelector struct {
	splitter     SentenceSplitter
	maxSentences int
	minWords     int
}

// NewSentenceSelector creates a selector returning at most maxSentences
// sentences having more than minWords words.
func NewSentenceSelector(splitter SentenceSplitter, maxSentences, minWords int) *SentenceSelector {
	return &SentenceSelector{splitter: splitter, maxSentences: maxSentences, minWords: minWords}
}

// Select splits text and returns the usable sentences. When more than the
// cap qualify, the cap is drawn without replacement; order is not meaningful.
func (s *SentenceSelector) Select(text string, rng *rand.Rand) ([]Sentence, error) {
	if text == "" {
		return nil, nil
	}
	raw, err := s.splitter.Split(text)
	if err != nil {
		return nil, err
	}

	usable := make([]Sentence, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		words := len(strings.Fields(r))
		if words <= s.minWords {
			continue
		}
		usable = append(usable, Sentence{Text: r, WordCount: words})
	}
	if len(usable) <= s.maxSentences {
		return usable, nil
	}

	// Partial Fisher-Yates: the first maxSentences slots become the sample.
	for i := 0; i < s.maxSentences; i++ {
		j := i + rng.Intn(len(usable)-i)
		usable[i], usable[j] = usable[j], usable[i]
	}
	return usable[:s.maxSentences], nil
}
