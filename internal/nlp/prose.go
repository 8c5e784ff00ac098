// Package nlp adapts the prose library to the sentence splitting and
// part-of-speech tagging contracts of the quiz generator.
package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"textquiz/internal/quizgen"
)

// ProseSplitter segments text with prose's punkt-style sentence boundary model.
type ProseSplitter struct{}

// NewProseSplitter creates a ProseSplitter
func NewProseSplitter() *ProseSplitter {
	return &ProseSplitter{}
}

// Split returns the sentences of text, trimmed, empty ones dropped.
func (s *ProseSplitter) Split(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("segment text: %w", err)
	}

	sentences := doc.Sentences()
	out := make([]string, 0, len(sentences))
	for _, sent := range sentences {
		if t := strings.TrimSpace(sent.Text); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

// ProseTagger tokenizes a sentence and tags it with the Penn Treebank tag set.
// The perceptron model is loaded once and only read afterwards, so a
// ProseTagger is safe for concurrent use.
type ProseTagger struct {
	model *prose.Model
}

// NewProseTagger creates a ProseTagger and loads the tagging model.
func NewProseTagger() *ProseTagger {
	t := &ProseTagger{}
	doc, err := prose.NewDocument("",
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err == nil {
		t.model = doc.Model
	}
	return t
}

// Tag returns the tokens of sentence with their part-of-speech tags.
func (t *ProseTagger) Tag(sentence string) ([]quizgen.Token, error) {
	opts := []prose.DocOpt{
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	}
	if t.model != nil {
		opts = append(opts, prose.UsingModel(t.model))
	}
	doc, err := prose.NewDocument(sentence, opts...)
	if err != nil {
		return nil, fmt.Errorf("tag sentence: %w", err)
	}

	tokens := doc.Tokens()
	out := make([]quizgen.Token, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, quizgen.Token{Text: tok.Text, Tag: tok.Tag})
	}
	return out, nil
}

var (
	_ quizgen.SentenceSplitter = (*ProseSplitter)(nil)
	_ quizgen.Tagger           = (*ProseTagger)(nil)
)
