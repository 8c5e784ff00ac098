package quizgen

import (
	"errors"
	"strings"
)

// periodSplitter splits on ". " and keeps the period on each sentence.
type periodSplitter struct{}

func (periodSplitter) Split(text string) ([]string, error) {
	parts := strings.SplitAfter(text, ". ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

// lexiconTagger splits on spaces, peels trailing punctuation into its own
// token and tags words from a fixed lexicon. Unknown words are tagged DT.
type lexiconTagger struct {
	lexicon map[string]string
	err     error
}

func (l lexiconTagger) Tag(sentence string) ([]Token, error) {
	if l.err != nil {
		return nil, l.err
	}
	var tokens []Token
	for _, w := range strings.Fields(sentence) {
		trail := ""
		if n := len(w); n > 1 && strings.ContainsAny(w[n-1:], ".,;!?") {
			w, trail = w[:n-1], w[n-1:]
		}
		tag, ok := l.lexicon[strings.ToLower(w)]
		if !ok {
			tag = "DT"
		}
		tokens = append(tokens, Token{Text: w, Tag: tag})
		if trail != "" {
			tokens = append(tokens, Token{Text: trail, Tag: trail})
		}
	}
	return tokens, nil
}

var errTagger = errors.New("tagger unavailable")

var biologyLexicon = map[string]string{
	"mitochondria": "NNS",
	"is":           "VBZ",
	"powerhouse":   "NN",
	"cell":         "NN",
	"cells":        "NNS",
	"divides":      "VBZ",
	"grows":        "VBZ",
	"quickly":      "RB",
	"nucleus":      "NN",
	"contains":     "VBZ",
	"genetic":      "JJ",
	"material":     "NN",
	"membrane":     "NN",
	"protects":     "VBZ",
	"whole":        "JJ",
	"ribosomes":    "NNS",
	"build":        "VB",
	"proteins":     "NNS",
}
