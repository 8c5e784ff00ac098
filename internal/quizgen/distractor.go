package quizgen

import (
	"math/rand"
	"strconv"
	"unicode"

	"golang.org/x/text/cases"
)

// DistractorSource proposes wrong options. Next returns false when the
// source has nothing left to offer.
type DistractorSource interface {
	Next(rng *rand.Rand) (string, bool)
}

// DistractorGenerator draws distractors from an ordered list of sources,
// moving to the next source only when the current one is exhausted.
type DistractorGenerator struct {
	fallbackWords []string
}

// NewDistractorGenerator creates a generator using words as the
// vocabulary fallback.
func NewDistractorGenerator(words []string) *DistractorGenerator {
	return &DistractorGenerator{fallbackWords: words}
}

// Generate returns exactly DistractorCount options, all distinct and none
// equal to the keyword.
func (g *DistractorGenerator) Generate(keyword string, tokens []Token, rng *rand.Rand) []string {
	used := map[string]struct{}{keyword: {}}
	fold := cases.Fold()
	foldedKeyword := fold.String(keyword)

	accept := func(w string) bool {
		if _, dup := used[w]; dup {
			return false
		}
		if fold.String(w) == foldedKeyword {
			return false
		}
		used[w] = struct{}{}
		return true
	}

	out := make([]string, 0, DistractorCount)
	sources := []DistractorSource{
		newPoolSource(contextualPool(tokens)),
		newPoolSource(g.fallbackWords),
		&syntheticSource{collected: func() int { return len(out) }},
	}

	for _, src := range sources {
		for len(out) < DistractorCount {
			w, ok := src.Next(rng)
			if !ok {
				break
			}
			if accept(w) {
				out = append(out, w)
			}
		}
		if len(out) == DistractorCount {
			break
		}
	}
	return out
}

// Options returns the keyword and its distractors in random order.
func (g *DistractorGenerator) Options(keyword string, tokens []Token, rng *rand.Rand) []string {
	options := append([]string{keyword}, g.Generate(keyword, tokens, rng)...)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// contextualPool lists the sentence words usable as distractors: no
// stopwords and no pure punctuation, each word once.
func contextualPool(tokens []Token) []string {
	seen := make(map[string]struct{}, len(tokens))
	pool := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !hasLetterOrDigit(t.Text) || IsStopWord(t.Text) {
			continue
		}
		if _, dup := seen[t.Text]; dup {
			continue
		}
		seen[t.Text] = struct{}{}
		pool = append(pool, t.Text)
	}
	return pool
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// poolSource draws from a fixed list without replacement.
type poolSource struct {
	remaining []string
}

func newPoolSource(words []string) *poolSource {
	return &poolSource{remaining: append([]string(nil), words...)}
}

func (p *poolSource) Next(rng *rand.Rand) (string, bool) {
	n := len(p.remaining)
	if n == 0 {
		return "", false
	}
	i := rng.Intn(n)
	w := p.remaining[i]
	p.remaining[i] = p.remaining[n-1]
	p.remaining = p.remaining[:n-1]
	return w, true
}

// syntheticSource never runs dry. It numbers placeholders after the
// distractors collected so far and keeps counting up when a name is taken.
type syntheticSource struct {
	collected func() int
	last      int
}

func (s *syntheticSource) Next(*rand.Rand) (string, bool) {
	n := s.collected() + 1
	if n <= s.last {
		n = s.last + 1
	}
	s.last = n
	return "option" + strconv.Itoa(n), true
}
