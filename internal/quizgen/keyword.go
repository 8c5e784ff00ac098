package quizgen

import (
	"math/rand"
	"strings"
	"unicode/utf8"
)

// contentTagPrefixes are the noun, verb and adjective families of the Penn
// Treebank tag set.
var contentTagPrefixes = []string{"NN", "VB", "JJ"}

// IsContentTag reports whether tag marks a noun-like, verb-like or
// adjective-like token.
func IsContentTag(tag string) bool {
	for _, p := range contentTagPrefixes {
		if strings.HasPrefix(tag, p) {
			return true
		}
	}
	return false
}

// Blank is a sentence with one keyword masked out.
type Blank struct {
	Sentence     Sentence
	Tokens       []Token
	Keyword      string
	QuestionText string
}

// KeywordSelector picks the word to blank out of a sentence.
type KeywordSelector struct {
	tagger      Tagger
	minLength   int
	blankMarker string
}

// NewKeywordSelector creates a selector accepting content words longer than
// minLength runes.
func NewKeywordSelector(tagger Tagger, minLength int, blankMarker string) *KeywordSelector {
	return &KeywordSelector{tagger: tagger, minLength: minLength, blankMarker: blankMarker}
}

// Candidates returns the tokens eligible as a keyword, duplicates included
// so that repeated words are proportionally more likely.
func (k *KeywordSelector) Candidates(sentence string, tokens []Token) []string {
	var out []string
	for _, t := range tokens {
		if !IsContentTag(t.Tag) || utf8.RuneCountInString(t.Text) <= k.minLength {
			continue
		}
		// Tokenizers may rewrite text (quotes, contractions); only words that
		// can actually be masked are usable.
		if !strings.Contains(sentence, t.Text) {
			continue
		}
		out = append(out, t.Text)
	}
	return out
}

// Select tags the sentence and blanks a uniformly chosen candidate. Only the
// first textual occurrence is replaced; later occurrences stay visible. It
// returns false when the sentence has no usable keyword.
func (k *KeywordSelector) Select(sentence Sentence, rng *rand.Rand) (*Blank, bool) {
	tokens, err := k.tagger.Tag(sentence.Text)
	if err != nil || len(tokens) == 0 {
		return nil, false
	}
	candidates := k.Candidates(sentence.Text, tokens)
	if len(candidates) == 0 {
		return nil, false
	}
	word := candidates[rng.Intn(len(candidates))]
	return &Blank{
		Sentence:     sentence,
		Tokens:       tokens,
		Keyword:      word,
		QuestionText: strings.Replace(sentence.Text, word, k.blankMarker, 1),
	}, true
}
