// Package quizgen builds fill-in-the-blank multiple choice questions from
// plain text. It is pure: no I/O, no logging and no shared state. Every
// random draw comes from the *rand.Rand handed to the call, so concurrent
// callers only need their own generator.
package quizgen

const (
	// DistractorCount is the number of wrong options per question.
	DistractorCount = 3
	// OptionCount is the number of options shown per question.
	OptionCount = DistractorCount + 1
)

// DefaultFallbackWords is the generic vocabulary used when a sentence has too
// few usable words of its own.
var DefaultFallbackWords = []string{
	"example", "information", "knowledge", "important", "different", "process", "system",
}

// Token is a word together with its Penn Treebank part-of-speech tag.
type Token struct {
	Text string
	Tag  string
}

// SentenceSplitter splits normalized text into sentences.
type SentenceSplitter interface {
	Split(text string) ([]string, error)
}

// Tagger tokenizes a sentence and tags each token.
type Tagger interface {
	Tag(sentence string) ([]Token, error)
}

// Options configures the generator. Zero values are replaced by defaults.
type Options struct {
	// MaxSentences caps how many sentences are sampled from the text.
	MaxSentences int
	// MinSentenceWords is the word count a sentence must exceed to be used.
	MinSentenceWords int
	// MinKeywordLength is the rune length a keyword must exceed.
	MinKeywordLength int
	// MaxAttempts caps sentence draws per quiz, on top of twice the pool size.
	MaxAttempts int
	// BlankMarker replaces the keyword in the question text.
	BlankMarker string
	// FallbackWords is the generic distractor vocabulary.
	FallbackWords []string
}

// DefaultOptions returns the stock generator settings.
func DefaultOptions() Options {
	return Options{
		MaxSentences:     20,
		MinSentenceWords: 5,
		MinKeywordLength: 3,
		MaxAttempts:      30,
		BlankMarker:      "_______",
		FallbackWords:    DefaultFallbackWords,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxSentences <= 0 {
		o.MaxSentences = def.MaxSentences
	}
	if o.MinSentenceWords <= 0 {
		o.MinSentenceWords = def.MinSentenceWords
	}
	if o.MinKeywordLength <= 0 {
		o.MinKeywordLength = def.MinKeywordLength
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = def.MaxAttempts
	}
	if o.BlankMarker == "" {
		o.BlankMarker = def.BlankMarker
	}
	if o.FallbackWords == nil {
		o.FallbackWords = def.FallbackWords
	}
	return o
}
