package quizgen

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"textquiz/internal/domain"
	"textquiz/internal/textnorm"
)

// StopReason explains why assembly ended.
type StopReason string

const (
	TargetReached     StopReason = "target_reached"
	AttemptsExhausted StopReason = "attempts_exhausted"
	PoolEmpty         StopReason = "pool_empty"
)

// Assembly is the outcome of one generation run.
type Assembly struct {
	Questions       []domain.QuizQuestion
	UsableSentences int
	Attempts        int
	Reason          StopReason
}

// Generator turns text into quiz questions.
type Generator struct {
	opts        Options
	sentences   *SentenceSelector
	keywords    *KeywordSelector
	distractors *DistractorGenerator
}

// NewGenerator wires a generator from a sentence splitter and a tagger.
func NewGenerator(splitter SentenceSplitter, tagger Tagger, opts Options) (*Generator, error) {
	if splitter == nil || tagger == nil {
		return nil, errors.New("quizgen: splitter and tagger are required")
	}
	opts = opts.withDefaults()
	return &Generator{
		opts:        opts,
		sentences:   NewSentenceSelector(splitter, opts.MaxSentences, opts.MinSentenceWords),
		keywords:    NewKeywordSelector(tagger, opts.MinKeywordLength, opts.BlankMarker),
		distractors: NewDistractorGenerator(opts.FallbackWords),
	}, nil
}

// Generate returns up to targetCount questions. It returns
// domain.ErrInsufficientContent when none could be built.
func (g *Generator) Generate(text string, targetCount int, rng *rand.Rand) ([]domain.QuizQuestion, error) {
	a, err := g.Assemble(text, targetCount, rng)
	if err != nil {
		return nil, err
	}
	return a.Questions, nil
}

// Assemble is Generate with run statistics.
//
// Sentences are drawn at random without replacement. The number of draws is
// bounded by MaxAttempts and by twice the number of usable sentences, so
// assembly always terminates even if every sentence is unusable.
func (g *Generator) Assemble(text string, targetCount int, rng *rand.Rand) (*Assembly, error) {
	if targetCount < 1 {
		return nil, fmt.Errorf("quizgen: target count must be positive, got %d", targetCount)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	pool, err := g.sentences.Select(textnorm.Normalize(text), rng)
	if err != nil {
		return nil, fmt.Errorf("quizgen: split sentences: %w", err)
	}

	a := &Assembly{UsableSentences: len(pool)}
	budget := g.opts.MaxAttempts
	if limit := 2 * len(pool); limit < budget {
		budget = limit
	}

	for {
		if len(a.Questions) >= targetCount {
			a.Reason = TargetReached
			break
		}
		if len(pool) == 0 {
			a.Reason = PoolEmpty
			break
		}
		if a.Attempts >= budget {
			a.Reason = AttemptsExhausted
			break
		}
		a.Attempts++

		i := rng.Intn(len(pool))
		sentence := pool[i]
		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]

		blank, ok := g.keywords.Select(sentence, rng)
		if !ok {
			continue
		}
		a.Questions = append(a.Questions, domain.QuizQuestion{
			QuestionText:  blank.QuestionText,
			CorrectAnswer: blank.Keyword,
			Options:       g.distractors.Options(blank.Keyword, blank.Tokens, rng),
		})
	}

	if len(a.Questions) == 0 {
		return a, domain.ErrInsufficientContent
	}
	return a, nil
}
