package main

import (
	"fmt"

	"textquiz/internal/adapter/ocr"
	"textquiz/internal/adapter/ocr/tesseract"
	"textquiz/internal/config"
	"textquiz/internal/domain"
	"textquiz/internal/imageproc"
	"textquiz/internal/nlp"
	"textquiz/internal/quizgen"
)

func preprocessOptions(cfg config.PreprocessConfig) imageproc.Options {
	return imageproc.Options{
		BilateralDiameter: cfg.BilateralDiameter,
		SigmaColor:        cfg.SigmaColor,
		SigmaSpace:        cfg.SigmaSpace,
		BlockSize:         cfg.BlockSize,
		ThresholdC:        cfg.ThresholdC,
		Method:            imageproc.ThresholdMethod(cfg.ThresholdMethod),
		KernelSize:        cfg.KernelSize,
	}
}

func quizOptions(cfg config.QuizConfig) quizgen.Options {
	opts := quizgen.DefaultOptions()
	opts.MaxSentences = cfg.MaxSentences
	opts.MinSentenceWords = cfg.MinSentenceWords
	opts.MinKeywordLength = cfg.MinKeywordLength
	opts.MaxAttempts = cfg.MaxAttempts
	opts.BlankMarker = cfg.BlankMarker
	return opts
}

func newGenerator(cfg config.QuizConfig) (*quizgen.Generator, error) {
	return quizgen.NewGenerator(nlp.NewProseSplitter(), nlp.NewProseTagger(), quizOptions(cfg))
}

func newRecognizer(cfg config.OCRConfig) (domain.TextRecognizer, error) {
	switch cfg.Engine {
	case "tesseract":
		return tesseract.New(cfg.Languages...), nil
	case "ollama":
		return ocr.NewOllamaVisionEngine(cfg.LLMServer, cfg.Model, cfg.Timeout)
	case "openai":
		return ocr.NewOpenAIVisionEngine(cfg.APIKey, cfg.Model, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unsupported OCR engine: %s", cfg.Engine)
	}
}
