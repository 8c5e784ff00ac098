package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"textquiz/internal/cache"
	"textquiz/internal/domain"
	"textquiz/internal/dto"
	"textquiz/internal/imageproc"
	"textquiz/internal/logger"

	"go.uber.org/zap"
)

// ImagePreprocessor cleans an uploaded page. *imageproc.Preprocessor satisfies it.
type ImagePreprocessor interface {
	Preprocess(raw []byte) (*imageproc.Result, error)
	// Fingerprint identifies the parameters the preprocessor runs with.
	Fingerprint() string
}

// ImageService turns uploaded page images into text.
type ImageService interface {
	// ProcessImage preprocesses and recognizes the upload. With debug set
	// the detected skew angle is reported; debug runs skip the cache.
	ProcessImage(ctx context.Context, raw []byte, debug bool) (*dto.ProcessImageResponse, error)
	// PreprocessImage returns the cleaned binary image as PNG bytes.
	PreprocessImage(ctx context.Context, raw []byte) ([]byte, error)
}

type imageService struct {
	preprocessor ImagePreprocessor
	recognizer   domain.TextRecognizer
	cache        domain.Cache
	cacheTTL     time.Duration
}

// NewImageService creates a new instance of imageService. cache may be nil.
func NewImageService(
	preprocessor ImagePreprocessor,
	recognizer domain.TextRecognizer,
	ocrCache domain.Cache,
	cacheTTL time.Duration,
) ImageService {
	if ocrCache == nil {
		logger.Get().Warn("ImageService initialized without cache. OCR results will not be cached.")
	}
	return &imageService{
		preprocessor: preprocessor,
		recognizer:   recognizer,
		cache:        ocrCache,
		cacheTTL:     cacheTTL,
	}
}

func (s *imageService) ProcessImage(ctx context.Context, raw []byte, debug bool) (*dto.ProcessImageResponse, error) {
	if len(raw) == 0 {
		return nil, domain.NewInvalidInputError("image is required")
	}

	key := cache.OCRTextKey(digest(raw), s.recognizer.Name(), s.preprocessor.Fingerprint())
	if !debug {
		if text, ok := s.cachedText(ctx, key); ok {
			return &dto.ProcessImageResponse{ExtractedText: text, Engine: s.recognizer.Name(), Cached: true}, nil
		}
	}

	start := time.Now()
	result, err := s.preprocessor.Preprocess(raw)
	if err != nil {
		logger.Get().Warn("Image preprocessing failed", zap.Error(err), zap.Int("bytes", len(raw)))
		return nil, domain.FromPipelineError(err)
	}
	png, err := result.Encode()
	if err != nil {
		return nil, domain.NewInternalError("Failed to encode preprocessed image", err)
	}
	preprocessed := time.Since(start)

	text, err := s.recognizer.Recognize(ctx, png)
	if err != nil {
		logger.Get().Error("OCR engine failed", zap.Error(err), zap.String("engine", s.recognizer.Name()))
		return nil, domain.NewOCRFailedError(err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewOCRFailedError(nil)
	}

	logger.Get().Info("Image processed",
		zap.String("engine", s.recognizer.Name()),
		zap.Float64("skewAngle", result.Angle),
		zap.Duration("preprocess", preprocessed),
		zap.Duration("total", time.Since(start)),
		zap.Int("chars", len(text)))

	s.storeText(ctx, key, text)

	resp := &dto.ProcessImageResponse{ExtractedText: text, Engine: s.recognizer.Name()}
	if debug {
		angle := result.Angle
		resp.SkewAngle = &angle
	}
	return resp, nil
}

func (s *imageService) PreprocessImage(ctx context.Context, raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, domain.NewInvalidInputError("image is required")
	}
	result, err := s.preprocessor.Preprocess(raw)
	if err != nil {
		return nil, domain.FromPipelineError(err)
	}
	png, err := result.Encode()
	if err != nil {
		return nil, domain.NewInternalError("Failed to encode preprocessed image", err)
	}
	return png, nil
}

// cachedText never fails the request; cache errors are logged and treated as a miss.
func (s *imageService) cachedText(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	text, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Failed to read OCR cache", zap.Error(err), zap.String("key", key))
		}
		return "", false
	}
	logger.Get().Debug("OCR cache hit", zap.String("key", key))
	return text, true
}

func (s *imageService) storeText(ctx context.Context, key, text string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, text, s.cacheTTL); err != nil {
		logger.Get().Warn("Failed to write OCR cache", zap.Error(err), zap.String("key", key))
	}
}

func digest(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
