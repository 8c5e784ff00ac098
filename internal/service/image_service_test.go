package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"testing"
	"time"

	"textquiz/internal/cache"
	"textquiz/internal/domain"
	"textquiz/internal/imageproc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var rawUpload = []byte("raw image bytes")

func preprocessed(angle float64) *imageproc.Result {
	return &imageproc.Result{Image: image.NewGray(image.Rect(0, 0, 8, 8)), Angle: angle}
}

func TestImageService_ProcessImage(t *testing.T) {
	ctx := context.Background()
	key := cache.OCRTextKey(digest(rawUpload), "mock", "default")

	t.Run("Cache miss runs pipeline and stores text", func(t *testing.T) {
		pre, ocr, c := new(MockPreprocessor), new(MockRecognizer), new(MockCache)
		c.On("Get", ctx, key).Return("", domain.ErrCacheMiss)
		pre.On("Preprocess", rawUpload).Return(preprocessed(2.5), nil)
		ocr.On("Recognize", ctx, mock.AnythingOfType("[]uint8")).Return("  The cell membrane.\n", nil)
		c.On("Set", ctx, key, "The cell membrane.", time.Hour).Return(nil)

		s := NewImageService(pre, ocr, c, time.Hour)
		resp, err := s.ProcessImage(ctx, rawUpload, false)

		require.NoError(t, err)
		assert.Equal(t, "The cell membrane.", resp.ExtractedText)
		assert.Equal(t, "mock", resp.Engine)
		assert.False(t, resp.Cached)
		assert.Nil(t, resp.SkewAngle)
		pre.AssertExpectations(t)
		ocr.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("Cache hit skips pipeline", func(t *testing.T) {
		pre, ocr, c := new(MockPreprocessor), new(MockRecognizer), new(MockCache)
		c.On("Get", ctx, key).Return("cached text", nil)

		s := NewImageService(pre, ocr, c, time.Hour)
		resp, err := s.ProcessImage(ctx, rawUpload, false)

		require.NoError(t, err)
		assert.Equal(t, "cached text", resp.ExtractedText)
		assert.True(t, resp.Cached)
		pre.AssertNotCalled(t, "Preprocess", mock.Anything)
		ocr.AssertNotCalled(t, "Recognize", mock.Anything, mock.Anything)
	})

	t.Run("Cache errors are ignored", func(t *testing.T) {
		pre, ocr, c := new(MockPreprocessor), new(MockRecognizer), new(MockCache)
		c.On("Get", ctx, key).Return("", errors.New("connection refused"))
		pre.On("Preprocess", rawUpload).Return(preprocessed(0), nil)
		ocr.On("Recognize", ctx, mock.Anything).Return("text", nil)
		c.On("Set", ctx, key, "text", time.Hour).Return(errors.New("connection refused"))

		s := NewImageService(pre, ocr, c, time.Hour)
		resp, err := s.ProcessImage(ctx, rawUpload, false)

		require.NoError(t, err)
		assert.Equal(t, "text", resp.ExtractedText)
	})

	t.Run("Debug reports angle and bypasses cache read", func(t *testing.T) {
		pre, ocr, c := new(MockPreprocessor), new(MockRecognizer), new(MockCache)
		pre.On("Preprocess", rawUpload).Return(preprocessed(-3.25), nil)
		ocr.On("Recognize", ctx, mock.Anything).Return("text", nil)
		c.On("Set", ctx, key, "text", time.Hour).Return(nil)

		s := NewImageService(pre, ocr, c, time.Hour)
		resp, err := s.ProcessImage(ctx, rawUpload, true)

		require.NoError(t, err)
		require.NotNil(t, resp.SkewAngle)
		assert.InDelta(t, -3.25, *resp.SkewAngle, 1e-9)
		c.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("No cache configured", func(t *testing.T) {
		pre, ocr := new(MockPreprocessor), new(MockRecognizer)
		pre.On("Preprocess", rawUpload).Return(preprocessed(0), nil)
		ocr.On("Recognize", ctx, mock.Anything).Return("text", nil)

		s := NewImageService(pre, ocr, nil, time.Hour)
		resp, err := s.ProcessImage(ctx, rawUpload, false)

		require.NoError(t, err)
		assert.Equal(t, "text", resp.ExtractedText)
	})

	t.Run("Empty OCR output", func(t *testing.T) {
		pre, ocr := new(MockPreprocessor), new(MockRecognizer)
		pre.On("Preprocess", rawUpload).Return(preprocessed(0), nil)
		ocr.On("Recognize", ctx, mock.Anything).Return(" \n\t", nil)

		s := NewImageService(pre, ocr, nil, time.Hour)
		_, err := s.ProcessImage(ctx, rawUpload, false)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeOCRFailed, domainErr.Code)
	})

	t.Run("OCR engine error", func(t *testing.T) {
		pre, ocr := new(MockPreprocessor), new(MockRecognizer)
		pre.On("Preprocess", rawUpload).Return(preprocessed(0), nil)
		ocr.On("Recognize", ctx, mock.Anything).Return("", errors.New("tesseract: no language data"))

		s := NewImageService(pre, ocr, nil, time.Hour)
		_, err := s.ProcessImage(ctx, rawUpload, false)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeOCRFailed, domainErr.Code)
	})

	t.Run("Pipeline errors keep their code", func(t *testing.T) {
		cases := []struct {
			err  error
			code domain.ErrorCode
		}{
			{fmt.Errorf("%w: unknown format", domain.ErrDecode), domain.CodeDecode},
			{domain.ErrEmptyForeground, domain.CodeEmptyForeground},
		}
		for _, tc := range cases {
			pre, ocr := new(MockPreprocessor), new(MockRecognizer)
			pre.On("Preprocess", rawUpload).Return(nil, tc.err)

			s := NewImageService(pre, ocr, nil, time.Hour)
			_, err := s.ProcessImage(ctx, rawUpload, false)

			var domainErr *domain.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tc.code, domainErr.Code)
			ocr.AssertNotCalled(t, "Recognize", mock.Anything, mock.Anything)
		}
	})

	t.Run("Pipeline change misses old cache entries", func(t *testing.T) {
		pre, ocr, c := &MockPreprocessor{fingerprint: "gaussian"}, new(MockRecognizer), new(MockCache)
		newKey := cache.OCRTextKey(digest(rawUpload), "mock", "gaussian")
		require.NotEqual(t, key, newKey)
		c.On("Get", ctx, newKey).Return("", domain.ErrCacheMiss)
		pre.On("Preprocess", rawUpload).Return(preprocessed(0), nil)
		ocr.On("Recognize", ctx, mock.Anything).Return("fresh text", nil)
		c.On("Set", ctx, newKey, "fresh text", time.Hour).Return(nil)

		s := NewImageService(pre, ocr, c, time.Hour)
		resp, err := s.ProcessImage(ctx, rawUpload, false)

		require.NoError(t, err)
		assert.Equal(t, "fresh text", resp.ExtractedText)
		assert.False(t, resp.Cached)
		c.AssertNotCalled(t, "Get", ctx, key)
		c.AssertExpectations(t)
	})

	t.Run("Empty upload", func(t *testing.T) {
		s := NewImageService(new(MockPreprocessor), new(MockRecognizer), nil, time.Hour)
		_, err := s.ProcessImage(ctx, nil, false)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	})
}

func TestImageService_PreprocessImage(t *testing.T) {
	pre := new(MockPreprocessor)
	pre.On("Preprocess", rawUpload).Return(preprocessed(0), nil)

	s := NewImageService(pre, new(MockRecognizer), nil, time.Hour)
	png, err := s.PreprocessImage(context.Background(), rawUpload)

	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestDigest(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", digest([]byte{}))
	assert.NotEqual(t, digest([]byte("a")), digest([]byte("b")))
}
