// Package imageproc turns a photographed page into an OCR-ready binary image.
//
// The pipeline is grayscale -> bilateral denoise -> adaptive inverse threshold
// -> skew correction -> 3x3 closing then opening. The output has white ink on
// a black background. Every stage is deterministic; the package performs no I/O
// and keeps no state between calls.
package imageproc

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	"image/png"

	"textquiz/internal/domain"

	_ "golang.org/x/image/bmp"  // register decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// ThresholdMethod selects how the local threshold is computed.
type ThresholdMethod string

const (
	// ThresholdMean uses the unweighted mean of the block.
	ThresholdMean ThresholdMethod = "mean"
	// ThresholdGaussian uses a gaussian weighted mean of the block.
	ThresholdGaussian ThresholdMethod = "gaussian"
)

// Options holds the fixed parameters of the pipeline.
type Options struct {
	BilateralDiameter int
	SigmaColor        float64
	SigmaSpace        float64
	BlockSize         int
	ThresholdC        float64
	Method            ThresholdMethod
	KernelSize        int
}

// DefaultOptions returns the parameters tuned for phone photographs of printed pages.
func DefaultOptions() Options {
	return Options{
		BilateralDiameter: 9,
		SigmaColor:        75,
		SigmaSpace:        75,
		BlockSize:         11,
		ThresholdC:        2,
		Method:            ThresholdMean,
		KernelSize:        3,
	}
}

// Validate checks that the options describe a runnable pipeline.
func (o Options) Validate() error {
	if o.BilateralDiameter <= 0 {
		return fmt.Errorf("bilateral diameter must be positive, got %d", o.BilateralDiameter)
	}
	if o.SigmaColor <= 0 || o.SigmaSpace <= 0 {
		return fmt.Errorf("bilateral sigmas must be positive, got color=%v space=%v", o.SigmaColor, o.SigmaSpace)
	}
	if o.BlockSize < 3 || o.BlockSize%2 == 0 {
		return fmt.Errorf("threshold block size must be odd and at least 3, got %d", o.BlockSize)
	}
	if o.Method != ThresholdMean && o.Method != ThresholdGaussian {
		return fmt.Errorf("unknown threshold method %q", o.Method)
	}
	if o.KernelSize < 1 || o.KernelSize%2 == 0 {
		return fmt.Errorf("morphology kernel size must be odd and positive, got %d", o.KernelSize)
	}
	return nil
}

// Fingerprint identifies the parameter set. Runs with equal fingerprints
// produce identical output for the same input.
func (o Options) Fingerprint() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%g|%g|%d|%g|%s|%d",
		o.BilateralDiameter, o.SigmaColor, o.SigmaSpace, o.BlockSize, o.ThresholdC, o.Method, o.KernelSize)))
	return hex.EncodeToString(sum[:6])
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Image is the cleaned binary image, same dimensions as the input.
	Image *image.Gray
	// Angle is the rotation in degrees (counter-clockwise positive) applied to deskew.
	Angle float64
}

// Encode returns the binary image as PNG bytes.
func (r *Result) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.Image); err != nil {
		return nil, fmt.Errorf("failed to encode preprocessed image: %w", err)
	}
	return buf.Bytes(), nil
}

// Preprocessor runs the pipeline with a fixed set of options.
type Preprocessor struct {
	opts Options
}

// NewPreprocessor creates a Preprocessor after validating opts.
func NewPreprocessor(opts Options) (*Preprocessor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Preprocessor{opts: opts}, nil
}

// Fingerprint returns the fingerprint of the options this Preprocessor runs with.
func (p *Preprocessor) Fingerprint() string {
	return p.opts.Fingerprint()
}

// Preprocess decodes raw image bytes and runs the pipeline.
func (p *Preprocessor) Preprocess(raw []byte) (*Result, error) {
	img, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return p.Process(img)
}

// Process runs the pipeline on an already decoded image.
func (p *Preprocessor) Process(img image.Image) (*Result, error) {
	gray := ToGray(img)
	denoised := bilateralFilter(gray, p.opts.BilateralDiameter, p.opts.SigmaColor, p.opts.SigmaSpace)
	binary := adaptiveThresholdInv(denoised, p.opts.Method, p.opts.BlockSize, p.opts.ThresholdC)

	angle, err := estimateSkew(binary)
	if err != nil {
		return nil, err
	}

	deskewed := binary
	if angle != 0 {
		deskewed = rotate(binary, angle)
		rebinarize(deskewed)
	}

	kernel := p.opts.KernelSize
	cleaned := morphOpen(morphClose(deskewed, kernel), kernel)
	return &Result{Image: cleaned, Angle: angle}, nil
}

// PreprocessImage runs the default pipeline and returns the PNG encoded binary image.
func PreprocessImage(raw []byte) ([]byte, error) {
	p := &Preprocessor{opts: DefaultOptions()}
	res, err := p.Preprocess(raw)
	if err != nil {
		return nil, err
	}
	return res.Encode()
}

// MaxPixels bounds the declared dimensions of an upload. The header is
// checked before any pixel buffer is allocated.
const MaxPixels = 1 << 26

// Decode decodes any registered image format.
func Decode(raw []byte) (image.Image, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty input", domain.ErrDecode)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: image is %dx%d, limit is %d pixels", domain.ErrDecode, cfg.Width, cfg.Height, MaxPixels)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	return img, nil
}

// ToGray converts img to an 8-bit luminance image anchored at the origin.
// Transparent regions are composited over white.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Over)
	return gray
}

// rebinarize snaps resampled values back to {0, 255}.
func rebinarize(img *image.Gray) {
	for i, v := range img.Pix {
		if v >= 128 {
			img.Pix[i] = 255
		} else {
			img.Pix[i] = 0
		}
	}
}
