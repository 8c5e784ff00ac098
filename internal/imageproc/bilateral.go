package imageproc

import (
	"image"
	"math"
)

type bilateralTap struct {
	dx, dy int
	weight float64
}

// bilateralFilter smooths flat regions while leaving stroke edges intact.
// The window is the disc of the given diameter; borders are reflected.
func bilateralFilter(src *image.Gray, diameter int, sigmaColor, sigmaSpace float64) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	radius := diameter / 2

	var taps []bilateralTap
	spaceCoeff := -0.5 / (sigmaSpace * sigmaSpace)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			if d2 > float64(radius*radius) {
				continue
			}
			taps = append(taps, bilateralTap{dx: dx, dy: dy, weight: math.Exp(d2 * spaceCoeff)})
		}
	}

	var colorWeight [256]float64
	colorCoeff := -0.5 / (sigmaColor * sigmaColor)
	for i := range colorWeight {
		colorWeight[i] = math.Exp(float64(i*i) * colorCoeff)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			center := int(src.Pix[y*src.Stride+x])
			var sum, norm float64
			for _, t := range taps {
				sx := reflect101(x+t.dx, w)
				sy := reflect101(y+t.dy, h)
				v := int(src.Pix[sy*src.Stride+sx])
				diff := v - center
				if diff < 0 {
					diff = -diff
				}
				wgt := t.weight * colorWeight[diff]
				sum += wgt * float64(v)
				norm += wgt
			}
			dst.Pix[y*dst.Stride+x] = clampByte(sum / norm)
		}
	}
	return dst
}
