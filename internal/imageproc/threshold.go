package imageproc

import (
	"image"
	"math"
)

// adaptiveThresholdInv marks a pixel as ink (255) when it is at least c darker
// than its local neighbourhood mean, otherwise background (0). Working per
// block rather than globally copes with uneven lighting across a photo.
func adaptiveThresholdInv(src *image.Gray, method ThresholdMethod, blockSize int, c float64) *image.Gray {
	var kernel []float64
	if method == ThresholdGaussian {
		kernel = gaussianKernel(blockSize)
	} else {
		kernel = boxKernel(blockSize)
	}
	local := separableFilter(src, kernel)

	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	delta := int(math.Floor(c))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := int(src.Pix[y*src.Stride+x])
			mean := int(local.Pix[y*local.Stride+x])
			if v-mean <= -delta {
				dst.Pix[y*dst.Stride+x] = 255
			}
		}
	}
	return dst
}

func boxKernel(size int) []float64 {
	k := make([]float64, size)
	for i := range k {
		k[i] = 1 / float64(size)
	}
	return k
}

// gaussianKernel derives sigma from the size the same way common vision
// libraries do when no sigma is supplied.
func gaussianKernel(size int) []float64 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	k := make([]float64, size)
	half := size / 2
	var sum float64
	for i := range k {
		d := float64(i - half)
		k[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// separableFilter convolves rows then columns with kernel, replicating edges.
func separableFilter(src *image.Gray, kernel []float64) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	half := len(kernel) / 2
	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x := 0; x < w; x++ {
			var acc float64
			for k, kv := range kernel {
				acc += kv * float64(row[clampIndex(x+k-half, w)])
			}
			tmp[y*w+x] = acc
		}
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float64
			for k, kv := range kernel {
				acc += kv * tmp[clampIndex(y+k-half, h)*w+x]
			}
			dst.Pix[y*dst.Stride+x] = clampByte(acc)
		}
	}
	return dst
}
