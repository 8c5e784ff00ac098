package imageproc

import "image"

// morphClose fills small gaps inside strokes (dilate then erode).
func morphClose(src *image.Gray, size int) *image.Gray {
	return erode(dilate(src, size), size)
}

// morphOpen removes isolated speckles (erode then dilate).
func morphOpen(src *image.Gray, size int) *image.Gray {
	return dilate(erode(src, size), size)
}

func dilate(src *image.Gray, size int) *image.Gray {
	return rectExtremum(src, size, func(a, b uint8) bool { return a > b })
}

func erode(src *image.Gray, size int) *image.Gray {
	return rectExtremum(src, size, func(a, b uint8) bool { return a < b })
}

// rectExtremum applies a square structuring element as two 1-D passes.
// Pixels outside the image do not take part in the extremum.
func rectExtremum(src *image.Gray, size int, better func(a, b uint8) bool) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	half := size / 2

	tmp := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			best := src.Pix[y*src.Stride+x]
			for k := x - half; k <= x+half; k++ {
				if k < 0 || k >= w {
					continue
				}
				if v := src.Pix[y*src.Stride+k]; better(v, best) {
					best = v
				}
			}
			tmp.Pix[y*tmp.Stride+x] = best
		}
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			best := tmp.Pix[y*tmp.Stride+x]
			for k := y - half; k <= y+half; k++ {
				if k < 0 || k >= h {
					continue
				}
				if v := tmp.Pix[k*tmp.Stride+x]; better(v, best) {
					best = v
				}
			}
			dst.Pix[y*dst.Stride+x] = best
		}
	}
	return dst
}
