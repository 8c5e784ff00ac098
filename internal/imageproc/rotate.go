package imageproc

import (
	"image"
	"math"
)

// cubicA matches the bicubic kernel used by mainstream vision libraries.
const cubicA = -0.75

// rotate turns src counter-clockwise by angle degrees about its centre with
// bicubic interpolation. Samples outside the source replicate the nearest
// edge pixel and the output keeps the input dimensions.
func rotate(src *image.Gray, angle float64) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	cx, cy := float64(w/2), float64(h/2)
	rad := angle * math.Pi / 180
	alpha, beta := math.Cos(rad), math.Sin(rad)

	for y := 0; y < h; y++ {
		dy := float64(y) - cy
		for x := 0; x < w; x++ {
			dx := float64(x) - cx
			sx := alpha*dx - beta*dy + cx
			sy := beta*dx + alpha*dy + cy
			dst.Pix[y*dst.Stride+x] = sampleCubic(src, sx, sy)
		}
	}
	return dst
}

func sampleCubic(src *image.Gray, sx, sy float64) uint8 {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	x0, y0 := math.Floor(sx), math.Floor(sy)
	wx := cubicWeights(sx - x0)
	wy := cubicWeights(sy - y0)
	ix, iy := int(x0), int(y0)

	var acc float64
	for j := 0; j < 4; j++ {
		row := clampIndex(iy+j-1, h) * src.Stride
		var rowAcc float64
		for i := 0; i < 4; i++ {
			rowAcc += wx[i] * float64(src.Pix[row+clampIndex(ix+i-1, w)])
		}
		acc += wy[j] * rowAcc
	}
	return clampByte(acc)
}

func cubicWeights(t float64) [4]float64 {
	var c [4]float64
	c[0] = ((cubicA*(t+1)-5*cubicA)*(t+1)+8*cubicA)*(t+1) - 4*cubicA
	c[1] = ((cubicA+2)*t-(cubicA+3))*t*t + 1
	c[2] = ((cubicA+2)*(1-t)-(cubicA+3))*(1-t)*(1-t) + 1
	c[3] = 1 - c[0] - c[1] - c[2]
	return c
}
