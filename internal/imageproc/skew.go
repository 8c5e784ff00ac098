package imageproc

import (
	"fmt"
	"image"
	"math"
	"sort"

	"textquiz/internal/domain"
)

type point struct {
	x, y float64
}

// estimateSkew returns the counter-clockwise rotation in degrees that levels
// the text block formed by the foreground pixels of binary.
func estimateSkew(binary *image.Gray) (float64, error) {
	pts := foregroundExtremes(binary)
	if len(pts) == 0 {
		return 0, fmt.Errorf("%w: nothing left after thresholding", domain.ErrEmptyForeground)
	}
	return correctionAngle(minAreaRectAngle(convexHull(pts))), nil
}

// correctionAngle turns a rectangle angle in [-90, 0) into the rotation to
// apply. Near-square blobs are ambiguous between the two sides of the
// rectangle, so angles past -45 are folded onto the other side.
func correctionAngle(rectAngle float64) float64 {
	if rectAngle < -45 {
		return -(90 + rectAngle)
	}
	return -rectAngle
}

// foregroundExtremes returns the leftmost and rightmost ink pixel of every
// row. Their convex hull equals the hull of all ink pixels.
func foregroundExtremes(binary *image.Gray) []point {
	w, h := binary.Rect.Dx(), binary.Rect.Dy()
	var pts []point
	for y := 0; y < h; y++ {
		row := binary.Pix[y*binary.Stride : y*binary.Stride+w]
		left, right := -1, -1
		for x, v := range row {
			if v == 0 {
				continue
			}
			if left < 0 {
				left = x
			}
			right = x
		}
		if left < 0 {
			continue
		}
		pts = append(pts, point{float64(left), float64(y)})
		if right != left {
			pts = append(pts, point{float64(right), float64(y)})
		}
	}
	return pts
}

// convexHull uses the monotone chain algorithm; collinear points are dropped.
func convexHull(pts []point) []point {
	if len(pts) < 3 {
		return pts
	}
	sorted := make([]point, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].x != sorted[j].x {
			return sorted[i].x < sorted[j].x
		}
		return sorted[i].y < sorted[j].y
	})

	cross := func(o, a, b point) float64 {
		return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
	}

	hull := make([]point, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// minAreaRectAngle finds the minimum-area enclosing rectangle with rotating
// calipers and returns the angle of its edge in [-90, 0). Angles use the
// y-up convention, so a line sloping down to the right is negative.
func minAreaRectAngle(hull []point) float64 {
	if len(hull) < 2 {
		return -90
	}
	bestArea := math.Inf(1)
	bestAngle := -90.0
	n := len(hull)
	for i := 0; i < n; i++ {
		a, b := hull[i], hull[(i+1)%n]
		dx, dy := b.x-a.x, b.y-a.y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		ux, uy := dx/length, dy/length
		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			u := p.x*ux + p.y*uy
			v := -p.x*uy + p.y*ux
			minU, maxU = math.Min(minU, u), math.Max(maxU, u)
			minV, maxV = math.Min(minV, v), math.Max(maxV, v)
		}
		if area := (maxU - minU) * (maxV - minV); area < bestArea {
			bestArea = area
			bestAngle = normalizeRectAngle(math.Atan2(-dy, dx) * 180 / math.Pi)
		}
	}
	return bestAngle
}

// normalizeRectAngle folds an edge direction into [-90, 0). A rectangle's
// sides repeat every 90 degrees so only the residue matters.
func normalizeRectAngle(deg float64) float64 {
	r := math.Mod(deg, 90)
	if r >= 0 {
		r -= 90
	}
	return r
}
