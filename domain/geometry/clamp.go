package geometry

import "math"

// ClampMove returns r translated by (dx, dy) and clamped so that it stays inside b.
// X is restricted to [0, b.Width-r.W] and Y to [0, b.Height-r.H]; a rectangle larger than
// the bounds is pinned to the origin. Width and height are never changed.
func ClampMove(r Rect, dx, dy float64, b Size) Rect {
	r.X = clamp(r.X+dx, 0, b.Width-r.W)
	r.Y = clamp(r.Y+dy, 0, b.Height-r.H)
	return r
}

// ClampResize grows or shrinks r from its bottom-right corner by (dx, dy). The top-left
// corner stays fixed. W is restricted to [minSize, b.Width-r.X] and H to
// [minSize, b.Height-r.Y]. If one of those ranges is empty, policy decides which end wins.
func ClampResize(r Rect, dx, dy float64, b Size, minSize float64, policy SizePolicy) Rect {
	r.W = resizeExtent(r.W+dx, minSize, b.Width-r.X, policy)
	r.H = resizeExtent(r.H+dy, minSize, b.Height-r.Y, policy)
	return r
}

func resizeExtent(v, minSize, avail float64, policy SizePolicy) float64 {
	if policy == PolicyFloor {
		return clamp(v, minSize, avail)
	}
	return math.Max(0, math.Min(avail, math.Max(minSize, v)))
}

// CenteredDefault returns a square of side min(preferred, 0.5*b.Width, 0.5*b.Height)
// centered in b. It is a pure function of its arguments.
func CenteredDefault(b Size, preferred float64) Rect {
	side := math.Min(preferred, math.Min(0.5*b.Width, 0.5*b.Height))
	if side < 0 {
		side = 0
	}
	return Rect{
		X: (b.Width - side) / 2,
		Y: (b.Height - side) / 2,
		W: side,
		H: side,
	}
}

// Fit normalizes an externally supplied rectangle into b: negative extents become
// minSize, oversized extents shrink to the bounds, then the origin is pulled back inside.
func Fit(r Rect, b Size, minSize float64, policy SizePolicy) Rect {
	if r.W < minSize {
		r.W = minSize
	}
	if r.H < minSize {
		r.H = minSize
	}
	if r.W > b.Width {
		r.W = fitExtent(b.Width, minSize, policy)
	}
	if r.H > b.Height {
		r.H = fitExtent(b.Height, minSize, policy)
	}
	r.X = clamp(r.X, 0, b.Width-r.W)
	r.Y = clamp(r.Y, 0, b.Height-r.H)
	return r
}

func fitExtent(avail, minSize float64, policy SizePolicy) float64 {
	if policy == PolicyFloor && avail < minSize {
		return minSize
	}
	return math.Max(0, avail)
}

// Scale maps r from one coordinate space to another, e.g. from the rendered image to the
// natural image resolution. An empty source size returns r unchanged.
func Scale(r Rect, from, to Size) Rect {
	if from.Empty() {
		return r
	}
	sx := to.Width / from.Width
	sy := to.Height / from.Height
	out := Rect{X: r.X * sx, Y: r.Y * sy, W: r.W * sx, H: r.H * sy}
	// Rounding in the source space can leave a sub-pixel overhang.
	if out.Right() > to.Width {
		out.W = math.Max(0, to.Width-out.X)
	}
	if out.Bottom() > to.Height {
		out.H = math.Max(0, to.Height-out.Y)
	}
	return out
}
