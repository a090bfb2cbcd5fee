package geometry

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

// Point is a pointer position or offset in rendered-image coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns the delta p - q.
func (p Point) Sub(q Point) (dx, dy float64) { return p.X - q.X, p.Y - q.Y }

// Size holds container dimensions (the rendered image width and height).
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool { return s.Width <= 0 || s.Height <= 0 }

// Rect is an axis-aligned selection box: top-left corner plus dimensions.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Translate returns r moved by (dx, dy) without any clamping.
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Contains reports whether p lies inside r. The right and bottom edges are inclusive so a
// pointer resting on the border still hits the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Within reports whether r lies completely inside bounds anchored at the origin, allowing
// for floating point error on the far edges.
func (r Rect) Within(b Size) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= b.Width+epsilon && r.Bottom() <= b.Height+epsilon
}

const epsilon = 1e-9

// Image rounds r to an integer image.Rectangle.
func (r Rect) Image() image.Rectangle {
	x0 := int(math.Round(r.X))
	y0 := int(math.Round(r.Y))
	return image.Rect(x0, y0, x0+int(math.Round(r.W)), y0+int(math.Round(r.H)))
}

func (r Rect) String() string {
	return fmt.Sprintf("{x:%g y:%g w:%g h:%g}", r.X, r.Y, r.W, r.H)
}

// SizePolicy decides what ClampResize does when the space left between the rectangle's
// origin and the bounds is smaller than the minimum size.
type SizePolicy int

const (
	// PolicyCap keeps the rectangle inside bounds, even if that makes it smaller than the
	// minimum size. Extents never go negative.
	PolicyCap SizePolicy = iota
	// PolicyFloor keeps the minimum size even when it overflows the bounds.
	PolicyFloor
)

func (p SizePolicy) String() string {
	switch p {
	case PolicyCap:
		return "cap"
	case PolicyFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// ParseSizePolicy converts a config value ("cap", "floor") into a SizePolicy.
func ParseSizePolicy(s string) (SizePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cap":
		return PolicyCap, nil
	case "floor":
		return PolicyFloor, nil
	default:
		return PolicyCap, fmt.Errorf("unknown size policy %q", s)
	}
}

// clamp restricts v to [lo, hi]. When the range is empty lo wins.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ParseRect parses "x,y,w,h" (whitespace allowed). Width and height must be positive.
func ParseRect(s string) (Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("rect %q: want x,y,w,h", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Rect{}, fmt.Errorf("rect %q: %w", s, err)
		}
		v[i] = f
	}
	if v[2] <= 0 || v[3] <= 0 {
		return Rect{}, fmt.Errorf("rect %q: non-positive size", s)
	}
	return Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}
