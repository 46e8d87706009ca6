package imagefill

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// IsZero reports whether both coordinates are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Box is the target rectangle of a paint in parent-local coordinates.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// NewBox creates a Box.
func NewBox(x, y, width, height float64) Box {
	return Box{X: x, Y: y, Width: width, Height: height}
}

// Origin returns the top-left corner of the box.
func (b Box) Origin() Point {
	return Point{X: b.X, Y: b.Y}
}

// Center returns the center of the box.
func (b Box) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// SameSize reports whether the box has exactly the given dimensions.
func (b Box) SameSize(width, height float64) bool {
	return b.Width == width && b.Height == height
}
