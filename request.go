package imagefill

// ScaleValue is a scale override, either uniform or per axis.
type ScaleValue struct {
	X, Y float64
}

// UniformScale returns a ScaleValue with the same factor on both axes.
func UniformScale(s float64) *ScaleValue {
	return &ScaleValue{X: s, Y: s}
}

// AxisScale returns a ScaleValue with separate factors per axis.
func AxisScale(sx, sy float64) *ScaleValue {
	return &ScaleValue{X: sx, Y: sy}
}

// IsUniform reports whether both axes share the same factor.
func (s *ScaleValue) IsUniform() bool {
	return s != nil && s.X == s.Y
}

// isSet reports whether s carries an override. A zero scale counts as
// unset, the same as nil.
func (s *ScaleValue) isSet() bool {
	return s != nil && (s.X != 0 || s.Y != 0)
}

// PaintRequest describes one image fill as configured on a shape.
//
// Optional fields use nil for "not set". Rotation is in degrees; zero
// means no rotation. ModeRepeat only honours quarter turns.
type PaintRequest struct {
	URL       string
	Mode      PaintMode
	Offset    *Point
	Scale     *ScaleValue
	Rotation  float64
	Opacity   *float64
	BlendMode string
}

// hasGeometry reports whether any of offset, scale or rotation is set.
func (r PaintRequest) hasGeometry() bool {
	return (r.Offset != nil) || r.Scale.isSet() || r.Rotation != 0
}

// opacity returns the requested opacity clamped to [0, 1], or 1.
func (r PaintRequest) opacity() float64 {
	if r.Opacity == nil {
		return 1
	}
	o := *r.Opacity
	if o < 0 {
		o = 0
	}
	if o > 1 {
		o = 1
	}
	return o
}
