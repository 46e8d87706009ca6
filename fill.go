package imagefill

import "image/color"

// FillKind tells a placeholder fill from a pattern fill.
type FillKind uint8

const (
	// FillPlaceholder is a transparent fill used while the image is not
	// available.
	FillPlaceholder FillKind = iota

	// FillPattern is an image pattern fill.
	FillPattern
)

// String returns a string representation of the fill kind.
func (k FillKind) String() string {
	switch k {
	case FillPlaceholder:
		return "placeholder"
	case FillPattern:
		return "pattern"
	default:
		return unknownMode
	}
}

// Placeholder is the color of a placeholder fill: white at zero alpha.
var Placeholder = color.NRGBA{R: 255, G: 255, B: 255, A: 0}

// Fill is the result of resolving an image paint. A new Fill is produced
// by every Resolve; it belongs to the host until the paint is resolved
// again or the host is recycled.
//
// Only a fill resolved from a ready image carries a Pattern.
type Fill struct {
	Kind FillKind
	URL  string

	// Pattern is the renderer handle. Nil for placeholders.
	Pattern PatternHandle

	// Transform maps image space into the box. Nil means the image is
	// drawn untransformed.
	Transform *Matrix

	// Tileable is set for ModeRepeat fills.
	Tileable bool

	Opacity   float64
	BlendMode string
}

// IsPlaceholder reports whether f is the transparent placeholder.
func (f Fill) IsPlaceholder() bool {
	return f.Kind == FillPlaceholder
}

func placeholderFill(req PaintRequest) Fill {
	return Fill{
		Kind:      FillPlaceholder,
		URL:       req.URL,
		Opacity:   req.opacity(),
		BlendMode: req.BlendMode,
	}
}
