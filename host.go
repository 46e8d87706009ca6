package imagefill

// Dimension names a size attribute of a host shape.
type Dimension string

// Host dimensions.
const (
	DimWidth  Dimension = "width"
	DimHeight Dimension = "height"
)

// Host is the shape that owns image paints.
//
// Resolver calls Host methods from whichever goroutine delivers the load
// completion; implementations must be safe for that.
type Host interface {
	Width() float64
	Height() float64
	SetWidth(w float64)
	SetHeight(h float64)

	// HasExplicitInput reports whether the author set the dimension.
	// Dimensions without explicit input follow the image size.
	HasExplicitInput(d Dimension) bool

	// ForceUpdate requests a re-layout because d changed.
	ForceUpdate(d Dimension)

	// EmitEvent delivers an image event to the host's listeners.
	EmitEvent(e Event)
}

// autoSize makes h adopt the natural image size on every dimension that
// has no explicit input. It reports whether a dimension changed.
func autoSize(h Host, width, height float64) bool {
	changed := false
	if !h.HasExplicitInput(DimWidth) && h.Width() != width {
		h.SetWidth(width)
		changed = true
	}
	if !h.HasExplicitInput(DimHeight) && h.Height() != height {
		h.SetHeight(height)
		changed = true
	}
	return changed
}
