package imagefill

import "strings"

// PaintMode selects how an image is laid out inside its box.
type PaintMode uint8

const (
	// ModeCover scales the image uniformly so that it covers the whole box,
	// cropping the overflow. It is the default mode.
	ModeCover PaintMode = iota

	// ModeFit scales the image uniformly so that it fits inside the box,
	// leaving empty bands where the aspect ratios differ.
	ModeFit

	// ModeStretch resizes the image to exactly the box size.
	ModeStretch

	// ModeClip draws the image at its natural size, clipped by the box.
	// Offset, scale and rotation pan, zoom and turn it inside the box.
	ModeClip

	// ModeRepeat tiles the image across the box.
	ModeRepeat
)

const unknownMode = "Unknown"

// String returns a string representation of the paint mode.
func (m PaintMode) String() string {
	switch m {
	case ModeCover:
		return "cover"
	case ModeFit:
		return "fit"
	case ModeStretch:
		return "stretch"
	case ModeClip:
		return "clip"
	case ModeRepeat:
		return "repeat"
	default:
		return unknownMode
	}
}

// Tileable reports whether fills in this mode repeat beyond the image.
func (m PaintMode) Tileable() bool {
	return m == ModeRepeat
}

// ParseMode converts a mode name to a PaintMode. Names are case
// insensitive; "strench" is accepted as an alias of stretch. Unknown or
// empty names yield ModeCover and false.
func ParseMode(name string) (PaintMode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cover":
		return ModeCover, true
	case "fit":
		return ModeFit, true
	case "stretch", "strench":
		return ModeStretch, true
	case "clip":
		return ModeClip, true
	case "repeat":
		return ModeRepeat, true
	default:
		return ModeCover, false
	}
}
