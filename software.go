package imagefill

import (
	"image"
	"image/draw"
	"log/slog"
	"math"

	"github.com/gogpu/imagefill/internal/blend"
	"github.com/gogpu/imagefill/internal/pattern"
)

// SoftwareRenderer is a CPU PatternRenderer on top of image/draw and
// golang.org/x/image/draw. It is the default renderer of a Resolver.
type SoftwareRenderer struct{}

var _ PatternRenderer = SoftwareRenderer{}

// NewSoftwareRenderer creates a new software renderer.
func NewSoftwareRenderer() SoftwareRenderer {
	return SoftwareRenderer{}
}

// PrepareBitmap implements PatternRenderer. Resizing uses Catmull-Rom
// filtering.
func (SoftwareRenderer) PrepareBitmap(src image.Image, width, height int, opacity float64) image.Image {
	if src == nil {
		return nil
	}
	return pattern.Resize(src, width, height, opacity)
}

// CreateFillHandle implements PatternRenderer. The handle is a
// *pattern.Pattern.
func (SoftwareRenderer) CreateFillHandle(bitmap image.Image, tileable bool) PatternHandle {
	spread := pattern.SpreadNone
	if tileable {
		spread = pattern.SpreadRepeat
	}
	return pattern.New(bitmap, spread)
}

// ApplyTransform implements PatternRenderer. Handles from other renderers
// are ignored.
func (SoftwareRenderer) ApplyTransform(h PatternHandle, m Matrix) {
	if p, ok := h.(*pattern.Pattern); ok && p != nil {
		p.SetTransform(m.Aff3())
	}
}

// Paint composites fill onto dst with the fill's blend mode, clipped to
// box. Placeholders leave dst untouched. Unsupported blend modes paint as
// normal.
func (SoftwareRenderer) Paint(dst draw.Image, fill Fill, box Box) {
	p, ok := fill.Pattern.(*pattern.Pattern)
	if fill.IsPlaceholder() || !ok || p == nil {
		return
	}
	r := image.Rect(
		int(math.Floor(box.X)), int(math.Floor(box.Y)),
		int(math.Ceil(box.X+box.Width)), int(math.Ceil(box.Y+box.Height)),
	).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}

	mode, ok := blend.Parse(fill.BlendMode)
	if !ok {
		logger().Debug("imagefill: unsupported blend mode", slog.String("mode", fill.BlendMode))
	}
	if mode == blend.Normal {
		p.Paint(dst, r)
		return
	}

	layer := image.NewRGBA(r)
	p.Paint(layer, r)
	blend.Composite(dst, layer, r, mode)
}
