// Package pattern implements image fill patterns for the software renderer.
package pattern

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Spread determines what a pattern shows outside its image.
type Spread uint8

const (
	// SpreadNone leaves everything outside the image transparent.
	SpreadNone Spread = iota

	// SpreadRepeat tiles the image in both directions.
	SpreadRepeat
)

// String returns a string representation of the spread mode.
func (s Spread) String() string {
	switch s {
	case SpreadNone:
		return "None"
	case SpreadRepeat:
		return "Repeat"
	default:
		return "Unknown"
	}
}

var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// Pattern is an image placed in user space by an affine transform.
//
// The transform maps image pixels to user space. The inverse is cached for
// sampling.
type Pattern struct {
	image     image.Image
	bounds    image.Rectangle
	transform f64.Aff3
	inverse   f64.Aff3
	spread    Spread
}

// New creates a pattern with the identity transform.
// Returns nil if img is nil.
func New(img image.Image, spread Spread) *Pattern {
	if img == nil {
		return nil
	}
	return &Pattern{
		image:     img,
		bounds:    img.Bounds(),
		transform: identity,
		inverse:   identity,
		spread:    spread,
	}
}

// SetTransform sets the image-to-user transform. A singular transform
// keeps the identity inverse.
func (p *Pattern) SetTransform(t f64.Aff3) {
	p.transform = t
	if inv, ok := invert(t); ok {
		p.inverse = inv
	} else {
		p.inverse = identity
	}
}

// Transform returns the image-to-user transform.
func (p *Pattern) Transform() f64.Aff3 {
	if p == nil {
		return identity
	}
	return p.transform
}

// Spread returns the spread mode.
func (p *Pattern) Spread() Spread {
	if p == nil {
		return SpreadNone
	}
	return p.spread
}

// Image returns the pattern image.
func (p *Pattern) Image() image.Image {
	if p == nil {
		return nil
	}
	return p.image
}

// At returns the color at user-space point (x, y), nearest neighbour.
// Returns transparent outside the image when the spread is SpreadNone.
func (p *Pattern) At(x, y float64) color.Color {
	if p == nil {
		return color.Transparent
	}

	u := p.inverse[0]*x + p.inverse[1]*y + p.inverse[2]
	v := p.inverse[3]*x + p.inverse[4]*y + p.inverse[5]

	w, h := p.bounds.Dx(), p.bounds.Dy()
	if w == 0 || h == 0 {
		return color.Transparent
	}
	ix := int(math.Floor(u))
	iy := int(math.Floor(v))

	switch p.spread {
	case SpreadRepeat:
		ix = wrap(ix, w)
		iy = wrap(iy, h)
	default:
		if ix < 0 || iy < 0 || ix >= w || iy >= h {
			return color.Transparent
		}
	}
	return p.image.At(p.bounds.Min.X+ix, p.bounds.Min.Y+iy)
}

// Paint composites the pattern over dst inside r.
//
// Non-repeating patterns go through golang.org/x/image/draw with bilinear
// filtering. Repeating patterns are sampled per pixel center.
func (p *Pattern) Paint(dst draw.Image, r image.Rectangle) {
	if p == nil {
		return
	}
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}

	if p.spread == SpreadNone {
		clip := clipped{Image: dst, r: r}
		xdraw.BiLinear.Transform(clip, p.sourceTransform(), p.image, p.bounds, xdraw.Over, nil)
		return
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := p.At(float64(x)+0.5, float64(y)+0.5)
			draw.Draw(dst, image.Rect(x, y, x+1, y+1), image.NewUniform(c), image.Point{}, draw.Over)
		}
	}
}

// sourceTransform maps source image coordinates, which start at
// bounds.Min, to user space.
func (p *Pattern) sourceTransform() f64.Aff3 {
	t := p.transform
	mx, my := float64(p.bounds.Min.X), float64(p.bounds.Min.Y)
	t[2] -= t[0]*mx + t[1]*my
	t[5] -= t[3]*mx + t[4]*my
	return t
}

// clipped restricts a draw.Image to r.
type clipped struct {
	draw.Image
	r image.Rectangle
}

func (c clipped) Bounds() image.Rectangle { return c.r }

// Resize returns src scaled to w x h with opacity multiplied into its
// alpha channel. src is returned unchanged when nothing needs to change.
func Resize(src image.Image, w, h int, opacity float64) image.Image {
	b := src.Bounds()
	if w <= 0 || h <= 0 {
		w, h = b.Dx(), b.Dy()
	}
	if w == b.Dx() && h == b.Dy() && opacity >= 1 {
		return src
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	}

	if opacity < 1 {
		if opacity < 0 {
			opacity = 0
		}
		for i := 3; i < len(dst.Pix); i += 4 {
			dst.Pix[i] = uint8(math.Round(float64(dst.Pix[i]) * opacity))
		}
	}
	return dst
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func invert(m f64.Aff3) (f64.Aff3, bool) {
	det := m[0]*m[4] - m[1]*m[3]
	if math.Abs(det) < 1e-12 {
		return identity, false
	}
	inv := 1 / det
	return f64.Aff3{
		m[4] * inv, -m[1] * inv, (m[1]*m[5] - m[4]*m[2]) * inv,
		-m[3] * inv, m[0] * inv, (m[3]*m[2] - m[0]*m[5]) * inv,
	}, true
}
