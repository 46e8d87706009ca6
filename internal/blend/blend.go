// Package blend composites premultiplied pixels with Porter-Duff operators
// and the separable blend modes of W3C Compositing and Blending Level 1.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"
)

// Mode is a compositing operation.
type Mode uint8

const (
	// Normal is source-over, the default.
	Normal Mode = iota

	// Separable blend modes.
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion

	// Porter-Duff operators.
	DestinationOver
	SourceIn
	DestinationIn
	SourceOut
	DestinationOut
	SourceAtop
	DestinationAtop
	Xor
	Plus
)

var modeNames = [...]string{
	Normal:          "normal",
	Multiply:        "multiply",
	Screen:          "screen",
	Overlay:         "overlay",
	Darken:          "darken",
	Lighten:         "lighten",
	ColorDodge:      "color-dodge",
	ColorBurn:       "color-burn",
	HardLight:       "hard-light",
	SoftLight:       "soft-light",
	Difference:      "difference",
	Exclusion:       "exclusion",
	DestinationOver: "destination-over",
	SourceIn:        "source-in",
	DestinationIn:   "destination-in",
	SourceOut:       "source-out",
	DestinationOut:  "destination-out",
	SourceAtop:      "source-atop",
	DestinationAtop: "destination-atop",
	Xor:             "xor",
	Plus:            "plus",
}

// aliases are accepted by Parse besides the mode names.
var aliases = map[string]Mode{
	"":             Normal,
	"pass-through": Normal,
	"source-over":  Normal,
	"lighter":      Plus,
}

// String returns the CSS name of the mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Parse converts a CSS or canvas blend mode name to a Mode. Unknown names,
// including the non-separable hue, saturation, color and luminosity modes,
// yield Normal and false.
func Parse(name string) (Mode, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if m, ok := aliases[name]; ok {
		return m, true
	}
	for m, n := range modeNames {
		if n == name {
			return Mode(m), true
		}
	}
	return Normal, false
}

// Pixel composites premultiplied s over premultiplied d.
func Pixel(s, d color.RGBA, m Mode) color.RGBA {
	if f := separable(m); f != nil {
		return mix(s, d, f)
	}

	sa, da := s.A, d.A
	switch m {
	case DestinationOver:
		return porterDuff(s, d, inv(da), 255)
	case SourceIn:
		return porterDuff(s, d, da, 0)
	case DestinationIn:
		return porterDuff(s, d, 0, sa)
	case SourceOut:
		return porterDuff(s, d, inv(da), 0)
	case DestinationOut:
		return porterDuff(s, d, 0, inv(sa))
	case SourceAtop:
		return porterDuff(s, d, da, inv(sa))
	case DestinationAtop:
		return porterDuff(s, d, inv(da), sa)
	case Xor:
		return porterDuff(s, d, inv(da), inv(sa))
	case Plus:
		return color.RGBA{R: addSat(s.R, d.R), G: addSat(s.G, d.G), B: addSat(s.B, d.B), A: addSat(s.A, d.A)}
	default:
		return porterDuff(s, d, 255, inv(sa))
	}
}

// Composite blends src onto dst inside r.
func Composite(dst draw.Image, src *image.RGBA, r image.Rectangle, m Mode) {
	r = r.Intersect(dst.Bounds()).Intersect(src.Bounds())
	if rgba, ok := dst.(*image.RGBA); ok {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				rgba.SetRGBA(x, y, Pixel(src.RGBAAt(x, y), rgba.RGBAAt(x, y), m))
			}
		}
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			d := color.RGBAModel.Convert(dst.At(x, y)).(color.RGBA)
			dst.Set(x, y, Pixel(src.RGBAAt(x, y), d, m))
		}
	}
}

// porterDuff computes s*fs + d*fd per channel.
func porterDuff(s, d color.RGBA, fs, fd uint8) color.RGBA {
	return color.RGBA{
		R: addSat(mul(s.R, fs), mul(d.R, fd)),
		G: addSat(mul(s.G, fs), mul(d.G, fd)),
		B: addSat(mul(s.B, fs), mul(d.B, fd)),
		A: addSat(mul(s.A, fs), mul(d.A, fd)),
	}
}

// mix applies a separable blend function B:
//
//	result = (1 - Sa)*D + (1 - Da)*S + Sa*Da*B(Cs, Cb)
//
// where Cs and Cb are the unpremultiplied source and backdrop channels.
func mix(s, d color.RGBA, f func(cs, cb uint8) uint8) color.RGBA {
	if s.A == 0 {
		return d
	}
	if d.A == 0 {
		return s
	}
	sa, da := s.A, d.A
	both := mul(sa, da)
	channel := func(sc, dc uint8) uint8 {
		b := f(unpremul(sc, sa), unpremul(dc, da))
		return addSat(addSat(mul(dc, inv(sa)), mul(sc, inv(da))), mul(both, b))
	}
	return color.RGBA{
		R: channel(s.R, d.R),
		G: channel(s.G, d.G),
		B: channel(s.B, d.B),
		A: addSat(sa, mul(da, inv(sa))),
	}
}

func separable(m Mode) func(cs, cb uint8) uint8 {
	switch m {
	case Multiply:
		return mul
	case Screen:
		return screen
	case Overlay:
		return func(cs, cb uint8) uint8 { return hardLight(cb, cs) }
	case Darken:
		return func(cs, cb uint8) uint8 { return min(cs, cb) }
	case Lighten:
		return func(cs, cb uint8) uint8 { return max(cs, cb) }
	case ColorDodge:
		return colorDodge
	case ColorBurn:
		return colorBurn
	case HardLight:
		return hardLight
	case SoftLight:
		return softLight
	case Difference:
		return func(cs, cb uint8) uint8 { return max(cs, cb) - min(cs, cb) }
	case Exclusion:
		return func(cs, cb uint8) uint8 {
			v := int(cs) + int(cb) - 2*int(mul(cs, cb))
			return uint8(max(0, min(255, v)))
		}
	default:
		return nil
	}
}

func screen(cs, cb uint8) uint8 {
	return inv(mul(inv(cs), inv(cb)))
}

func hardLight(cs, cb uint8) uint8 {
	if cs <= 128 {
		return uint8(min(255, 2*int(mul(cs, cb))))
	}
	return inv(uint8(min(255, 2*int(mul(inv(cs), inv(cb))))))
}

func colorDodge(cs, cb uint8) uint8 {
	switch {
	case cb == 0:
		return 0
	case cs == 255:
		return 255
	}
	return uint8(min(255, int(cb)*255/int(inv(cs))))
}

func colorBurn(cs, cb uint8) uint8 {
	switch {
	case cb == 255:
		return 255
	case cs == 0:
		return 0
	}
	return inv(uint8(min(255, int(inv(cb))*255/int(cs))))
}

func softLight(cs, cb uint8) uint8 {
	s, b := float64(cs)/255, float64(cb)/255
	var v float64
	if s <= 0.5 {
		v = b - (1-2*s)*b*(1-b)
	} else {
		d := math.Sqrt(b)
		if b <= 0.25 {
			d = ((16*b-12)*b + 4) * b
		}
		v = b + (2*s-1)*(d-b)
	}
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// mul returns a*b/255, rounded.
func mul(a, b uint8) uint8 {
	t := uint32(a)*uint32(b) + 128
	return uint8((t + t>>8) >> 8)
}

func inv(a uint8) uint8 {
	return 255 - a
}

func addSat(a, b uint8) uint8 {
	return uint8(min(255, uint16(a)+uint16(b)))
}

func unpremul(c, a uint8) uint8 {
	if a == 0 {
		return 0
	}
	return uint8(min(255, uint32(c)*255/uint32(a)))
}
