package pattern

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/math/f64"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func stripe() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 0, blue)
	return img
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func TestNewNil(t *testing.T) {
	if New(nil, SpreadNone) != nil {
		t.Error("New(nil) should return nil")
	}
	var p *Pattern
	if p.Image() != nil || p.Spread() != SpreadNone || p.Transform() != identity {
		t.Error("nil pattern accessors should return defaults")
	}
	if _, _, _, a := p.At(0, 0).RGBA(); a != 0 {
		t.Error("nil pattern should be transparent")
	}
}

func TestAt(t *testing.T) {
	tests := []struct {
		name      string
		spread    Spread
		transform f64.Aff3
		x, y      float64
		want      color.NRGBA
	}{
		{"identity first pixel", SpreadNone, identity, 0.5, 0.5, red},
		{"identity second pixel", SpreadNone, identity, 1.5, 0.5, blue},
		{"outside no-repeat", SpreadNone, identity, 2.5, 0.5, color.NRGBA{}},
		{"negative no-repeat", SpreadNone, identity, -0.5, 0.5, color.NRGBA{}},
		{"repeat wraps right", SpreadRepeat, identity, 2.5, 0.5, red},
		{"repeat wraps left", SpreadRepeat, identity, -0.5, 3.5, blue},
		{"translated", SpreadNone, f64.Aff3{1, 0, 10, 0, 1, 5}, 10.5, 5.5, red},
		{"scaled", SpreadNone, f64.Aff3{4, 0, 0, 0, 4, 0}, 5, 1, blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(stripe(), tt.spread)
			p.SetTransform(tt.transform)
			if got := nrgba(p.At(tt.x, tt.y)); got != tt.want {
				t.Errorf("At(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestSetTransformSingular(t *testing.T) {
	p := New(stripe(), SpreadNone)
	p.SetTransform(f64.Aff3{0, 0, 3, 0, 0, 4})
	if p.inverse != identity {
		t.Errorf("singular transform inverse = %v, want identity", p.inverse)
	}
	if p.Transform() != (f64.Aff3{0, 0, 3, 0, 0, 4}) {
		t.Error("Transform() should return the transform as set")
	}
}

func TestPaintRepeat(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 5, 1))
	p := New(stripe(), SpreadRepeat)
	p.Paint(dst, image.Rect(0, 0, 4, 1))

	want := []color.NRGBA{red, blue, red, blue, {}}
	for x, w := range want {
		if got := nrgba(dst.At(x, 0)); got != w {
			t.Errorf("pixel %d = %v, want %v", x, got, w)
		}
	}
}

func TestPaintNoRepeatStaysInsideImage(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	p := New(solid(2, 2, red), SpreadNone)
	p.Paint(dst, dst.Bounds())

	if got := nrgba(dst.At(0, 0)); got != red {
		t.Errorf("inside pixel = %v, want red", got)
	}
	if got := nrgba(dst.At(3, 3)); got != (color.NRGBA{}) {
		t.Errorf("outside pixel = %v, want transparent", got)
	}
}

func TestPaintOffsetOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	for x := range 4 {
		c := red
		if x >= 2 {
			c = blue
		}
		src.SetNRGBA(x, 0, c)
	}
	sub := src.SubImage(image.Rect(2, 0, 4, 1))

	for _, spread := range []Spread{SpreadNone, SpreadRepeat} {
		t.Run(spread.String(), func(t *testing.T) {
			dst := image.NewRGBA(image.Rect(0, 0, 4, 1))
			New(sub, spread).Paint(dst, image.Rect(0, 0, 2, 1))

			for x := range 2 {
				if got := nrgba(dst.At(x, 0)); got != blue {
					t.Errorf("pixel %d = %v, want blue", x, got)
				}
			}
			if got := nrgba(dst.At(2, 0)); got != (color.NRGBA{}) {
				t.Errorf("pixel 2 = %v, want transparent", got)
			}
		})
	}
}

func TestPaintClipsToRect(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	p := New(solid(4, 4, red), SpreadNone)
	p.Paint(dst, image.Rect(0, 0, 2, 2))

	if got := nrgba(dst.At(1, 1)); got != red {
		t.Errorf("pixel in rect = %v, want red", got)
	}
	if got := nrgba(dst.At(2, 2)); got != (color.NRGBA{}) {
		t.Errorf("pixel outside rect = %v, want transparent", got)
	}
}

func TestResize(t *testing.T) {
	src := solid(2, 2, red)

	if got := Resize(src, 2, 2, 1); got != image.Image(src) {
		t.Error("Resize without changes should return src")
	}

	got := Resize(src, 6, 4, 1)
	if b := got.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
		t.Errorf("bounds = %v, want 6x4", b)
	}
	if c := nrgba(got.At(3, 2)); c != red {
		t.Errorf("resized color = %v, want red", c)
	}

	half := Resize(src, 2, 2, 0.5)
	if a := nrgba(half.At(1, 1)).A; a != 128 {
		t.Errorf("alpha = %d, want 128", a)
	}

	clear := Resize(src, 2, 2, -1)
	if a := nrgba(clear.At(0, 0)).A; a != 0 {
		t.Errorf("alpha = %d, want 0", a)
	}
}

func TestSpreadString(t *testing.T) {
	if SpreadNone.String() != "None" || SpreadRepeat.String() != "Repeat" || Spread(9).String() != "Unknown" {
		t.Error("unexpected Spread.String output")
	}
}
