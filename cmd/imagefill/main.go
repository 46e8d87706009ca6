// Command imagefill paints an image into a box with one of the image fill
// modes and writes the result as PNG or WebP.
//
// Usage:
//
//	imagefill -src photo.jpg -mode cover -box 400x300 -out out.webp
//
// Without -box the canvas adopts the natural image size. Loader settings
// come from IMAGEFILL_* environment variables.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"github.com/gogpu/imagefill"
	"github.com/gogpu/imagefill/cache"
	"github.com/gogpu/imagefill/internal/config"
	"github.com/gogpu/imagefill/loader"
)

func main() {
	var (
		src      = flag.String("src", "", "image path or URL")
		mode     = flag.String("mode", "cover", "paint mode: cover, fit, stretch, clip, repeat")
		boxSpec  = flag.String("box", "", "canvas size WxH (default: natural image size)")
		rotation = flag.Float64("rotation", 0, "rotation in degrees")
		scale    = flag.Float64("scale", 0, "scale for clip and repeat (0: unset)")
		opacity  = flag.Float64("opacity", 1, "opacity in [0, 1]")
		output   = flag.String("out", "out.png", "output file (.png or .webp)")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *src == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	imagefill.SetLogger(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	m, ok := imagefill.ParseMode(*mode)
	if !ok {
		log.Fatalf("Unknown mode %q", *mode)
	}
	req := imagefill.PaintRequest{
		URL:      *src,
		Mode:     m,
		Rotation: *rotation,
		Opacity:  opacity,
	}
	if *scale != 0 {
		req.Scale = imagefill.UniformScale(*scale)
	}

	host := newCanvasHost()
	if *boxSpec != "" {
		w, h, err := parseSize(*boxSpec)
		if err != nil {
			log.Fatalf("Invalid -box: %v", err)
		}
		host.setExplicit(w, h)
	}

	l := loader.New(append(cfg.LoaderOptions(), loader.WithLogger(logger))...)
	defer l.Close()
	c := cache.New(l, cache.WithLogger(logger))
	defer c.Close()
	r := imagefill.NewResolver(c)
	defer r.Close()

	img, err := paint(r, host, req, cfg.LoadTimeout+time.Second)
	if err != nil {
		log.Fatalf("Failed to paint: %v", err)
	}

	if err := save(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Saved %s (%dx%d, %s)\n", *output, img.Bounds().Dx(), img.Bounds().Dy(), m)
}

// paint resolves req for host, waiting for the image when it is not
// cached yet, and paints the fill onto a new canvas.
func paint(r *imagefill.Resolver, host *canvasHost, req imagefill.PaintRequest, timeout time.Duration) (*image.RGBA, error) {
	fill := r.Resolve(host, "fill", req, host.box())
	if fill.IsPlaceholder() {
		// Ready but auto-sized, or still loading.
		fill = r.Resolve(host, "fill", req, host.box())
	}
	if fill.IsPlaceholder() {
		select {
		case ev := <-host.events:
			if ev.Kind == imagefill.EventError {
				return nil, ev.Err
			}
		case <-time.After(timeout):
			return nil, errors.New("timed out waiting for image")
		}
		// The host may have been auto-sized; resolve against the new box.
		fill = r.Resolve(host, "fill", req, host.box())
	}
	if fill.IsPlaceholder() {
		return nil, fmt.Errorf("image %q not ready", req.URL)
	}

	box := host.box()
	dst := image.NewRGBA(image.Rect(0, 0, int(box.Width), int(box.Height)))
	imagefill.NewSoftwareRenderer().Paint(dst, fill, box)
	return dst, nil
}

func save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		err = nativewebp.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

func parseSize(s string) (w, h float64, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%q: want WxH", s)
	}
	if w, err = strconv.ParseFloat(ws, 64); err != nil {
		return 0, 0, fmt.Errorf("%q: %w", s, err)
	}
	if h, err = strconv.ParseFloat(hs, 64); err != nil {
		return 0, 0, fmt.Errorf("%q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%q: size must be positive", s)
	}
	return w, h, nil
}

// canvasHost is the output canvas seen as an imagefill.Host.
type canvasHost struct {
	mu       sync.Mutex
	width    float64
	height   float64
	explicit bool
	events   chan imagefill.Event
}

func newCanvasHost() *canvasHost {
	return &canvasHost{events: make(chan imagefill.Event, 1)}
}

func (h *canvasHost) setExplicit(w, hgt float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.width, h.height, h.explicit = w, hgt, true
}

func (h *canvasHost) box() imagefill.Box {
	h.mu.Lock()
	defer h.mu.Unlock()
	return imagefill.NewBox(0, 0, h.width, h.height)
}

func (h *canvasHost) Width() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width
}

func (h *canvasHost) Height() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.height
}

func (h *canvasHost) SetWidth(w float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.width = w
}

func (h *canvasHost) SetHeight(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.height = v
}

func (h *canvasHost) HasExplicitInput(imagefill.Dimension) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.explicit
}

func (h *canvasHost) ForceUpdate(d imagefill.Dimension) {
	imagefill.Logger().Debug("canvas re-layout", slog.String("dimension", string(d)))
}

func (h *canvasHost) EmitEvent(e imagefill.Event) {
	select {
	case h.events <- e:
	default:
	}
}
