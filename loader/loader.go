// Package loader fetches and decodes images for the imagefill cache.
//
// A Loader resolves three kinds of source:
//   - http:// and https:// URLs, fetched with an *http.Client
//   - file:// URLs
//   - plain paths, relative ones joined to the base directory
//
// Every load runs on its own goroutine under a timeout. Decoding is
// bounded by a semaphore so that a burst of large images cannot decode
// all at once.
package loader

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/gogpu/imagefill/cache"
)

// Loader errors.
var (
	// ErrUnsupportedScheme is returned for URL schemes the loader cannot
	// fetch, such as data: URLs.
	ErrUnsupportedScheme = errors.New("loader: unsupported url scheme")

	// ErrTooLarge is returned when a source exceeds the byte limit.
	ErrTooLarge = errors.New("loader: image exceeds size limit")

	// ErrClosed is reported for loads started after Close.
	ErrClosed = errors.New("loader: closed")
)

// StatusError reports a non-200 HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("loader: GET %s: status %d", e.URL, e.StatusCode)
}

// Loader implements cache.Loader.
//
// Loader is safe for concurrent use.
type Loader struct {
	opts options
	sem  *semaphore.Weighted

	mu       sync.Mutex
	inflight map[cache.LoadID]context.CancelFunc
	closed   bool
	wg       sync.WaitGroup
}

var _ cache.Loader = (*Loader)(nil)

// New creates a Loader.
func New(opts ...Option) *Loader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader{
		opts:     o,
		sem:      semaphore.NewWeighted(o.maxConcurrent),
		inflight: make(map[cache.LoadID]context.CancelFunc),
	}
}

// Load starts loading url on a new goroutine and returns its id.
// Exactly one callback runs unless the load is cancelled through Unload.
func (l *Loader) Load(url string, onSuccess func(image.Image), onError func(error)) cache.LoadID {
	id := cache.LoadID(uuid.NewString())

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		onError(ErrClosed)
		return id
	}
	ctx, cancel := context.WithTimeout(context.Background(), l.opts.timeout)
	l.inflight[id] = cancel
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()

		start := time.Now()
		img, err := l.load(ctx, url)

		// Unload removes the id when it cancels.
		l.mu.Lock()
		_, live := l.inflight[id]
		delete(l.inflight, id)
		l.mu.Unlock()
		cancel()

		if !live {
			l.opts.logger.Debug("loader: cancelled", slog.String("url", url), slog.String("id", string(id)))
			return
		}
		if err != nil {
			onError(err)
			return
		}
		l.opts.logger.Debug("loader: loaded", slog.String("url", url),
			slog.Duration("elapsed", time.Since(start)))
		onSuccess(img)
	}()

	return id
}

// Unload cancels the load when last is true. Loads still shared by other
// consumers keep running.
func (l *Loader) Unload(id cache.LoadID, last bool) {
	if !last {
		return
	}

	l.mu.Lock()
	cancel, ok := l.inflight[id]
	delete(l.inflight, id)
	l.mu.Unlock()

	if ok {
		cancel()
	}
}

// Close cancels all loads and waits for their goroutines to exit.
func (l *Loader) Close() {
	l.mu.Lock()
	l.closed = true
	cancels := make([]context.CancelFunc, 0, len(l.inflight))
	for id, cancel := range l.inflight {
		cancels = append(cancels, cancel)
		delete(l.inflight, id)
	}
	l.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	l.wg.Wait()
}

// load reads and decodes one image.
func (l *Loader) load(ctx context.Context, url string) (image.Image, error) {
	data, err := l.read(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("loader: %s: %w", url, err)
	}
	defer l.sem.Release(1)

	img, _, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", url, err)
	}
	return img, nil
}

// read returns the raw bytes behind url.
func (l *Loader) read(ctx context.Context, url string) ([]byte, error) {
	switch {
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return l.readHTTP(ctx, url)
	case strings.HasPrefix(url, "file://"):
		return l.readFile(strings.TrimPrefix(url, "file://"))
	case strings.Contains(url, "://"), strings.HasPrefix(url, "data:"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, url)
	default:
		path := url
		if !filepath.IsAbs(path) {
			path = filepath.Join(l.opts.baseDir, path)
		}
		return l.readFile(path)
	}
}

func (l *Loader) readHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("loader: request %s: %w", url, err)
	}
	if l.opts.userAgent != "" {
		req.Header.Set("User-Agent", l.opts.userAgent)
	}

	resp, err := l.opts.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("loader: GET %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	if resp.ContentLength > l.opts.maxBytes {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, url)
	}
	return l.readLimited(resp.Body, url)
}

func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("loader: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if info, err := f.Stat(); err == nil && info.Size() > l.opts.maxBytes {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, path)
	}
	return l.readLimited(f, path)
}

func (l *Loader) readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.opts.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", name, err)
	}
	if int64(len(data)) > l.opts.maxBytes {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, name)
	}
	return data, nil
}
