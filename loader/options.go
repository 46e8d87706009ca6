package loader

import (
	"log/slog"
	"net/http"
	"time"
)

// Defaults used when an option is not given.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultMaxBytes      = 64 << 20
	DefaultMaxConcurrent = 4
)

// Option configures a Loader.
type Option func(*options)

type options struct {
	baseDir       string
	timeout       time.Duration
	maxBytes      int64
	maxConcurrent int64
	userAgent     string
	client        *http.Client
	logger        *slog.Logger
}

func defaultOptions() options {
	return options{
		baseDir:       ".",
		timeout:       DefaultTimeout,
		maxBytes:      DefaultMaxBytes,
		maxConcurrent: DefaultMaxConcurrent,
		client:        http.DefaultClient,
		logger:        slog.New(slog.DiscardHandler),
	}
}

// WithBaseDir sets the directory that relative paths are resolved against.
func WithBaseDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.baseDir = dir
		}
	}
}

// WithTimeout bounds each load, fetch and decode included.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithMaxBytes limits the encoded size of a single image.
func WithMaxBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBytes = n
		}
	}
}

// WithMaxConcurrent limits how many images decode at the same time.
func WithMaxConcurrent(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxConcurrent = n
		}
	}
}

// WithUserAgent sets the User-Agent header of HTTP requests.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithHTTPClient sets the client used for http and https URLs.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.client = c
		}
	}
}

// WithLogger sets the loader logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
