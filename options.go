package imagefill

import "log/slog"

// ResolverOption configures a Resolver during creation.
//
// Example:
//
//	// Default software rendering, package logger
//	r := imagefill.NewResolver(c)
//
//	// Custom renderer (dependency injection)
//	r := imagefill.NewResolver(c, imagefill.WithRenderer(myRenderer))
type ResolverOption func(*resolverOptions)

// resolverOptions holds optional configuration for Resolver creation.
type resolverOptions struct {
	renderer PatternRenderer
	logger   *slog.Logger
}

// defaultOptions returns the default resolver options.
func defaultOptions() resolverOptions {
	return resolverOptions{
		renderer: nil, // SoftwareRenderer if nil
		logger:   nil, // package logger if nil
	}
}

// WithRenderer sets the renderer that builds fill patterns.
func WithRenderer(r PatternRenderer) ResolverOption {
	return func(o *resolverOptions) {
		o.renderer = r
	}
}

// WithLogger sets the logger of a single Resolver, overriding the package
// logger set by SetLogger.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(o *resolverOptions) {
		o.logger = l
	}
}
