package config

import "context"

type (
	pathKey     struct{}
	progressKey struct{}
)

// WithPath returns a context carrying the config file path chosen on the command line.
func WithPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, pathKey{}, path)
}

// PathFromContext returns the path stored by WithPath, or "".
func PathFromContext(ctx context.Context) string {
	path, _ := ctx.Value(pathKey{}).(string)
	return path
}

// WithProgress returns a context requesting progress output regardless of the file setting.
func WithProgress(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, progressKey{}, enabled)
}

// ProgressFromContext reports whether WithProgress enabled progress output.
func ProgressFromContext(ctx context.Context) bool {
	enabled, _ := ctx.Value(progressKey{}).(bool)
	return enabled
}
