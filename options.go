package gbsdata

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// EnvDataDir is the environment variable consulted for the on-disk data
// directory when no WithDir or WithFS option is given.
const EnvDataDir = "GBSDATA_DIR"

type options struct {
	fsys    fs.FS
	dir     string
	logger  *Logger
	metrics MetricsCollector
}

// Option configures dataset loading.
//
// Options exist to keep the leaf constructors to a single call each
// (e.g. no per-source constructor variants).
type Option func(*options)

// WithFS loads dataset files from fsys instead of the local filesystem.
// It takes precedence over WithDir and the GBSDATA_DIR environment
// variable. Useful for embedded bundles and tests.
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// WithDir loads dataset files from the given directory.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithLogger configures structured logging for load operations.
//
// If nil is passed, logging stays disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetricsCollector configures metrics collection for load operations.
//
// If nil is passed, metrics collection stays disabled.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(o *options) {
		if collector == nil {
			collector = NoopMetricsCollector{}
		}
		o.metrics = collector
	}
}

func applyOptions(opts ...Option) *options {
	o := &options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// source resolves the filesystem the dataset files are read from:
// WithFS wins, then WithDir, then GBSDATA_DIR, then DefaultDir.
func (o *options) source() (fs.FS, error) {
	if o.fsys != nil {
		return o.fsys, nil
	}

	dir := o.dir
	if dir == "" {
		dir = os.Getenv(EnvDataDir)
	}
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return os.DirFS(dir), nil
}

// DefaultDir returns the directory dataset files are expected in when no
// option or environment variable overrides it: the user cache directory
// plus "gbsdata".
func DefaultDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolving data directory: %w", err)
	}
	return filepath.Join(cache, "gbsdata"), nil
}
