package gen

import (
	"errors"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultGenVersion is the generator identity stamped into every header comment.
const DefaultGenVersion = "apigen-0.5.0"

// Config holds the settings shared by every generator of a run.
type Config struct {
	// GenVersion identifies the tool in generated header comments.
	GenVersion string
	// Now returns the timestamp of generated header comments.
	Now func() time.Time
	// Logger receives generation progress.
	Logger *zap.SugaredLogger
	// Workers bounds the number of files written concurrently.
	Workers int
	// APIHeader is the include path of the generated C++ interface header,
	// used by the C, JNI, Swift binding and WASM generators.
	APIHeader string
	// Package is the target language package: the Kotlin package of the JNI
	// binding (com.company.library) or the Go package name.
	Package string
	// SwiftHeader is the bridging header the Swift wrapper imports.
	SwiftHeader string
}

// Option configures code generation.
type Option func(*Config) error

// WithGenVersion sets the generator identity of header comments.
func WithGenVersion(v string) Option {
	return func(c *Config) error {
		if v == "" {
			return NewConfigError("GenVersion", nil, "gen version cannot be empty")
		}
		c.GenVersion = v
		return nil
	}
}

// WithNow sets the clock of header comment timestamps.
func WithNow(now func() time.Time) Option {
	return func(c *Config) error {
		if now == nil {
			return NewConfigError("Now", nil, "clock cannot be nil")
		}
		c.Now = now
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithWorkers sets the number of parallel writers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithAPIHeader sets the include path of the C++ interface header.
// For example: "api/engine_api.h".
func WithAPIHeader(h string) Option {
	return func(c *Config) error {
		if h == "" {
			return NewConfigError("APIHeader", nil, "api header cannot be empty")
		}
		c.APIHeader = h
		return nil
	}
}

// WithPackage sets the target language package.
// For example: "com.company.library".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		if strings.ContainsAny(pkg, " /\\") {
			return NewConfigError("Package", pkg, "package must be a dotted or plain identifier")
		}
		c.Package = pkg
		return nil
	}
}

// WithSwiftHeader sets the bridging header imported by the Swift wrapper.
func WithSwiftHeader(h string) Option {
	return func(c *Config) error {
		if h == "" {
			return NewConfigError("SwiftHeader", nil, "swift header cannot be empty")
		}
		c.SwiftHeader = h
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Timestamp returns the header comment timestamp.
func (c *Config) Timestamp() string {
	return c.Now().Format("2006-01-02 15:04:05.000000")
}

// NewConfig creates a new Config with the given options applied over the
// defaults.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		GenVersion: DefaultGenVersion,
		Now:        time.Now,
		Logger:     zap.NewNop().Sugar(),
		Workers:    runtime.GOMAXPROCS(0),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
