package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Writer writes finished contexts to disk with parallel execution.
type Writer struct {
	workers int
	logger  *zap.SugaredLogger

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks written output.
type WriterMetrics struct {
	FilesWritten int
	FilesSkipped int
	TotalBytes   int64
}

// NewWriter creates a writer using the worker count and logger of cfg.
func NewWriter(cfg *Config) *Writer {
	return &Writer{
		workers: cfg.Workers,
		logger:  cfg.Logger,
		metrics: &WriterMetrics{},
	}
}

// Metrics returns the write metrics.
func (w *Writer) Metrics() *WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	m := *w.metrics
	return &m
}

// Write writes every non-nil context that has content beyond its header
// comment, creating parent directories as needed. Contexts holding only the
// header comment are skipped so an empty output never replaces a file.
func (w *Writer) Write(ctx context.Context, units ...*Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	if w.workers > 0 {
		eg.SetLimit(w.workers)
	}
	for _, u := range units {
		if u == nil {
			continue
		}
		u := u
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(u)
			}
		})
	}
	return eg.Wait()
}

// writeFile writes a single context.
func (w *Writer) writeFile(u *Context) error {
	if !u.HasContent() {
		w.logger.Debugw("skipping empty output", "file", u.Path())
		w.mu.Lock()
		w.metrics.FilesSkipped++
		w.mu.Unlock()
		return nil
	}
	// 1. Render
	buf, err := u.Bytes()
	if err != nil {
		return err
	}

	// 2. Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(u.Path()), 0o755); err != nil {
		return NewGenerationError("write", u.Path(), "create directory", err)
	}

	// 3. Write file
	if err := os.WriteFile(u.Path(), buf, 0o644); err != nil {
		return NewGenerationError("write", u.Path(), "", err)
	}
	w.logger.Infow("wrote", "file", u.Path(), "lines", u.LineCount())

	// Update metrics
	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(buf))
	w.mu.Unlock()
	return nil
}

// Write is the convenience function writing units with a default Config.
func Write(units ...*Context) error {
	cfg, err := NewConfig()
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return NewWriter(cfg).Write(context.Background(), units...)
}
