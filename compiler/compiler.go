// Package compiler runs the generators of a document: it renders every
// configured target, then writes the outputs to disk or checks them against
// what is already there.
//
//	api, err := load.File("engine_api.json")
//	...
//	c, err := compiler.New(api, gen.WithAPIHeader("api/engine_api.h"))
//	...
//	c.WithTargets(compiler.Target{Name: compiler.TargetCPP, Header: "out/engine_api.h"})
//	err = c.Generate(ctx)
package compiler

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/schema"
)

// Compiler renders the targets of one document.
type Compiler struct {
	api     *schema.API
	cfg     *gen.Config
	targets []Target
}

// New returns a compiler for api with the run-wide options applied.
func New(api *schema.API, opts ...gen.Option) (*Compiler, error) {
	if api == nil {
		return nil, gen.NewConfigError("api", nil, "no document to compile")
	}
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Compiler{api: api, cfg: cfg}, nil
}

// WithTargets appends targets to the run.
func (c *Compiler) WithTargets(targets ...Target) *Compiler {
	c.targets = append(c.targets, targets...)
	return c
}

// API returns the compiled document.
func (c *Compiler) API() *schema.API { return c.api }

// Output holds the rendered files of one target. Header or Source is nil
// when the generator does not produce it.
type Output struct {
	Target Target
	Header *gen.Context
	Source *gen.Context
}

// Units returns the non-nil contexts of o.
func (o *Output) Units() []*gen.Context {
	var units []*gen.Context
	for _, u := range []*gen.Context{o.Header, o.Source} {
		if u != nil {
			units = append(units, u)
		}
	}
	return units
}

// Render runs the generator of every target in order. The first failing
// target stops the run.
func (c *Compiler) Render() ([]*Output, error) {
	if len(c.targets) == 0 {
		return nil, gen.NewConfigError("targets", nil, "no targets configured")
	}
	outputs := make([]*Output, 0, len(c.targets))
	for _, t := range c.targets {
		o, err := c.render(t)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", t.Name, err)
		}
		outputs = append(outputs, o)
	}
	return outputs, nil
}

func (c *Compiler) render(t Target) (*Output, error) {
	g, err := NewGenerator(t.Name)
	if err != nil {
		return nil, err
	}
	cfg := *c.cfg
	if err := cfg.Apply(t.options()...); err != nil {
		return nil, err
	}
	hdr, src, err := gen.RunConfig(g, c.api, &cfg, t.Header, t.Source)
	if err != nil {
		return nil, err
	}
	return &Output{Target: t, Header: hdr, Source: src}, nil
}

// Generate renders every target and writes the outputs.
func (c *Compiler) Generate(ctx context.Context) error {
	outputs, err := c.Render()
	if err != nil {
		return err
	}
	var units []*gen.Context
	for _, o := range outputs {
		units = append(units, o.Units()...)
	}
	w := gen.NewWriter(c.cfg)
	if err := w.Write(ctx, units...); err != nil {
		return err
	}
	m := w.Metrics()
	c.cfg.Logger.Infow("generated", "api", c.api.Name(), "targets", len(outputs),
		"written", m.FilesWritten, "skipped", m.FilesSkipped, "bytes", m.TotalBytes)
	return nil
}

// Stale describes an output whose file on disk differs from what the
// document renders to.
type Stale struct {
	Path string
	// Missing is set when there is no file at Path.
	Missing bool
}

func (s Stale) String() string {
	if s.Missing {
		return s.Path + ": missing"
	}
	return s.Path + ": out of date"
}

// Check renders every target and compares each output with the file at its
// path, ignoring the timestamped header comment. Outputs the writer would
// skip are not checked. The stale outputs are returned in target order.
func (c *Compiler) Check(ctx context.Context) ([]Stale, error) {
	outputs, err := c.Render()
	if err != nil {
		return nil, err
	}
	var units []*gen.Context
	for _, o := range outputs {
		for _, u := range o.Units() {
			if u.HasContent() {
				units = append(units, u)
			}
		}
	}
	results := make([]*Stale, len(units))
	eg, ctx := errgroup.WithContext(ctx)
	if c.cfg.Workers > 0 {
		eg.SetLimit(c.cfg.Workers)
	}
	for i, u := range units {
		i, u := i, u
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := compare(u)
			results[i] = s
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	var stale []Stale
	for _, s := range results {
		if s != nil {
			stale = append(stale, *s)
		}
	}
	return stale, nil
}

// compare returns a non-nil Stale when the file of u differs from its body.
func compare(u *gen.Context) (*Stale, error) {
	body, err := u.Body()
	if err != nil {
		return nil, err
	}
	disk, err := os.ReadFile(u.Path())
	switch {
	case errors.Is(err, os.ErrNotExist):
		return &Stale{Path: u.Path(), Missing: true}, nil
	case err != nil:
		return nil, gen.NewGenerationError("check", u.Path(), "", err)
	}
	if gen.StripHeader(string(disk), u.HeaderLines()) != body {
		return &Stale{Path: u.Path()}, nil
	}
	return nil, nil
}
