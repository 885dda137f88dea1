package gen

import (
	"fmt"
	"strings"

	"github.com/benn-herrera/letterboxed-mp/schema"
)

// Outputs is the set of files a generator produces.
type Outputs uint8

// Output kinds.
const (
	OutputHeader Outputs = 1 << iota
	OutputSource
)

// Header reports whether a header file is produced.
func (o Outputs) Header() bool { return o&OutputHeader != 0 }

// Source reports whether a source file is produced.
func (o Outputs) Source() bool { return o&OutputSource != 0 }

// String returns "header", "source", "header+source" or "none".
func (o Outputs) String() string {
	var parts []string
	if o.Header() {
		parts = append(parts, "header")
	}
	if o.Source() {
		parts = append(parts, "source")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Generator emits one target language rendition of an API document.
//
// Implementations are stateless: all per-run settings come from the Config
// and all output goes to the contexts, which are nil for outputs the
// generator does not produce.
type Generator interface {
	// Name returns the target name, e.g. "cpp" or "jni".
	Name() string
	// Outputs returns the files the generator produces.
	Outputs() Outputs
	// Comment renders text as line comments of the target language.
	Comment(text string) []string
	// Generate emits api into the contexts.
	Generate(api *schema.API, cfg *Config, hdr, src *Context) error
}

// LineComment returns a Comment implementation prefixing each line of text
// with prefix, as in "// " for C-family languages.
func LineComment(prefix string) func(string) []string {
	return func(text string) []string {
		lines := strings.Split(text, "\n")
		for i, l := range lines {
			lines[i] = prefix + l
		}
		return lines
	}
}

// Run validates that paths are supplied exactly for the outputs g produces,
// creates the contexts with their header comment and runs g. Contexts of
// outputs g does not produce are nil.
func Run(g Generator, api *schema.API, hdrPath, srcPath string, opts ...Option) (hdr, src *Context, err error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, nil, err
	}
	return RunConfig(g, api, cfg, hdrPath, srcPath)
}

// RunConfig is like Run with an already built Config.
func RunConfig(g Generator, api *schema.API, cfg *Config, hdrPath, srcPath string) (hdr, src *Context, err error) {
	if err := checkPaths(g, hdrPath, srcPath); err != nil {
		return nil, nil, err
	}
	if hdrPath != "" {
		hdr = newUnitContext(g, api, cfg, hdrPath)
	}
	if srcPath != "" {
		src = newUnitContext(g, api, cfg, srcPath)
	}
	cfg.Logger.Debugw("generating", "target", g.Name(), "api", api.Name(), "outputs", g.Outputs().String())
	if err := g.Generate(api, cfg, hdr, src); err != nil {
		return nil, nil, NewGenerationError(g.Name(), "", "generate "+api.Name(), err)
	}
	for _, ctx := range []*Context{hdr, src} {
		if ctx == nil {
			continue
		}
		if _, err := ctx.Text(); err != nil {
			return nil, nil, err
		}
		cfg.Logger.Debugw("generated", "target", g.Name(), "file", ctx.Path(), "lines", ctx.LineCount())
	}
	return hdr, src, nil
}

func checkPaths(g Generator, hdrPath, srcPath string) error {
	out := g.Outputs()
	switch {
	case hdrPath != "" && !out.Header():
		return NewConfigError("hdr", hdrPath, fmt.Sprintf("%s does not generate a header file but hdr path was specified", g.Name()))
	case hdrPath == "" && out.Header():
		return NewConfigError("hdr", nil, fmt.Sprintf("%s generates a header file but hdr path was not specified", g.Name()))
	case srcPath != "" && !out.Source():
		return NewConfigError("src", srcPath, fmt.Sprintf("%s does not generate a source file but src path was specified", g.Name()))
	case srcPath == "" && out.Source():
		return NewConfigError("src", nil, fmt.Sprintf("%s generates a source file but src path was not specified", g.Name()))
	}
	return nil
}

func newUnitContext(g Generator, api *schema.API, cfg *Config, path string) *Context {
	ctx := NewContext(path)
	ctx.AddLines(g.Comment(HeaderComment(ctx.Name(), api.Version(), cfg))...)
	ctx.markHeader()
	return ctx
}

// HeaderComment returns the text of the comment opening every generated
// file: the file name, API version, generator identity and timestamp.
func HeaderComment(file, version string, cfg *Config) string {
	return fmt.Sprintf("\n%s v%s generated by %s %s\n", file, version, cfg.GenVersion, cfg.Timestamp())
}

// HeaderLines returns the number of lines of the header comment.
func (c *Context) HeaderLines() int { return c.header }

// Body returns the emitted text after the header comment. Two runs over the
// same document produce the same Body regardless of their timestamps.
func (c *Context) Body() (string, error) {
	if _, err := c.Text(); err != nil {
		return "", err
	}
	return StripHeader(strings.Join(c.lines, "\n")+"\n", c.header), nil
}

// StripHeader drops the first n lines of text.
func StripHeader(text string, n int) string {
	for i := 0; i < n; i++ {
		j := strings.IndexByte(text, '\n')
		if j < 0 {
			return ""
		}
		text = text[j+1:]
	}
	return text
}
