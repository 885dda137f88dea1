package gen

import (
	"fmt"
	"path/filepath"
	"strings"
)

// indentUnit is the text emitted once per indentation level.
const indentUnit = "  "

// Block is an open, nestable region of a Context: a namespace, a class body,
// an extern "C" guard. It is created by Context.PushBlock and must be closed
// with Context.PopBlock in LIFO order.
type Block struct {
	indent    bool
	level     int
	prePop    []string
	postPop   []string
	onPrePop  func() error
	onPostPop func() error
}

// BlockOption configures a Block.
type BlockOption func(*Block)

// Indent indents the lines emitted inside the block by one level.
func Indent() BlockOption {
	return func(b *Block) { b.indent = true }
}

// PrePop sets the lines emitted when the block closes, before its
// indentation is removed.
func PrePop(lines ...string) BlockOption {
	return func(b *Block) { b.prePop = lines }
}

// PostPop sets the lines emitted when the block closes, after its
// indentation is removed. PostPop("};") closes a C++ class body.
func PostPop(lines ...string) BlockOption {
	return func(b *Block) { b.postPop = lines }
}

// OnPrePop registers a callback run first when the block closes. The callback
// may emit lines and push and pop nested blocks of its own.
func OnPrePop(fn func() error) BlockOption {
	return func(b *Block) { b.onPrePop = fn }
}

// OnPostPop registers a callback run last when the block closes.
func OnPostPop(fn func() error) BlockOption {
	return func(b *Block) { b.onPostPop = fn }
}

// Context accumulates the text of one output file. Lines are emitted through
// AddLines at the current indentation; PushBlock and PopBlock keep opening
// and closing text paired. A Context is not safe for concurrent use.
type Context struct {
	path   string
	lines  []string
	indent int
	blocks []*Block
	header int
}

// NewContext returns an empty context for the file at path.
func NewContext(path string) *Context {
	return &Context{path: path}
}

// Path returns the output path.
func (c *Context) Path() string { return c.path }

// Name returns the base name of the output path.
func (c *Context) Name() string { return filepath.Base(c.path) }

// Lines returns a copy of the emitted lines.
func (c *Context) Lines() []string {
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// LineCount returns the number of emitted lines.
func (c *Context) LineCount() int { return len(c.lines) }

// Depth returns the current indentation level.
func (c *Context) Depth() int { return c.indent }

// HasContent reports whether anything beyond the header comment was emitted.
func (c *Context) HasContent() bool { return len(c.lines) > c.header }

// markHeader records the lines emitted so far as the header comment.
func (c *Context) markHeader() { c.header = len(c.lines) }

// AddLines emits lines at the current indentation. Each argument is split on
// newlines, so AddLines("a\nb") emits two lines. Empty lines are not
// indented.
func (c *Context) AddLines(lines ...string) {
	prefix := strings.Repeat(indentUnit, c.indent)
	for _, l := range lines {
		for _, ln := range strings.Split(l, "\n") {
			if ln == "" {
				c.lines = append(c.lines, "")
				continue
			}
			c.lines = append(c.lines, prefix+ln)
		}
	}
}

// PushIndent increments the indentation and returns the new level.
func (c *Context) PushIndent() int {
	c.indent++
	return c.indent
}

// PopIndent decrements the indentation. expected, if positive, must match
// the level being removed.
func (c *Context) PopIndent(expected int) error {
	if c.indent == 0 {
		return NewGenerationError("emit", c.path, "can't reduce indent below 0", ErrUnbalanced)
	}
	if expected > 0 && expected != c.indent {
		msg := fmt.Sprintf("expected current indent %d but it is %d", expected, c.indent)
		return NewGenerationError("emit", c.path, msg, ErrUnbalanced)
	}
	c.indent--
	return nil
}

// PushBlock emits open, when non-empty, and opens a block. The returned
// Block is the token PopBlock expects back.
func (c *Context) PushBlock(open string, opts ...BlockOption) *Block {
	b := &Block{}
	for _, opt := range opts {
		opt(b)
	}
	if open != "" {
		c.AddLines(open)
	}
	if b.indent {
		b.level = c.PushIndent()
	}
	c.blocks = append(c.blocks, b)
	return b
}

// PopBlock closes the innermost block, which must be expected. Closing runs
// OnPrePop, emits the PrePop lines, removes the block indentation, emits the
// PostPop lines and runs OnPostPop.
func (c *Context) PopBlock(expected *Block) error {
	if len(c.blocks) == 0 {
		return ErrEmptyStack
	}
	b := c.blocks[len(c.blocks)-1]
	if b != expected {
		return ErrUnexpectedBlock
	}
	c.blocks = c.blocks[:len(c.blocks)-1]
	if b.onPrePop != nil {
		if err := b.onPrePop(); err != nil {
			return err
		}
	}
	c.AddLines(b.prePop...)
	if b.indent {
		if err := c.PopIndent(b.level); err != nil {
			return err
		}
	}
	c.AddLines(b.postPop...)
	if b.onPostPop != nil {
		return b.onPostPop()
	}
	return nil
}

// Text returns the emitted lines joined by newlines, with a trailing newline.
// It fails if a block or an indentation level is still open.
func (c *Context) Text() (string, error) {
	if len(c.blocks) > 0 || c.indent > 0 {
		return "", NewGenerationError("emit", c.path,
			"indent and/or block stack have more pushes than pops", ErrUnbalanced)
	}
	return strings.Join(c.lines, "\n") + "\n", nil
}

// Bytes is like Text but returns the content as a byte slice.
func (c *Context) Bytes() ([]byte, error) {
	s, err := c.Text()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}
