package bracefmt

import (
	"fmt"
	"sync"
)

// Having an initial size avoids regrowing for typical field widths.
var scratchPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 256)
		return &b
	},
}

// engine carries the state of one formatting call.
type engine struct {
	out   Appender
	table dispatchTable
	args  []any
	total int

	// Right-aligned values are rendered here first to measure them.
	scratch *BufferAppender
}

func newEngine(out Appender, table dispatchTable, args []any) *engine {
	return &engine{out: out, table: table, args: args}
}

// release returns the scratch buffer to the pool.
func (e *engine) release() {
	if e.scratch == nil {
		return
	}
	// To reduce peak allocation, return only smaller buffers to the pool.
	const maxScratchSize = 16 << 10
	if cap(*e.scratch.buf) <= maxScratchSize {
		*e.scratch.buf = (*e.scratch.buf)[:0]
		scratchPool.Put(e.scratch.buf)
	}
	e.scratch = nil
}

// literal and placeholder add what reached the destination to the total,
// including the part of a block written before a failure.
func (e *engine) literal(text string) error {
	start := e.out.Written()
	err := e.out.AppendString(text)
	e.total += e.out.Written() - start
	return err
}

func (e *engine) placeholder(c Component) error {
	start := e.out.Written()
	err := e.render(c)
	e.total += e.out.Written() - start
	return err
}

func (e *engine) render(c Component) error {
	render := e.table[c.Index]
	arg := e.args[c.Index]

	switch {
	case c.Width == 0:
		if _, err := render(arg, e.out, c.Options); err != nil {
			return renderFailed(c, err)
		}

	case c.Width > 0:
		buf := e.resetScratch()
		if _, err := render(arg, buf, c.Options); err != nil {
			return renderFailed(c, err)
		}
		if err := appendPadding(e.out, c.Width-len(*buf.buf)); err != nil {
			return err
		}
		return e.out.AppendBytes(*buf.buf)

	default:
		before := e.out.Written()
		if _, err := render(arg, e.out, c.Options); err != nil {
			return renderFailed(c, err)
		}
		return appendPadding(e.out, -c.Width-(e.out.Written()-before))
	}
	return nil
}

func (e *engine) resetScratch() *BufferAppender {
	if e.scratch == nil {
		e.scratch = NewBufferAppender(scratchPool.Get().(*[]byte))
	}
	*e.scratch.buf = (*e.scratch.buf)[:0]
	e.scratch.n = 0
	return e.scratch
}

// run replays pre-parsed components.
func (e *engine) run(components []Component) error {
	for _, c := range components {
		var err error
		if c.Kind == Literal {
			err = e.literal(c.Text)
		} else {
			err = e.placeholder(c)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func renderFailed(c Component, err error) error {
	return fmt.Errorf("placeholder #%d (argument %d): %w", c.Ordinal, c.Index, err)
}
