package bracefmt

import (
	"fmt"
	"io"
)

// Appender is the output sink every render function writes through. Each
// append either succeeds completely or returns an error wrapping [ErrOverflow]
// or [ErrWriteFailure]. Written reports the running number of bytes appended,
// including any partial progress made before a failure.
//
// An Appender belongs to one formatting call and is not safe for concurrent
// use.
type Appender interface {
	AppendByte(c byte) error
	AppendBytes(p []byte) error
	AppendString(s string) error
	Written() int
}

type counter struct {
	n int
}

// Written returns the number of bytes appended so far.
func (c *counter) Written() int { return c.n }

// AppenderFor selects an [Appender] for dest based on what dest can do:
//
//   - [Appender]: returned as is, so appenders never nest
//   - *[]byte: growable, see [NewBufferAppender]
//   - []byte: fixed range, see [NewFixedAppender]
//   - [io.Writer]: stream, see [NewWriterAppender]; this covers
//     *bytes.Buffer, *strings.Builder, *bufio.Writer and *os.File
func AppenderFor(dest any) (Appender, error) {
	switch d := dest.(type) {
	case Appender:
		return d, nil
	case *[]byte:
		if d == nil {
			return nil, fmt.Errorf("%w: nil *[]byte", ErrUnsupportedDestination)
		}
		return NewBufferAppender(d), nil
	case []byte:
		return NewFixedAppender(d), nil
	case io.Writer:
		return NewWriterAppender(d), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedDestination, dest)
	}
}

// --- Growable buffer ---

// BufferAppender appends to a byte slice, growing it as needed. It never
// fails.
type BufferAppender struct {
	counter
	buf *[]byte
}

// NewBufferAppender returns an appender that extends *buf.
func NewBufferAppender(buf *[]byte) *BufferAppender {
	return &BufferAppender{buf: buf}
}

func (b *BufferAppender) AppendByte(c byte) error {
	*b.buf = append(*b.buf, c)
	b.n++
	return nil
}

func (b *BufferAppender) AppendBytes(p []byte) error {
	*b.buf = append(*b.buf, p...)
	b.n += len(p)
	return nil
}

func (b *BufferAppender) AppendString(s string) error {
	*b.buf = append(*b.buf, s...)
	b.n += len(s)
	return nil
}

// --- Fixed range ---

// FixedAppender fills a caller-provided slice from the start and fails with
// [ErrOverflow] once the slice is full. Capacity checks are O(1) and a block
// that does not fit is rejected without writing any of it.
type FixedAppender struct {
	counter
	buf []byte
}

// NewFixedAppender returns an appender over buf[:len(buf)].
func NewFixedAppender(buf []byte) *FixedAppender {
	return &FixedAppender{buf: buf}
}

// Bytes returns the filled prefix of the underlying slice.
func (f *FixedAppender) Bytes() []byte { return f.buf[:f.n] }

// Available returns how many more bytes fit.
func (f *FixedAppender) Available() int { return len(f.buf) - f.n }

func (f *FixedAppender) AppendByte(c byte) error {
	if f.n == len(f.buf) {
		return overflow(1, 0)
	}
	f.buf[f.n] = c
	f.n++
	return nil
}

func (f *FixedAppender) AppendBytes(p []byte) error {
	if avail := f.Available(); avail < len(p) {
		return overflow(len(p), avail)
	}
	f.n += copy(f.buf[f.n:], p)
	return nil
}

func (f *FixedAppender) AppendString(s string) error {
	if avail := f.Available(); avail < len(s) {
		return overflow(len(s), avail)
	}
	f.n += copy(f.buf[f.n:], s)
	return nil
}

// --- Forward-only bounded stream ---

// LimitedAppender writes at most a fixed number of bytes to a forward-only
// destination. A block longer than the remaining budget is written up to the
// limit and then reported as [ErrOverflow]; Written includes the bytes that
// made it out.
type LimitedAppender struct {
	counter
	w         io.Writer
	remaining int
}

// NewLimitedAppender returns an appender that forwards at most limit bytes to w.
// A negative limit is treated as zero.
func NewLimitedAppender(w io.Writer, limit int) *LimitedAppender {
	return &LimitedAppender{w: w, remaining: max(limit, 0)}
}

func (l *LimitedAppender) AppendByte(c byte) error {
	if l.remaining == 0 {
		return overflow(1, 0)
	}
	var one [1]byte
	one[0] = c
	return l.AppendBytes(one[:])
}

func (l *LimitedAppender) AppendBytes(p []byte) error {
	want := len(p)
	avail := l.remaining
	if want > avail {
		p = p[:avail]
	}
	n, err := l.w.Write(p)
	l.n += n
	l.remaining -= n
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	if n < len(p) {
		return fmt.Errorf("%w: %w", ErrWriteFailure, io.ErrShortWrite)
	}
	if n < want {
		return overflow(want, avail)
	}
	return nil
}

func (l *LimitedAppender) AppendString(s string) error {
	n, err := io.WriteString(l.w, s[:min(len(s), l.remaining)])
	avail := l.remaining
	l.n += n
	l.remaining -= n
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	if n < min(len(s), avail) {
		return fmt.Errorf("%w: %w", ErrWriteFailure, io.ErrShortWrite)
	}
	if n < len(s) {
		return overflow(len(s), avail)
	}
	return nil
}

// --- Stream ---

// WriterAppender forwards appends to an [io.Writer]. It uses [io.ByteWriter]
// and [io.StringWriter] when the destination provides them. Any error from the
// destination, including a short write, is returned wrapped in
// [ErrWriteFailure].
type WriterAppender struct {
	counter
	w   io.Writer
	one [1]byte
}

// NewWriterAppender returns an appender over w.
func NewWriterAppender(w io.Writer) *WriterAppender {
	return &WriterAppender{w: w}
}

func (a *WriterAppender) AppendByte(c byte) error {
	if bw, ok := a.w.(io.ByteWriter); ok {
		if err := bw.WriteByte(c); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailure, err)
		}
		a.n++
		return nil
	}
	a.one[0] = c
	return a.AppendBytes(a.one[:])
}

func (a *WriterAppender) AppendBytes(p []byte) error {
	n, err := a.w.Write(p)
	return a.account(n, len(p), err)
}

func (a *WriterAppender) AppendString(s string) error {
	n, err := io.WriteString(a.w, s)
	return a.account(n, len(s), err)
}

func (a *WriterAppender) account(n, want int, err error) error {
	a.n += n
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	if n < want {
		return fmt.Errorf("%w: %w", ErrWriteFailure, io.ErrShortWrite)
	}
	return nil
}

// --- No-op ---

// DiscardAppender counts appended bytes and drops them.
type DiscardAppender struct {
	counter
}

// NewDiscardAppender returns an appender that accepts and drops everything.
func NewDiscardAppender() *DiscardAppender { return &DiscardAppender{} }

func (d *DiscardAppender) AppendByte(byte) error { d.n++; return nil }

func (d *DiscardAppender) AppendBytes(p []byte) error { d.n += len(p); return nil }

func (d *DiscardAppender) AppendString(s string) error { d.n += len(s); return nil }

func overflow(requested, available int) error {
	return fmt.Errorf("%w: %d bytes requested, %d available", ErrOverflow, requested, available)
}

// appendPadding writes n copies of the fill byte.
func appendPadding(a Appender, n int) error {
	const chunk = "                                "
	for n > 0 {
		k := min(n, len(chunk))
		if err := a.AppendString(chunk[:k]); err != nil {
			return err
		}
		n -= k
	}
	return nil
}
