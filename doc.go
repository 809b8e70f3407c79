// Package bracefmt renders positional brace templates at runtime.
//
// A template mixes literal text with placeholders that reference arguments by
// position:
//
//	bracefmt.Sprint("{0,-10:x} and {1}", 42, "hi") // "2a         and hi"
//
// The central entry points are [Format], which writes to any supported
// destination, and the conveniences [Fprint], [Append] and [Sprint].
// [Validate] checks a template against an argument count without rendering
// anything, and [Compile] parses a template once for repeated use.
//
// # Template Syntax
//
//	placeholder  = "{" index [ "," width ] [ ":" options ] "}"
//	index        = decimal digits
//	width        = [ "-" ] decimal digits
//
// "{{" and "}}" produce a single literal brace, both in literal text and in
// option text. A positive width right-aligns the value in a field of that many
// bytes, a negative width left-aligns it, and zero means no padding. The pad
// byte is a space. Widths count bytes, not display columns.
//
// # Render Shapes
//
// An argument type is rendered by the first shape it implements, in this
// order:
//
//   - [FormatAppender]: writes to the [Appender], honoring options
//   - [OptionStringer]: returns a string, honoring options
//   - [AppenderTo]: writes to the [Appender], ignoring options
//   - [fmt.Stringer]: returns a string, ignoring options
//
// Shapes that honor options always win over shapes that don't. Functions
// installed with [Register] take precedence over all four; string and []byte
// are copied as is. Types with none of these fall back to built-in renderers
// for integer, float, bool, string and byte slice kinds. Integers accept the
// options d, x, X, o and b; floats accept f, e, E, g or G with an optional
// precision such as "f2". time.Time is registered with its options used as a
// layout.
//
// Use [ShapeOf] or [IsRenderable] to check a type up front.
//
// # Destinations
//
// [AppenderFor] picks an [Appender] from the destination's capabilities:
//
//   - *[]byte: grows without limit ([BufferAppender])
//   - []byte: fixed capacity, fails with [ErrOverflow] ([FixedAppender])
//   - [io.Writer]: stream, fails with [ErrWriteFailure] ([WriterAppender])
//
// [LimitedAppender] caps the bytes sent to a forward-only writer.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrMalformedIndex], [ErrIndexOutOfRange], [ErrMalformedWidth],
//     [ErrUnexpectedCharacter], [ErrUnterminatedPlaceholder]: template
//     syntax, reported as *[ParseError] with the byte offset
//   - [ErrNoRenderer]: an argument type cannot be rendered
//   - [ErrInvalidOptions]: a built-in renderer rejected the option text
//   - [ErrOverflow], [ErrWriteFailure]: the destination refused data
//   - [ErrArgCount]: a compiled [Template] got the wrong number of arguments
//   - [ErrUnsupportedDestination]: [Format] was given an unknown destination
//
// Any error aborts the call. Output already written stays written.
package bracefmt
