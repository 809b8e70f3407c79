package main

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bjaus/bracefmt"
)

func runTemplate(logger *slog.Logger, stdout io.Writer, opts options, template string, rawArgs []string) error {
	if opts.validate >= 0 {
		if err := bracefmt.Validate(template, opts.validate); err != nil {
			return err
		}
		logger.Debug("template is valid", "template", template, "args", opts.validate)
		return nil
	}

	args := make([]any, len(rawArgs))
	for i, raw := range rawArgs {
		if opts.strings {
			args[i] = raw
		} else {
			args[i] = inferArg(raw)
		}
		logger.Debug("argument", "index", i, "type", typeName(args[i]), "value", raw)
	}

	n, err := bracefmt.Fprint(stdout, template, args...)
	if err != nil {
		return err
	}
	if opts.newline {
		if _, err := io.WriteString(stdout, "\n"); err != nil {
			return err
		}
	}
	logger.Debug("rendered", "written", n)
	return nil
}

// inferArg converts a command line argument to int64, float64 or bool when it
// is spelled as one, and leaves it a string otherwise.
func inferArg(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// ParseFloat also accepts words such as "inf" and "nan".
	if strings.ContainsAny(s, "0123456789") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

func typeName(v any) string {
	switch v.(type) {
	case int64:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	default:
		return "string"
	}
}
