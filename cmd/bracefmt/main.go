// bracefmt renders a brace template from the command line.
//
// Single template mode formats TEMPLATE with the remaining arguments:
//
//	bracefmt '{0,-8}|{1,6:x}|' name 255
//
// Arguments that look like integers, floats or booleans are passed as those
// types so that type-specific options such as "x" or "f2" apply; --strings
// passes every argument as text. --validate N checks the template against N
// arguments and renders nothing.
//
// Batch mode (--jobs FILE) runs every job in a YAML or JSONC job file and
// writes a report in the format chosen with --output.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bjaus/bracefmt/internal/report"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	validate int
	jobs     string
	output   string
	strings  bool
	newline  bool
	verbose  bool
}

var errUsage = errors.New("usage")

func run(args []string, stdout, stderr io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("bracefmt", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.IntVar(&opts.validate, "validate", -1, "check TEMPLATE against `N` arguments without rendering")
	flagSet.StringVar(&opts.jobs, "jobs", "", "run the jobs in a YAML or JSONC `FILE`")
	flagSet.StringVarP(&opts.output, "output", "o", string(report.Plain), "job report format: "+formatList()+" or go-template=TEMPLATE")
	flagSet.BoolVar(&opts.strings, "strings", false, "pass every argument as a string")
	flagSet.BoolVar(&opts.newline, "newline", true, "end single template output with a newline")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug details to stderr")
	flagSet.Usage = func() { printHelp(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if opts.jobs != "" {
		if flagSet.NArg() > 0 {
			return fmt.Errorf("%w: --jobs takes no positional arguments, got %q", errUsage, flagSet.Arg(0))
		}
		format, err := report.ParseFormat(opts.output)
		if err != nil {
			return err
		}
		return runJobs(logger, stdout, opts.jobs, format)
	}

	if flagSet.NArg() == 0 {
		printHelp(stderr, flagSet)
		return fmt.Errorf("%w: missing TEMPLATE", errUsage)
	}
	return runTemplate(logger, stdout, opts, flagSet.Arg(0), flagSet.Args()[1:])
}

func formatList() string {
	names := make([]string, 0, len(report.Formats()))
	for _, f := range report.Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `Render a positional brace template.

Usage:
  bracefmt [flags] TEMPLATE [ARG...]
  bracefmt [flags] --jobs FILE

Placeholders take the form {index[,width][:options]}. Use {{ and }} for
literal braces.

Flags:
%s`, flagSet.FlagUsages())
}
