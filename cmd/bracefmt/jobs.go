package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/bjaus/bracefmt"
	"github.com/bjaus/bracefmt/internal/jobfile"
	"github.com/bjaus/bracefmt/internal/report"
)

func runJobs(logger *slog.Logger, stdout io.Writer, path string, format report.Format) error {
	file, err := jobfile.Load(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded job file", "path", path, "jobs", len(file.Jobs))

	failed := 0
	results := func(yield func(report.Result) bool) {
		for i, job := range file.Jobs {
			r := runJob(job, i)
			if r.Failed() {
				failed++
				logger.Debug("job failed", "job", r.Name, "error", r.Error)
			} else {
				logger.Debug("job done", "job", r.Name, "written", r.Written)
			}
			if !yield(r) {
				return
			}
		}
	}
	if err := report.WriteIter(stdout, format, results); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(file.Jobs))
	}
	return nil
}

func runJob(job jobfile.Job, i int) report.Result {
	r := report.Result{Name: job.Label(i), Template: job.Template}
	if job.Validate != nil {
		if err := bracefmt.Validate(job.Template, *job.Validate); err != nil {
			r.Error = err.Error()
		}
		return r
	}

	tmpl, err := bracefmt.Compile(job.Template, len(job.Args))
	if err != nil {
		r.Error = err.Error()
		return r
	}
	out, err := tmpl.Sprint(job.Args...)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Output = out
	r.Written = len(out)
	return r
}
