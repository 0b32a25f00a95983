// Package text prints plain reports: one written file per line.
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/pagesmith/pkg/pipeline"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output    io.Writer
	errOutput io.Writer
}

// New creates a new text renderer
func New(output, errOutput io.Writer) *Renderer {
	return &Renderer{output: output, errOutput: errOutput}
}

// RenderReport prints every written output path on its own line, in input
// order. Failed inputs are reported on the error output.
func (r *Renderer) RenderReport(report *pipeline.Report) error {
	for _, res := range report.Results {
		switch res.Status {
		case pipeline.StatusWritten:
			if _, err := fmt.Fprintln(r.output, res.Output); err != nil {
				return err
			}
		case pipeline.StatusFailed:
			if _, err := fmt.Fprintf(r.errOutput, "Failed to build file: %s\n%s\n", res.Input, res.Error); err != nil {
				return err
			}
		}
	}
	if report.Sitemap != "" {
		if _, err := fmt.Fprintln(r.output, report.Sitemap); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.errOutput, "Error: %v\n", err)
	return err2
}

// RenderMessage prints a notice on the error output, keeping the main output
// a plain list of written files
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.errOutput, msg)
	return err
}
