// Package ui renders run reports in different formats.
// It supports terminal (rich), text (plain), and JSON output formats.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/pagesmith/pkg/errors"
	"github.com/arthur-debert/pagesmith/pkg/pipeline"
	"github.com/arthur-debert/pagesmith/pkg/ui/json"
	"github.com/arthur-debert/pagesmith/pkg/ui/terminal"
	"github.com/arthur-debert/pagesmith/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderReport renders the outcome of a run
	RenderReport(report *pipeline.Report) error

	// RenderError renders a run-level error
	RenderError(err error) error

	// RenderMessage renders an informational notice. Notices never mix
	// with the report on the main output.
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. Reports go to output; failures
// go to errOutput in the formats that separate them.
// FormatAuto inspects output when it is a file and uses text otherwise.
func NewRenderer(format Format, output, errOutput io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output, errOutput)
		}
		return NewRenderer(FormatText, output, errOutput)
	case FormatTerminal:
		return terminal.New(output, errOutput), nil
	case FormatText:
		return text.New(output, errOutput), nil
	case FormatJSON:
		return json.New(output, errOutput), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
