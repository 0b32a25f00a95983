// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/pagesmith/pkg/errors"
	"github.com/arthur-debert/pagesmith/pkg/pipeline"
)

// Renderer provides JSON output for machine consumption. Reports and errors
// are encoded on output; notices go to errOutput so output stays one document.
type Renderer struct {
	encoder    *json.Encoder
	errEncoder *json.Encoder
}

// New creates a new JSON renderer
func New(output, errOutput io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder, errEncoder: json.NewEncoder(errOutput)}
}

// RenderReport encodes the report
func (r *Renderer) RenderReport(report *pipeline.Report) error {
	return r.encoder.Encode(report)
}

// RenderError renders an error as JSON, with its code and details when it
// carries them
func (r *Renderer) RenderError(err error) error {
	errorObj := map[string]interface{}{
		"error": err.Error(),
		"fatal": errors.IsFatal(err),
	}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		errorObj["code"] = code
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		errorObj["details"] = details
	}
	return r.encoder.Encode(errorObj)
}

// RenderMessage renders a notice as JSON on the error output
func (r *Renderer) RenderMessage(msg string) error {
	return r.errEncoder.Encode(map[string]string{
		"message": msg,
	})
}
