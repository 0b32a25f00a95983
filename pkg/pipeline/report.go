package pipeline

import (
	"time"

	"github.com/arthur-debert/pagesmith/pkg/errors"
)

// Status is the outcome of one input path
type Status string

const (
	// StatusWritten means the page was rendered and written
	StatusWritten Status = "written"
	// StatusSkipped means the input does not exist; nothing was written
	StatusSkipped Status = "skipped"
	// StatusFailed means resolving, rendering or writing the page failed
	StatusFailed Status = "failed"
)

// Result is the outcome of one input path
type Result struct {
	Input    string        `json:"input"`
	Output   string        `json:"output,omitempty"`
	Status   Status        `json:"status"`
	Bytes    int           `json:"bytes,omitempty"`
	Duration time.Duration `json:"duration_ns"`
	Err      error         `json:"-"`
	// Error is Err's message, kept for JSON reports
	Error string `json:"error,omitempty"`
	// Code and Details come from Err when it is a coded error
	Code    errors.ErrorCode       `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Report collects the results of a run in input order
type Report struct {
	OutDir   string        `json:"outdir"`
	Config   string        `json:"config,omitempty"`
	Indexes  bool          `json:"indexes"`
	Results  []Result      `json:"results"`
	Sitemap  string        `json:"sitemap,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Written returns the results of pages that were written
func (r *Report) Written() []Result {
	return r.filter(StatusWritten)
}

// Failed returns the results of inputs that failed
func (r *Report) Failed() []Result {
	return r.filter(StatusFailed)
}

// Skipped returns the results of inputs that do not exist
func (r *Report) Skipped() []Result {
	return r.filter(StatusSkipped)
}

// TotalBytes is the size of all written pages
func (r *Report) TotalBytes() int {
	total := 0
	for _, res := range r.Results {
		total += res.Bytes
	}
	return total
}

func (r *Report) filter(status Status) []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == status {
			out = append(out, res)
		}
	}
	return out
}
