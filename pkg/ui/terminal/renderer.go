// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/pagesmith/pkg/errors"
	"github.com/arthur-debert/pagesmith/pkg/pipeline"
)

var (
	writtenStyle = pterm.NewStyle(pterm.FgGreen)
	failedStyle  = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	skippedStyle = pterm.NewStyle(pterm.FgGray)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"})
	summaryStyle = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}).
			PaddingLeft(4)
)

// Renderer provides rich terminal output
type Renderer struct {
	output    io.Writer
	errOutput io.Writer
}

// New creates a new terminal renderer
func New(output, errOutput io.Writer) *Renderer {
	return &Renderer{output: output, errOutput: errOutput}
}

// RenderReport prints one line per input with its status and size, followed
// by failure details and a summary line.
func (r *Renderer) RenderReport(report *pipeline.Report) error {
	var b strings.Builder

	for _, res := range report.Results {
		b.WriteString(renderResult(res))
		b.WriteString("\n")
	}

	if report.Sitemap != "" {
		fmt.Fprintf(&b, "%s %s\n", writtenStyle.Sprint(fmt.Sprintf("%-8s", "sitemap")), report.Sitemap)
	}

	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(summary(report)))
	b.WriteString("\n")

	_, err := io.WriteString(r.output, b.String())
	return err
}

func renderResult(res pipeline.Result) string {
	label := fmt.Sprintf("%-8s", res.Status)

	switch res.Status {
	case pipeline.StatusWritten:
		return fmt.Sprintf("%s %s %s",
			writtenStyle.Sprint(label),
			res.Output,
			mutedStyle.Render(fmt.Sprintf("(%s, %s)", humanize.Bytes(uint64(res.Bytes)), res.Duration.Round(time.Microsecond))))
	case pipeline.StatusFailed:
		return fmt.Sprintf("%s %s\n%s",
			failedStyle.Sprint(label),
			res.Input,
			errorStyle.Render(res.Error))
	default:
		return fmt.Sprintf("%s %s", skippedStyle.Sprint(label), mutedStyle.Render(res.Input))
	}
}

func summary(report *pipeline.Report) string {
	parts := []string{
		english.Plural(len(report.Written()), "page", "") + " written",
	}
	if n := len(report.Failed()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", n))
	}
	if n := len(report.Skipped()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", n))
	}
	return fmt.Sprintf("%s to %s (%s in %s)",
		strings.Join(parts, ", "),
		report.OutDir,
		humanize.Bytes(uint64(report.TotalBytes())),
		report.Duration.Round(time.Millisecond))
}

// RenderError renders an error with its code highlighted
func (r *Renderer) RenderError(err error) error {
	var line string
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		line = fmt.Sprintf("%s %s %v", pterm.Error.Prefix.Text, failedStyle.Sprint(code), err)
	} else {
		line = fmt.Sprintf("%s %v", pterm.Error.Prefix.Text, err)
	}
	if errors.IsFatal(err) {
		line += "\n" + mutedStyle.Render("No pages were built.")
	}
	_, err2 := fmt.Fprintln(r.errOutput, line)
	return err2
}

// RenderMessage renders a notice on the error output
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintf(r.errOutput, "%s %s\n", pterm.Info.Prefix.Text, mutedStyle.Render(msg))
	return err
}
