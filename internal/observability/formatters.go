// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/brand-content-generator/internal/types"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintBrandRequest outputs a human-readable summary of the validated request.
func (p *Printer) PrintBrandRequest(req *types.BrandRequest) {
	if req == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", req.CompanyName))
	sb.WriteString(fmt.Sprintf("Tone:     %s\n", req.Tone))
	sb.WriteString(fmt.Sprintf("Style:    %s\n", req.DesignStyle))
	sb.WriteString(fmt.Sprintf("Color:    %s\n", req.PrimaryColor))
	sb.WriteString("\n")
	sb.WriteString(req.BrandIdentity)

	p.printBox("Brand Request", sb.String())
}

// PrintEnvelope outputs a summary of a completed pipeline run.
func (p *Printer) PrintEnvelope(env *types.ResultEnvelope) {
	if env == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Status:   %s\n", env.Status))
	if env.LocalFile != nil {
		sb.WriteString(fmt.Sprintf("File:     %s (%d bytes)\n", env.LocalFile.Filename, env.LocalFile.Size))
	}
	if env.S3 != nil {
		sb.WriteString(fmt.Sprintf("S3 key:   %s\n", env.S3.Key))
		sb.WriteString(fmt.Sprintf("Expires:  %s\n", env.S3.URLExpiry.Format("2006-01-02 15:04:05 MST")))
	}
	if env.S3Error != "" {
		sb.WriteString(fmt.Sprintf("S3 error: %s\n", env.S3Error))
	}

	p.printBox("Pipeline Result", sb.String())
}

// PrintIssues outputs structural warnings from the HTML check.
func (p *Printer) PrintIssues(issues []string) {
	if len(issues) == 0 {
		return
	}
	p.printBox("HTML Warnings", strings.Join(issues, "\n"))
}
