package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yairfalse/kulut/pkg/types"
)

// Format selects a rendering style.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat maps a user-supplied format name, defaulting to table.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	case "markdown", "md":
		return FormatMarkdown
	default:
		return FormatTable
	}
}

// Renderer formats the core's data structures for humans and scripts.
// It consumes plain data only; no diffing or aggregation happens here.
type Renderer struct {
	noColor bool
}

// NewRenderer creates a renderer.
func NewRenderer(noColor bool) *Renderer {
	return &Renderer{noColor: noColor}
}

// RenderChangeReport formats a change report.
func (r *Renderer) RenderChangeReport(report *types.ChangeReport, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return marshalJSON(report)
	case FormatYAML:
		return marshalYAML(report)
	case FormatMarkdown:
		return r.changeReportMarkdown(report), nil
	default:
		return r.changeReportTable(report), nil
	}
}

// RenderSummary formats a snapshot summary.
func (r *Renderer) RenderSummary(summary *types.Summary, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return marshalJSON(summary)
	case FormatYAML:
		return marshalYAML(summary)
	case FormatMarkdown:
		return r.summaryMarkdown(summary), nil
	default:
		return r.summaryTable(summary), nil
	}
}

// RenderResourceTrend formats a resource-count trend series.
func (r *Renderer) RenderResourceTrend(trend *types.ResourceCountTrend, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return marshalJSON(trend)
	case FormatYAML:
		return marshalYAML(trend)
	default:
		return r.resourceTrendText(trend), nil
	}
}

// RenderCostTrend formats a cost trend series.
func (r *Renderer) RenderCostTrend(trend *types.CostTrend, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return marshalJSON(trend)
	case FormatYAML:
		return marshalYAML(trend)
	default:
		return r.costTrendText(trend), nil
	}
}

// WriteOutput sends rendered bytes to a file, or stdout for "" / "-".
func WriteOutput(data []byte, outputPath string) error {
	if outputPath == "" || outputPath == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return nil
}

// WriteTo writes rendered bytes to an arbitrary writer.
func WriteTo(data []byte, w io.Writer) error {
	_, err := w.Write(data)
	return err
}
