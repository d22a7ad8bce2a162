// Package export writes finished report runs as JSON, either to a writer
// or to a file the deck renderer picks up.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mkt-tools/pulse-report/pkg/services/report"
)

type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

// Handle writes the full run result as indented JSON.
func (c *Reporter) Handle(result *report.Result) error {
	enc := json.NewEncoder(c.writer)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode report run: %w", err)
	}
	return nil
}

// HandleFile writes only the report payload to path, the shape the deck
// renderer consumes.
func HandleFile(path string, result *report.Result) error {
	payload, err := json.MarshalIndent(result.Report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report payload: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
