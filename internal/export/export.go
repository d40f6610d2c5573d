package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"tasklist/internal/task"
)

const defaultTitle = "To-Do List"

var ErrUnknownFormat = errors.New("unknown export format")

var formats = []string{"json", "csv", "pdf"}

type Exporter struct {
	title string
}

func NewExporter(title string) *Exporter {
	if strings.TrimSpace(title) == "" {
		title = defaultTitle
	}
	return &Exporter{title: title}
}

// Formats lists the names accepted by Export.
func (e *Exporter) Formats() []string {
	return slices.Clone(formats)
}

// Export renders tasks as json, csv or pdf and returns the body with its
// content type.
func (e *Exporter) Export(tasks []task.Task, format string) ([]byte, string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		b, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return nil, "", err
		}
		return b, "application/json; charset=utf-8", nil
	case "csv":
		b, err := e.csv(tasks)
		if err != nil {
			return nil, "", err
		}
		return b, "text/csv; charset=utf-8", nil
	case "pdf":
		b, err := e.pdf(tasks)
		if err != nil {
			return nil, "", err
		}
		return b, "application/pdf", nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func (e *Exporter) csv(tasks []task.Task) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "text", "completed"})
	for _, t := range tasks {
		_ = w.Write([]string{string(t.ID), t.Text, strconv.FormatBool(t.Completed)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (e *Exporter) pdf(tasks []task.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, tr(e.title))
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		pdf.MultiCell(0, 6, "No tasks.", "0", "L", false)
	}
	for _, t := range tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		pdf.MultiCell(0, 6, tr(mark+" "+t.Text), "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
