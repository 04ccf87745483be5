// package formatter renders report tables to the supported output formats (plain text, CSV, Markdown, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fathomlabs/churnlens/internal/reports"
	"github.com/fathomlabs/churnlens/internal/shared"
)

// Supported output formats.
const (
	FormatTable    = "table"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatTable:
		return FormatTable, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, name)
	}
}

// Render converts a report table to the named format.
func Render(table *reports.Table, format string) ([]byte, error) {
	switch format {
	case FormatTable:
		return ExportToText(table)
	case FormatCSV:
		return ExportToCSV(table)
	case FormatMarkdown:
		return ExportToMarkdown(table)
	case FormatJSON:
		return ExportToJSON(table)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// ExportToCSV converts a report table to CSV with the column names as the header row
func ExportToCSV(table *reports.Table) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(table.Columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a report table to a Markdown document with a pipe table
func ExportToMarkdown(table *reports.Table) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", table.Title))
	buf.WriteString(fmt.Sprintf("**Rows**: %d\n\n", len(table.Rows)))

	buf.WriteString("| " + strings.Join(table.Columns, " | ") + " |\n")

	separators := make([]string, len(table.Columns))
	for i := range separators {
		separators[i] = "---"
	}
	buf.WriteString("| " + strings.Join(separators, " | ") + " |\n")

	for _, row := range table.Rows {
		buf.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a report table to plain text with space-aligned columns
func ExportToText(table *reports.Table) ([]byte, error) {
	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = len(col)
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("%s\n", table.Title))
	buf.WriteString(fmt.Sprintf("Rows: %d\n\n", len(table.Rows)))

	writeRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		buf.WriteString(strings.TrimRight(strings.Join(parts, "  "), " ") + "\n")
	}

	writeRow(table.Columns)
	for _, row := range table.Rows {
		writeRow(row)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a report table to indented JSON, one object per row
// keyed by column name.
func ExportToJSON(table *reports.Table) ([]byte, error) {
	type document struct {
		Slug  string              `json:"slug"`
		Title string              `json:"title"`
		Rows  []map[string]string `json:"rows"`
	}

	doc := document{Slug: table.Slug, Title: table.Title, Rows: []map[string]string{}}
	for _, row := range table.Rows {
		obj := make(map[string]string, len(table.Columns))
		for i, col := range table.Columns {
			if i < len(row) {
				obj[col] = row[i]
			}
		}
		doc.Rows = append(doc.Rows, obj)
	}

	return shared.MarshalJSON(doc, true)
}

// extensions maps each format to its file extension.
var extensions = map[string]string{
	FormatTable:    ".txt",
	FormatCSV:      ".csv",
	FormatMarkdown: ".md",
	FormatJSON:     ".json",
}

// WriteExport renders a report table and writes it under outputDir as
// {slug}{ext}, creating the directory as needed. Returns the written path.
func WriteExport(table *reports.Table, format, outputDir string) (string, error) {
	data, err := Render(table, format)
	if err != nil {
		return "", err
	}

	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(outputDir, table.Slug+extensions[format])
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}
