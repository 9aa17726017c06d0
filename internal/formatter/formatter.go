// package formatter renders employee records as CSV, Markdown, plain text, or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/desertthunder/emx/internal/models"
	"github.com/desertthunder/emx/internal/shared"
)

// Format names an export encoding.
type Format string

const (
	CSV      Format = "csv"
	Markdown Format = "markdown"
	Text     Format = "text"
	JSON     Format = "json"
)

// Formats lists every supported format in help order.
var Formats = []Format{CSV, Markdown, Text, JSON}

// ParseFormat accepts a format name or a common alias ("md", "txt").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, s)
	}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	switch f {
	case Markdown:
		return "md"
	case Text:
		return "txt"
	default:
		return string(f)
	}
}

var csvHeaders = []string{"ID", "Name", "Email", "Address", "Phone"}

// ExportToCSV converts employees to CSV with columns: ID, Name, Email, Address, Phone
func ExportToCSV(employees []models.Employee) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range employees {
		record := []string{e.IDString(), e.Name, e.Email, e.Address, e.Phone}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts employees to a Markdown document with a single table
func ExportToMarkdown(employees []models.Employee, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Employees"
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Count**: %d\n\n", len(employees))

	if len(employees) == 0 {
		buf.WriteString("_No employees found._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| ID | Name | Email | Address | Phone |\n")
	buf.WriteString("|---:|------|-------|---------|-------|\n")
	for _, e := range employees {
		fmt.Fprintf(&buf, "| %s | %s | %s | %s | %s |\n",
			e.IDString(), escapeCell(e.Name), escapeCell(e.Email), escapeCell(e.Address), escapeCell(e.Phone))
	}

	return buf.Bytes(), nil
}

// ExportToText converts employees to an aligned plain text table
func ExportToText(employees []models.Employee) ([]byte, error) {
	var buf bytes.Buffer

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(csvHeaders, "\t"))
	for _, e := range employees {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.IDString(), e.Name, e.Email, e.Address, e.Phone)
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to write text table: %w", err)
	}

	fmt.Fprintf(&buf, "\n%d employees\n", len(employees))
	return buf.Bytes(), nil
}

// ExportToJSON converts employees to indented JSON
func ExportToJSON(employees []models.Employee) ([]byte, error) {
	if employees == nil {
		employees = []models.Employee{}
	}
	return shared.MarshalJSON(employees, true)
}

// Export renders employees in the given format.
func Export(format Format, employees []models.Employee) ([]byte, error) {
	switch format {
	case CSV:
		return ExportToCSV(employees)
	case Markdown:
		return ExportToMarkdown(employees, "")
	case Text:
		return ExportToText(employees)
	case JSON:
		return ExportToJSON(employees)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}

// WriteExport renders employees and writes them to path, creating parent directories.
//
// Defaults to employees.{ext} in the working directory when path is empty.
func WriteExport(format Format, employees []models.Employee, path string) (string, error) {
	if path == "" {
		path = "employees." + format.Ext()
	}

	data, err := Export(format, employees)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return path, nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
