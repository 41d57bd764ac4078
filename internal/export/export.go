package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jobtrack/internal/records"
)

// Format selects the snapshot file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatTXT  Format = "txt"
)

// ParseFormat validates a raw format string from user input.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatTXT:
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want json, csv, or txt)", raw)
	}
}

// csvHeader is the exported column set. The id column is deliberately
// omitted: exports are for humans and spreadsheets, not for re-import.
var csvHeader = []string{"company", "position", "date", "country", "state", "status", "link", "description", "comments"}

// Filename returns the timestamped snapshot name for the given format.
func Filename(format Format, now time.Time) string {
	return fmt.Sprintf("job_applications_%s.%s", now.Format("20060102_150405"), format)
}

// Write renders the record set in the given format and writes it to a
// timestamped file under dir. It returns the full path of the written file.
func Write(dir string, format Format, recs []records.Record, now time.Time) (string, error) {
	data, err := Render(format, recs)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, Filename(format, now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// Render produces the snapshot bytes for the given format.
func Render(format Format, recs []records.Record) ([]byte, error) {
	switch format {
	case FormatJSON:
		return records.EncodeRecords(recs)
	case FormatCSV:
		return renderCSV(recs)
	case FormatTXT:
		return renderTXT(recs), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func renderCSV(recs []records.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, rec := range recs {
		row := []string{
			rec.Company,
			rec.Position,
			rec.AppliedDate.String(),
			rec.Country,
			rec.State,
			string(rec.Status),
			rec.Link,
			rec.Description,
			rec.Comments,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderTXT(recs []records.Record) []byte {
	separator := strings.Repeat("-", 50)

	var b strings.Builder
	b.WriteString("Job Applications\n")
	b.WriteString(separator)
	b.WriteString("\n\n")

	for _, rec := range recs {
		fmt.Fprintf(&b, "Company: %s\n", rec.Company)
		fmt.Fprintf(&b, "Position: %s\n", rec.Position)
		fmt.Fprintf(&b, "Date Applied: %s\n", rec.AppliedDate)
		fmt.Fprintf(&b, "Status: %s\n", rec.Status.Display())
		if location := rec.Location(); location != "" {
			fmt.Fprintf(&b, "Location: %s\n", location)
		}
		if rec.Link != "" {
			fmt.Fprintf(&b, "Link: %s\n", rec.Link)
		}
		if rec.Description != "" {
			fmt.Fprintf(&b, "Description: %s\n", rec.Description)
		}
		if rec.Comments != "" {
			fmt.Fprintf(&b, "Comments: %s\n", rec.Comments)
		}
		b.WriteString(separator)
		b.WriteString("\n\n")
	}

	return []byte(b.String())
}
