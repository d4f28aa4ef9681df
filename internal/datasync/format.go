package datasync

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/memorizer/internal/memory"
	"github.com/at-ishikawa/memorizer/internal/term"
)

// Format is a file format of exported terms.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

var ErrUnsupportedFormat = errors.New("unsupported format")

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// Write encodes records in the format.
func Write(w io.Writer, format Format, records []Record) error {
	switch format {
	case FormatYAML:
		return writeYAML(w, records)
	case FormatXLSX:
		return writeXLSX(w, records)
	}
	return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}

// Read decodes records in the format.
func Read(r io.Reader, format Format) ([]Record, error) {
	switch format {
	case FormatYAML:
		return readYAML(r)
	case FormatXLSX:
		return readXLSX(r)
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
}

func writeYAML(w io.Writer, records []Record) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(Document{Terms: records}); err != nil {
		return fmt.Errorf("encoder.Encode() > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoder.Close() > %w", err)
	}
	return nil
}

func readYAML(r io.Reader) ([]Record, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoder.Decode() > %w", err)
	}
	return doc.Terms, nil
}

// Spreadsheet columns. Tags are one per line; videos are one per line as url|start|end.
var xlsxHeader = []string{"term", "note", "look_up", "pronounce", "tags", "videos", "level", "suspend_until", "created_at"}

func writeXLSX(w io.Writer, records []Record) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("f.SetSheetRow(header) > %w", err)
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("excelize.CoordinatesToCellName() > %w", err)
		}
		row := xlsxRow(r)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("f.SetSheetRow(%s) > %w", cell, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("f.Write() > %w", err)
	}
	return nil
}

func xlsxRow(r Record) []string {
	videos := make([]string, 0, len(r.Videos))
	for _, v := range r.Videos {
		videos = append(videos, strings.Join([]string{v.URL, v.Start, v.End}, "|"))
	}
	level := ""
	if r.Level != 0 {
		level = r.Level.String()
	}
	return []string{
		r.Term,
		r.Note,
		r.LookUp,
		r.Pronounce,
		strings.Join(r.Tags, "\n"),
		strings.Join(videos, "\n"),
		level,
		formatTime(r.SuspendUntil),
		formatTime(r.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func readXLSX(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenReader() > %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("f.GetRows(%s) > %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["term"]; !ok {
		return nil, fmt.Errorf("sheet %s has no term column", sheets[0])
	}

	var records []Record
	for i, row := range rows[1:] {
		cell := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}

		record, err := parseRow(cell)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func parseRow(cell func(name string) string) (Record, error) {
	record := Record{
		Term:      cell("term"),
		Note:      cell("note"),
		LookUp:    cell("look_up"),
		Pronounce: cell("pronounce"),
		Tags:      splitLines(cell("tags")),
	}
	for _, line := range splitLines(cell("videos")) {
		parts := strings.SplitN(line, "|", 3)
		for len(parts) < 3 {
			parts = append(parts, "")
		}
		record.Videos = append(record.Videos, term.Video{URL: parts[0], Start: parts[1], End: parts[2]})
	}

	var err error
	if s := cell("level"); s != "" {
		if record.Level, err = memory.ParseLevel(s); err != nil {
			return Record{}, fmt.Errorf("memory.ParseLevel() > %w", err)
		}
	}
	if record.SuspendUntil, err = parseTime(cell("suspend_until")); err != nil {
		return Record{}, fmt.Errorf("suspend_until: %w", err)
	}
	if record.CreatedAt, err = parseTime(cell("created_at")); err != nil {
		return Record{}, fmt.Errorf("created_at: %w", err)
	}
	return record, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("time.Parse(%s) > %w", s, err)
	}
	return t.UTC(), nil
}

func splitLines(s string) []string {
	var lines []string
	for line := range strings.SplitSeq(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
