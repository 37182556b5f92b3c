// Package export writes the extracted conversation table to disk formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/MikeSquared-Agency/donor/internal/chatgpt"
)

type Format string

const (
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatParquet:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json, csv or parquet)", s)
	}
}

// Write renders records to w in the given format.
func Write(w io.Writer, format Format, records []chatgpt.Record) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatCSV:
		return writeCSV(w, records)
	case FormatParquet:
		if err := parquet.Write(w, records); err != nil {
			return fmt.Errorf("write parquet: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func writeJSON(w io.Writer, records []chatgpt.Record) error {
	if records == nil {
		records = []chatgpt.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// CSV carries is_first as the strings "true"/"false", which is what the
// sample selector accepts back from a donation layer that stringifies.
func writeCSV(w io.Writer, records []chatgpt.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(chatgpt.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.ConversationTitle,
			r.Role,
			r.Message,
			r.Model,
			r.Time,
			r.ConversationID,
			strconv.FormatBool(r.IsFirst),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
