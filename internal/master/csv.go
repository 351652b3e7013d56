package master

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/alhinc/calcsales/internal/model"
)

// ErrInvalidFormat marks a master line that is not "code,name" or whose code
// does not match the table's pattern.
var ErrInvalidFormat = errors.New("invalid master file format")

const (
	numFields = 2
	colCode   = 0
	colName   = 1

	// maxLineSize bounds a single master line.
	maxLineSize = 1 << 20
)

// CompilePattern compiles a code pattern so that it must match the whole code.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("compiling code pattern %q: %w", pattern, err)
	}
	return re, nil
}

// ReadEntries reads master lines in file order. Blank lines are skipped.
// Fields are split on every comma; quotes have no special meaning.
func ReadEntries(r io.Reader, pattern *regexp.Regexp) ([]model.MasterEntry, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)

	var entries []model.MasterEntry
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if text == "" {
			continue
		}

		entry, err := UnmarshalEntry(SplitFields(text), pattern)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading master file: %w", err)
	}
	return entries, nil
}

// SplitFields splits a line on commas and drops trailing empty fields, so
// "001,Tokyo," has two fields and "001," has one.
func SplitFields(line string) []string {
	fields := strings.Split(line, ",")
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

// UnmarshalEntry converts a "code,name" row to a MasterEntry.
func UnmarshalEntry(record []string, pattern *regexp.Regexp) (model.MasterEntry, error) {
	if len(record) != numFields {
		return model.MasterEntry{}, fmt.Errorf("%w: expected %d fields, got %d", ErrInvalidFormat, numFields, len(record))
	}
	if !pattern.MatchString(record[colCode]) {
		return model.MasterEntry{}, fmt.Errorf("%w: code %q does not match %s", ErrInvalidFormat, record[colCode], pattern)
	}
	return model.MasterEntry{Code: record[colCode], Name: record[colName]}, nil
}

// WriteTotals writes one "code,name,total" line per entry of t, in master
// file order. Names are written exactly as read.
func WriteTotals(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	for i, e := range t.Entries() {
		if _, err := fmt.Fprintf(bw, "%s,%s,%s\n", e.Code, e.Name, t.Sum(e.Code).String()); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	return bw.Flush()
}
