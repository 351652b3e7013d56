package sales

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/alhinc/calcsales/internal/master"
)

var amountPattern = regexp.MustCompile(`^[0-9]+$`)

// Record is the validated content of one record file.
type Record struct {
	File   string
	Codes  []string // one per table, in table order
	Amount decimal.Decimal
}

// Validate checks a record file's lines against tables: one code per table in
// table order, then the amount. It does not modify the tables.
func Validate(file string, lines []string, tables []*master.Table) (Record, error) {
	want := len(tables) + 1
	if len(lines) != want {
		return Record{}, &Error{
			Kind: KindInvalidFormat,
			File: file,
			Err:  fmt.Errorf("expected %d lines, got %d", want, len(lines)),
		}
	}

	codes := make([]string, len(tables))
	for i, t := range tables {
		code := lines[i]
		if !t.Exists(code) {
			def := t.Def()
			return Record{}, &Error{
				Kind:  KindUnknownCode,
				File:  file,
				Table: def.Name,
				Label: def.Label,
				Err:   fmt.Errorf("unknown %s code %q", def.Name, code),
			}
		}
		codes[i] = code
	}

	raw := lines[len(tables)]
	if !amountPattern.MatchString(raw) {
		return Record{}, &Error{
			Kind: KindNonNumericAmount,
			Err:  fmt.Errorf("amount %q in %s is not a non-negative integer", raw, file),
		}
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return Record{}, &Error{
			Kind: KindNonNumericAmount,
			Err:  fmt.Errorf("parsing amount %q in %s: %w", raw, file, err),
		}
	}

	return Record{File: file, Codes: codes, Amount: amount}, nil
}
