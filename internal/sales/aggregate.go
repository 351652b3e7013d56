package sales

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alhinc/calcsales/internal/master"
)

// Limit returns 10^digits, the exclusive ceiling for every total.
func Limit(digits int) decimal.Decimal {
	return decimal.New(1, int32(digits))
}

// Apply adds rec's amount to the total of each referenced code. If any new
// total would reach limit, no table is changed.
func Apply(tables []*master.Table, rec Record, limit decimal.Decimal) error {
	if len(rec.Codes) != len(tables) {
		return &Error{
			Kind: KindUnknown,
			File: rec.File,
			Err:  fmt.Errorf("record has %d codes for %d tables", len(rec.Codes), len(tables)),
		}
	}

	next := make([]decimal.Decimal, len(tables))
	for i, t := range tables {
		total := t.Sum(rec.Codes[i]).Add(rec.Amount)
		if total.GreaterThanOrEqual(limit) {
			def := t.Def()
			return &Error{
				Kind:  KindOverflowLimitExceeded,
				File:  rec.File,
				Table: def.Name,
				Label: def.Label,
				Err: &OverflowError{
					Code:   rec.Codes[i],
					Total:  total,
					Digits: len(limit.String()) - 1,
				},
			}
		}
		next[i] = total
	}

	for i, t := range tables {
		t.SetSum(rec.Codes[i], next[i])
	}
	return nil
}
