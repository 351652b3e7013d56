package id

import (
	"fmt"
	"strconv"
	"strings"
)

// SeqDigits is the fixed width of the numeric part of a record file name.
const SeqDigits = 8

// ParseRecordName parses "00000001.rcd" into its sequence number. The name
// must be exactly SeqDigits ASCII digits, a dot and ext.
func ParseRecordName(name, ext string) (int, error) {
	base, ok := strings.CutSuffix(name, "."+ext)
	if !ok {
		return 0, fmt.Errorf("record name %q: missing .%s suffix", name, ext)
	}
	if len(base) != SeqDigits {
		return 0, fmt.Errorf("record name %q: expected %d digits, got %d characters", name, SeqDigits, len(base))
	}
	for i := 0; i < len(base); i++ {
		if base[i] < '0' || base[i] > '9' {
			return 0, fmt.Errorf("record name %q: non-digit %q", name, base[i])
		}
	}

	seq, err := strconv.Atoi(base)
	if err != nil {
		return 0, fmt.Errorf("invalid sequence in record name %q: %w", name, err)
	}
	return seq, nil
}
