package sales

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind classifies a failed run. Every kind aborts the whole run.
type Kind int

const (
	KindUnknown Kind = iota
	KindFileNotFound
	KindInvalidFormat
	KindUnknownCode
	KindNonSequentialFiles
	KindOverflowLimitExceeded
	KindNonNumericAmount
)

var kindNames = map[Kind]string{
	KindUnknown:               "unknown",
	KindFileNotFound:          "file_not_found",
	KindInvalidFormat:         "invalid_format",
	KindUnknownCode:           "unknown_code",
	KindNonSequentialFiles:    "non_sequential_files",
	KindOverflowLimitExceeded: "overflow_limit_exceeded",
	KindNonNumericAmount:      "non_numeric_amount",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified pipeline failure.
type Error struct {
	Kind  Kind
	File  string // master or record file the failure is reported against
	Table string // table name, for master and code failures
	Label string // table label, for messages
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Table != "" {
		fmt.Fprintf(&b, " [%s]", e.Table)
	}
	if e.File != "" {
		fmt.Fprintf(&b, " %s", e.File)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// OverflowError carries the total that would have reached the limit.
type OverflowError struct {
	Code   string
	Total  decimal.Decimal
	Digits int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("total for %s would be %s, exceeding %d digits", e.Code, e.Total, e.Digits)
}

// KindOf returns the kind of err. Errors that are not *Error are KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
