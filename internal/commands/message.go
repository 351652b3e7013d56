package commands

import (
	"errors"
	"fmt"

	"github.com/alhinc/calcsales/internal/sales"
)

const unexpectedError = "an unexpected error occurred"

// Message renders err as the single line shown to the user. Non-numeric
// amounts and unclassified pipeline failures share one message; errors from
// outside the pipeline (flags, configuration) are shown as they are.
func Message(err error) string {
	var e *sales.Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	label := e.Label
	if label == "" {
		label = e.Table
	}

	switch e.Kind {
	case sales.KindFileNotFound:
		return fmt.Sprintf("%s definition file does not exist", label)
	case sales.KindInvalidFormat:
		if e.Table != "" {
			return fmt.Sprintf("%s definition file has an invalid format", label)
		}
		return fmt.Sprintf("%s has an invalid format", e.File)
	case sales.KindUnknownCode:
		return fmt.Sprintf("%s has an invalid %s code", e.File, label)
	case sales.KindNonSequentialFiles:
		return "sales file names are not sequential"
	case sales.KindOverflowLimitExceeded:
		var oe *sales.OverflowError
		if errors.As(err, &oe) {
			return fmt.Sprintf("total amount exceeded %d digits", oe.Digits)
		}
		return "total amount exceeded the digit limit"
	default:
		return unexpectedError
	}
}
