package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alhinc/calcsales/internal/master"
)

func TestValidate_Branch(t *testing.T) {
	tables := []*master.Table{branchTable(t, "001", "002")}

	rec, err := Validate("00000001.rcd", []string{"001", "1000"}, tables)
	require.NoError(t, err)
	assert.Equal(t, "00000001.rcd", rec.File)
	assert.Equal(t, []string{"001"}, rec.Codes)
	assert.Equal(t, "1000", rec.Amount.String())
}

func TestValidate_BranchCommodity(t *testing.T) {
	tables := []*master.Table{
		branchTable(t, "001"),
		commodityTable(t, "SFT00001"),
	}

	rec, err := Validate("00000001.rcd", []string{"001", "SFT00001", "250"}, tables)
	require.NoError(t, err)
	assert.Equal(t, []string{"001", "SFT00001"}, rec.Codes)
	assert.Equal(t, "250", rec.Amount.String())
}

func TestValidate_LineCount(t *testing.T) {
	tables := []*master.Table{branchTable(t, "001")}

	for _, lines := range [][]string{
		nil,
		{"001"},
		{"001", "1000", "extra"},
		{"001", "", "1000"},
	} {
		_, err := Validate("00000002.rcd", lines, tables)
		require.Error(t, err)
		assert.Equal(t, KindInvalidFormat, KindOf(err))

		var e *Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, "00000002.rcd", e.File)
	}
}

func TestValidate_UnknownCode(t *testing.T) {
	tables := []*master.Table{branchTable(t, "001", "002", "003", "004", "005")}

	_, err := Validate("00000003.rcd", []string{"999", "100"}, tables)
	require.Error(t, err)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindUnknownCode, e.Kind)
	assert.Equal(t, "00000003.rcd", e.File)
	assert.Equal(t, "branch", e.Table)
}

func TestValidate_UnknownCode_FirstTableWins(t *testing.T) {
	tables := []*master.Table{
		branchTable(t, "001"),
		commodityTable(t, "SFT00001"),
	}

	_, err := Validate("00000001.rcd", []string{"999", "NOPE0000", "1"}, tables)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "branch", e.Table)

	_, err = Validate("00000001.rcd", []string{"001", "NOPE0000", "1"}, tables)
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindUnknownCode, e.Kind)
	assert.Equal(t, "commodity", e.Table)
}

func TestValidate_UnknownCodeBeforeAmount(t *testing.T) {
	tables := []*master.Table{branchTable(t, "001")}

	_, err := Validate("00000001.rcd", []string{"999", "abc"}, tables)
	assert.Equal(t, KindUnknownCode, KindOf(err))
}

func TestValidate_NonNumericAmount(t *testing.T) {
	tables := []*master.Table{branchTable(t, "001")}

	for _, amount := range []string{"", "abc", "-100", "+100", "10.5", " 100", "100 ", "1,000", "１００"} {
		_, err := Validate("00000001.rcd", []string{"001", amount}, tables)
		require.Error(t, err, "amount %q", amount)

		var e *Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, KindNonNumericAmount, e.Kind, "amount %q", amount)
		assert.Empty(t, e.File, "amount failures are not reported against a file")
	}
}

func TestValidate_LargeAmount(t *testing.T) {
	tables := []*master.Table{branchTable(t, "001")}

	rec, err := Validate("00000001.rcd", []string{"001", "123456789012345678901234567890"}, tables)
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", rec.Amount.String())
}

func TestValidate_LeadingZeros(t *testing.T) {
	tables := []*master.Table{branchTable(t, "001")}

	rec, err := Validate("00000001.rcd", []string{"001", "000500"}, tables)
	require.NoError(t, err)
	assert.Equal(t, "500", rec.Amount.String())
}

func TestValidate_DoesNotMutate(t *testing.T) {
	table := branchTable(t, "001")

	_, err := Validate("00000001.rcd", []string{"001", "1000"}, []*master.Table{table})
	require.NoError(t, err)
	assert.True(t, table.Sum("001").IsZero())
}
