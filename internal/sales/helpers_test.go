package sales

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/alhinc/calcsales/internal/config"
	"github.com/alhinc/calcsales/internal/master"
	"github.com/alhinc/calcsales/internal/model"
)

func branchTable(t *testing.T, codes ...string) *master.Table {
	t.Helper()
	return newTable(t, config.Default().TableDefs()[0], codes...)
}

func commodityTable(t *testing.T, codes ...string) *master.Table {
	t.Helper()
	return newTable(t, config.BranchCommodity().TableDefs()[1], codes...)
}

func newTable(t *testing.T, def model.TableDef, codes ...string) *master.Table {
	t.Helper()
	entries := make([]model.MasterEntry, len(codes))
	for i, c := range codes {
		entries[i] = model.MasterEntry{Code: c, Name: "name-" + c}
	}
	return master.NewTable(def, entries)
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
