package master

import (
	"fmt"
	"io/fs"

	"github.com/shopspring/decimal"

	"github.com/alhinc/calcsales/internal/model"
)

// Table is a master code list with a running total per code.
type Table struct {
	def        model.TableDef
	entries    []model.MasterEntry
	index      map[string]int
	sums       []decimal.Decimal
	duplicates []string
}

// NewTable creates a Table with every total at zero. A repeated code keeps its
// first position and takes the later name.
func NewTable(def model.TableDef, entries []model.MasterEntry) *Table {
	t := &Table{
		def:   def,
		index: make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if i, ok := t.index[e.Code]; ok {
			t.entries[i].Name = e.Name
			t.duplicates = append(t.duplicates, e.Code)
			continue
		}
		t.index[e.Code] = len(t.entries)
		t.entries = append(t.entries, e)
		t.sums = append(t.sums, decimal.Zero)
	}
	return t
}

// Load reads def.MasterFile from fsys and returns a Table.
func Load(fsys fs.FS, def model.TableDef) (*Table, error) {
	pattern, err := CompilePattern(def.CodePattern)
	if err != nil {
		return nil, err
	}

	f, err := fsys.Open(def.MasterFile)
	if err != nil {
		return nil, fmt.Errorf("opening %s master: %w", def.Name, err)
	}
	defer f.Close()

	entries, err := ReadEntries(f, pattern)
	if err != nil {
		return nil, fmt.Errorf("reading %s master: %w", def.Name, err)
	}
	return NewTable(def, entries), nil
}

// Def returns the table's definition.
func (t *Table) Def() model.TableDef {
	return t.def
}

// Entries returns all entries in master file order.
func (t *Table) Entries() []model.MasterEntry {
	return t.entries
}

// Len returns the number of distinct codes.
func (t *Table) Len() int {
	return len(t.entries)
}

// Exists reports whether code is in the table.
func (t *Table) Exists(code string) bool {
	_, ok := t.index[code]
	return ok
}

// Sum returns the running total for code, zero if code is unknown.
func (t *Table) Sum(code string) decimal.Decimal {
	i, ok := t.index[code]
	if !ok {
		return decimal.Zero
	}
	return t.sums[i]
}

// SetSum replaces the running total for code. It reports false for an unknown code.
func (t *Table) SetSum(code string, sum decimal.Decimal) bool {
	i, ok := t.index[code]
	if !ok {
		return false
	}
	t.sums[i] = sum
	return true
}

// Duplicates returns codes that appeared more than once in the master file.
func (t *Table) Duplicates() []string {
	return t.duplicates
}
