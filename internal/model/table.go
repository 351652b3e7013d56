package model

// TableDef describes one master table. Its position in the configured table
// list is the line number of its code in every record file.
type TableDef struct {
	Name        string // "branch", "commodity"
	Label       string // human-readable name used in messages
	MasterFile  string
	OutputFile  string
	CodePattern string // regular expression a code must fully match
}

// MasterEntry is one line of a master file.
type MasterEntry struct {
	Code string
	Name string
}
