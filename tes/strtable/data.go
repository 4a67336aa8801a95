// Package strtable loads the localized string tables (.STRINGS, .DLSTRINGS,
// .ILSTRINGS) that lstring fields point into.
package strtable

type (
	Kind int
	// Table maps string ids to text. A nil *Table is a valid empty table.
	Table struct {
		strings map[uint32]string
	}
	entry struct {
		ID     uint32
		Offset uint32
	}
	ErrUnknownTableFile struct {
		Filename string
	}
)

const (
	KindStrings Kind = iota
	KindDLStrings
	KindILStrings
)

// directoryEntrySize is one (id, offset) pair.
const directoryEntrySize = 8

var kindByExtension = map[string]Kind{
	".strings":   KindStrings,
	".dlstrings": KindDLStrings,
	".ilstrings": KindILStrings,
}

func (k Kind) String() string {
	return [...]string{"STRINGS", "DLSTRINGS", "ILSTRINGS"}[k]
}
