// Package refid decodes the three-byte savegame identifiers and resolves them
// against the tables a savegame and its plugins provide.
package refid

type (
	Namespace uint8
	// RefID is a 22-bit value qualified by the table it refers to.
	RefID struct {
		Namespace Namespace
		Value     uint32
	}
	// Object is anything an identifier can resolve to: plugin records and
	// objects created in-game.
	Object interface {
		Name() string
	}
	// Table is a read-only form id lookup, usually a plugin database.
	Table interface {
		Lookup(formID uint32) (Object, bool)
	}
	Registry struct {
		defaults  Table
		created   map[uint32]Object
		formIndex map[uint32]Object
		phase     phase
	}
	phase int
)

const (
	NamespaceFormIndex = Namespace(0)
	NamespaceDefault   = Namespace(1)
	NamespaceCreated   = Namespace(2)
	NamespaceUnknown   = Namespace(3)
)

const (
	phaseCreated phase = iota
	phaseIndexed
	phaseFrozen
)

const (
	// UnknownName is what an identifier resolves to when no table knows it.
	UnknownName = "Unknown"
	MaxValue    = 0x3FFFFF
	// Size is the encoded width of a RefID.
	Size = 3
	// CreatedMask selects the created-object part of a full 0xFF-prefixed form id.
	CreatedMask = 0x3FFFFF
	// CreatedPrefix is the load-order byte of in-game created forms.
	CreatedPrefix = 0xFF
)

var namespaceTags = map[Namespace]string{
	NamespaceFormIndex: "F",
	NamespaceDefault:   "D",
	NamespaceCreated:   "C",
	NamespaceUnknown:   "U",
}

var phaseNames = map[phase]string{
	phaseCreated: "registering created objects",
	phaseIndexed: "form ids indexed",
	phaseFrozen:  "frozen",
}
