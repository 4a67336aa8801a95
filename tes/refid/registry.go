package refid

import (
	"github.com/rs/zerolog/log"
)

// NewRegistry creates the per-savegame registry. defaults may be nil, in
// which case only created objects resolve.
func NewRegistry(defaults Table) *Registry {
	return &Registry{
		defaults:  defaults,
		created:   map[uint32]Object{},
		formIndex: map[uint32]Object{},
		phase:     phaseCreated,
	}
}

func (r *Registry) errFrozen(operation string) error {
	return ErrRegistryFrozen{
		Operation: operation,
		Phase:     phaseNames[r.phase],
	}
}

// RegisterCreated records an object created in-game under its 22-bit value.
func (r *Registry) RegisterCreated(ref RefID, object Object) error {
	if r.phase != phaseCreated {
		return r.errFrozen("register created object")
	}
	r.created[ref.Value] = object
	return nil
}

// IndexFormIDs fills the form index table from the savegame form id array:
// position i (1-based) resolves through the default table, then through the
// created table. Entries neither knows stay unresolved.
func (r *Registry) IndexFormIDs(formIDs []uint32) error {
	if r.phase != phaseCreated {
		return r.errFrozen("index form ids")
	}
	for i, formID := range formIDs {
		object, ok := r.LookupFormID(formID)
		if !ok {
			continue
		}
		r.formIndex[uint32(i+1)] = object
	}
	r.phase = phaseIndexed
	log.Debug().
		Int("form_ids", len(formIDs)).
		Int("resolved", len(r.formIndex)).
		Int("created", len(r.created)).
		Msg("registry indexed")
	return nil
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.phase = phaseFrozen
}

func (r *Registry) Frozen() bool {
	return r.phase == phaseFrozen
}

// LookupFormID resolves a full 32-bit form id: default table first, then the
// created table for 0xFF-prefixed ids.
func (r *Registry) LookupFormID(formID uint32) (Object, bool) {
	if r.defaults != nil {
		if object, ok := r.defaults.Lookup(formID); ok {
			return object, true
		}
	}
	if IsCreatedFormID(formID) {
		object, ok := r.created[formID&CreatedMask]
		return object, ok
	}
	object, ok := r.created[formID]
	return object, ok
}

func (r *Registry) Resolve(ref RefID) (Object, bool) {
	switch ref.Namespace {
	case NamespaceFormIndex:
		object, ok := r.formIndex[ref.Value]
		return object, ok
	case NamespaceDefault:
		if r.defaults == nil {
			return nil, false
		}
		return r.defaults.Lookup(ref.Value)
	case NamespaceCreated:
		object, ok := r.created[ref.Value]
		return object, ok
	}
	return nil, false
}

// ResolveName never fails: unresolved identifiers are named UnknownName.
func (r *Registry) ResolveName(ref RefID) string {
	object, ok := r.Resolve(ref)
	if !ok || object == nil {
		return UnknownName
	}
	return object.Name()
}

func (r *Registry) CreatedCount() int {
	return len(r.created)
}
