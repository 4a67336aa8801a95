package esm

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ronanpaixao/SkyAlchemy/tes/esm/erecord"
	"github.com/ronanpaixao/SkyAlchemy/tes/refid"
)

func (d *Database) Get(recordType string, formID uint32) (erecord.Record, bool) {
	record, ok := d.records[recordType][formID]
	return record, ok
}

// Lookup finds a record of any type by form id; it makes the database the
// default table of a refid.Registry.
func (d *Database) Lookup(formID uint32) (refid.Object, bool) {
	record, ok := d.byFormID[formID]
	if !ok {
		return nil, false
	}
	return record, true
}

func (d *Database) Record(formID uint32) (erecord.Record, bool) {
	record, ok := d.byFormID[formID]
	return record, ok
}

func (d *Database) Types() []string {
	types := maps.Keys(d.records)
	slices.Sort(types)
	return types
}

// Records returns the records of one type ordered by form id.
func (d *Database) Records(recordType string) []erecord.Record {
	byID := d.records[recordType]
	ids := maps.Keys(byID)
	slices.Sort(ids)
	records := make([]erecord.Record, 0, len(ids))
	for _, id := range ids {
		records = append(records, byID[id])
	}
	return records
}

func (d *Database) Count(recordType string) int {
	return len(d.records[recordType])
}

func (d *Database) Len() int {
	total := 0
	for _, byID := range d.records {
		total += len(byID)
	}
	return total
}

func (d *Database) Plugins() []Plugin {
	return slices.Clone(d.plugins)
}

func (d *Database) Ingredient(formID uint32) (*erecord.Ingredient, bool) {
	record, ok := d.Get(erecord.TypeIngredient, formID)
	if !ok {
		return nil, false
	}
	ingredient, ok := record.(*erecord.Ingredient)
	return ingredient, ok
}

func (d *Database) MagicEffect(formID uint32) (*erecord.MagicEffect, bool) {
	record, ok := d.Get(erecord.TypeMagicEffect, formID)
	if !ok {
		return nil, false
	}
	mgef, ok := record.(*erecord.MagicEffect)
	return mgef, ok
}
