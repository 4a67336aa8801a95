package ess

import (
	"github.com/samber/lo"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ronanpaixao/SkyAlchemy/tes/esm/erecord"
	"github.com/ronanpaixao/SkyAlchemy/tes/ess/schange"
	"github.com/ronanpaixao/SkyAlchemy/tes/ess/sglobal"
)

// Player returns the change form of the player actor.
func (d *Document) Player() (schange.ChangeForm, bool) {
	return lo.Find(d.ChangeForms, func(cf schange.ChangeForm) bool {
		return cf.IsPlayer()
	})
}

// PlayerInventory is empty when the savegame has no player change form.
func (d *Document) PlayerInventory() []schange.InventoryItem {
	player, ok := d.Player()
	if !ok {
		return nil
	}
	return player.Inventory
}

// GlobalDataBlock returns the first global data block of type t.
func (d *Document) GlobalDataBlock(t sglobal.Type) (sglobal.Block, bool) {
	return lo.Find(d.GlobalData, func(block sglobal.Block) bool {
		return block.Type == t
	})
}

func (d *Document) MiscStats() (sglobal.MiscStats, bool) {
	block, ok := d.GlobalDataBlock(sglobal.TypeMiscStats)
	if !ok {
		return sglobal.MiscStats{}, false
	}
	stats, ok := block.Payload.(sglobal.MiscStats)
	return stats, ok
}

func (d *Document) CreatedObjects() (sglobal.CreatedObjects, bool) {
	block, ok := d.GlobalDataBlock(sglobal.TypeCreatedObjects)
	if !ok {
		return sglobal.CreatedObjects{}, false
	}
	created, ok := block.Payload.(sglobal.CreatedObjects)
	return created, ok
}

// ResolveInventory resolves the player inventory through the registry.
// Unresolved items are kept with the unknown name.
func (d *Document) ResolveInventory() []InventoryEntry {
	return lo.Map(d.PlayerInventory(), func(item schange.InventoryItem, _ int) InventoryEntry {
		entry := InventoryEntry{
			Item:  item.Item,
			Name:  d.Registry.ResolveName(item.Item),
			Type:  UnresolvedType,
			Count: item.Count,
		}
		object, ok := d.Registry.Resolve(item.Item)
		if !ok {
			return entry
		}
		entry.Object = object
		switch o := object.(type) {
		case erecord.Record:
			entry.Type = o.RecordHeader().Type
		case sglobal.Enchantment:
			entry.Type = CreatedType
		}
		return entry
	})
}

// PlayerIngredients sums the carried stacks of each ingredient. Stacks that
// add up to nothing are dropped.
func (d *Document) PlayerIngredients() []IngredientStack {
	ingredients := lo.FilterMap(d.ResolveInventory(), func(entry InventoryEntry, _ int) (IngredientStack, bool) {
		ingredient, ok := entry.Object.(*erecord.Ingredient)
		return IngredientStack{Ingredient: ingredient, Count: entry.Count}, ok
	})
	byFormID := lo.GroupBy(ingredients, func(stack IngredientStack) uint32 {
		return stack.Ingredient.FormID()
	})
	formIDs := maps.Keys(byFormID)
	slices.Sort(formIDs)

	stacks := make([]IngredientStack, 0, len(formIDs))
	for _, formID := range formIDs {
		group := byFormID[formID]
		count := lo.SumBy(group, func(stack IngredientStack) int32 {
			return stack.Count
		})
		if count <= 0 {
			continue
		}
		stacks = append(stacks, IngredientStack{Ingredient: group[0].Ingredient, Count: count})
	}
	return stacks
}

// Summarize groups entries by record type, ordered by type, with the total
// count, weight and value of each group.
func Summarize(entries []InventoryEntry) []Summary {
	byType := lo.GroupBy(entries, func(entry InventoryEntry) string {
		return entry.Type
	})
	types := maps.Keys(byType)
	slices.Sort(types)
	return lo.Map(types, func(recordType string, _ int) Summary {
		group := byType[recordType]
		summary := Summary{
			Type:    recordType,
			Entries: group,
			Count: lo.SumBy(group, func(entry InventoryEntry) int32 {
				return entry.Count
			}),
		}
		for _, entry := range group {
			item, ok := entry.Object.(erecord.Item)
			if !ok || entry.Count <= 0 {
				continue
			}
			summary.Weight += item.ItemWeight() * float32(entry.Count)
			summary.Value += item.BaseValue() * uint32(entry.Count)
		}
		return summary
	})
}
