package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/ronanpaixao/SkyAlchemy/config"
	"github.com/ronanpaixao/SkyAlchemy/tes/esm"
	"github.com/ronanpaixao/SkyAlchemy/tes/ess"
	"github.com/ronanpaixao/SkyAlchemy/tes/strtable"
)

type (
	// Hooks receive progress while loading; any of them may be nil.
	Hooks struct {
		OnPlugin   func(esm.Progress)
		OnSavegame func(ess.Progress)
	}
)

func LoadStrings(paths []string) (*strtable.Table, error) {
	table := strtable.New()
	for _, path := range paths {
		bs, err := os.ReadFile(path)
		if err != nil {
			err := errors.Wrapf(err, `cli.LoadStrings error reading "%s"`, path)
			return nil, err
		}
		loaded, err := strtable.DecodeFile(path, bs)
		if err != nil {
			err := errors.Wrap(err, "cli.LoadStrings error")
			return nil, err
		}
		table.Merge(loaded)
	}
	return table, nil
}

// LoadDatabase loads the configured string tables, then the configured
// plugins in order.
func LoadDatabase(settings config.Config, hooks Hooks) (*esm.Database, error) {
	walker, err := settings.WalkerOptions()
	if err != nil {
		return nil, err
	}
	table, err := LoadStrings(settings.Strings)
	if err != nil {
		return nil, err
	}
	options := esm.Options{
		Walker:     walker,
		Strings:    table,
		OnProgress: hooks.OnPlugin,
	}
	builder := esm.NewBuilder()
	for _, path := range settings.Plugins {
		bs, err := os.ReadFile(path)
		if err != nil {
			err := errors.Wrapf(err, `cli.LoadDatabase error reading "%s"`, path)
			return nil, err
		}
		if err := builder.LoadPlugin(filepath.Base(path), bs, options); err != nil {
			err := errors.Wrap(err, "cli.LoadDatabase error")
			return nil, err
		}
	}
	db := builder.Build()
	log.Debug().
		Int("plugins", len(settings.Plugins)).
		Int("records", db.Len()).
		Msg("database built")
	return db, nil
}

func LoadSavegame(settings config.Config, path string, hooks Hooks) (*ess.Document, error) {
	if !CheckExistence(path) {
		return nil, errors.Errorf(`savegame "%s" does not exist`, path)
	}
	db, err := LoadDatabase(settings, hooks)
	if err != nil {
		return nil, err
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		err := errors.Wrapf(err, `cli.LoadSavegame error reading "%s"`, path)
		return nil, err
	}
	doc, err := ess.Decode(bs, ess.Options{Defaults: db, OnProgress: hooks.OnSavegame})
	if err != nil {
		err := errors.Wrapf(err, `cli.LoadSavegame error decoding "%s"`, path)
		return nil, err
	}
	return doc, nil
}

func DumpPlugins(settings config.Config, types []string) (*orderedmap.OrderedMap, error) {
	db, err := LoadDatabase(settings, Hooks{})
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		types = db.Types()
	}
	records := orderedmap.New()
	for _, recordType := range types {
		records.Set(recordType, db.Records(recordType))
	}
	om := orderedmap.New()
	om.Set("plugins", db.Plugins())
	om.Set("records", records)
	return om, nil
}

func DumpStrings(paths []string) (*orderedmap.OrderedMap, error) {
	table, err := LoadStrings(paths)
	if err != nil {
		return nil, err
	}
	om := orderedmap.New()
	for _, id := range table.IDs() {
		s, _ := table.Get(id)
		om.Set(fmt.Sprintf("%08X", id), s)
	}
	return om, nil
}

func DumpSavegame(settings config.Config, path string, changeForms bool) (*orderedmap.OrderedMap, error) {
	doc, err := LoadSavegame(settings, path, Hooks{})
	if err != nil {
		return nil, err
	}
	om := orderedmap.New()
	om.Set("header", doc.Header)
	om.Set("form_version", doc.FormVersion)
	om.Set("plugins", doc.Plugins)
	om.Set("file_location_table", doc.FileLocationTable)
	om.Set("global_data", doc.GlobalData)
	om.Set("change_form_count", len(doc.ChangeForms))
	if changeForms {
		om.Set("change_forms", doc.ChangeForms)
	}
	om.Set("form_id_count", len(doc.FormIDs))
	om.Set("visited_worldspaces", doc.VisitedWorldspaces)
	om.Set("created_count", doc.Registry.CreatedCount())
	return om, nil
}

func inventoryReport(doc *ess.Document) *orderedmap.OrderedMap {
	ingredients := lo.Map(doc.PlayerIngredients(), func(stack ess.IngredientStack, _ int) *orderedmap.OrderedMap {
		om := orderedmap.New()
		om.Set("form_id", fmt.Sprintf("%08X", stack.Ingredient.FormID()))
		om.Set("name", stack.Ingredient.Name())
		om.Set("count", stack.Count)
		return om
	})
	om := orderedmap.New()
	om.Set("player", doc.Header.PlayerName)
	om.Set("level", doc.Header.PlayerLevel)
	om.Set("location", doc.Header.PlayerLocation)
	om.Set("inventory", ess.Summarize(doc.ResolveInventory()))
	om.Set("ingredients", ingredients)
	return om
}

func DumpInventory(settings config.Config, path string) (*orderedmap.OrderedMap, error) {
	doc, err := LoadSavegame(settings, path, Hooks{})
	if err != nil {
		return nil, err
	}
	return inventoryReport(doc), nil
}
