// Package ess decodes Skyrim savegames (.ess) into a Document and resolves
// the player inventory against a plugin database.
package ess

import (
	"github.com/ronanpaixao/SkyAlchemy/tes/esm/erecord"
	"github.com/ronanpaixao/SkyAlchemy/tes/ess/schange"
	"github.com/ronanpaixao/SkyAlchemy/tes/ess/sglobal"
	"github.com/ronanpaixao/SkyAlchemy/tes/ess/sheader"
	"github.com/ronanpaixao/SkyAlchemy/tes/refid"
)

type (
	// Document is a decoded savegame. It is not modified after Decode
	// returns.
	Document struct {
		Header             sheader.Header            `json:"header"`
		Screenshot         []byte                    `json:"-"`
		FormVersion        uint8                     `json:"form_version"`
		Plugins            []string                  `json:"plugins"`
		FileLocationTable  sheader.FileLocationTable `json:"file_location_table"`
		GlobalData         []sglobal.Block           `json:"global_data"`
		ChangeForms        []schange.ChangeForm      `json:"change_forms"`
		FormIDs            []uint32                  `json:"form_ids"`
		VisitedWorldspaces []uint32                  `json:"visited_worldspaces"`
		UnknownTable3Size  uint32                    `json:"unknown_table3_size"`
		// Registry resolves identifiers found in this savegame. It is
		// frozen.
		Registry *refid.Registry `json:"-"`
	}
	Options struct {
		// Defaults resolves default-namespace identifiers, usually an
		// *esm.Database; may be nil.
		Defaults refid.Table
		// OnProgress, when set, is called after each stage and every
		// ProgressInterval change forms.
		OnProgress func(Progress)
	}
	Progress struct {
		Stage  Stage
		Offset int64
		Size   int64
		Done   int
		Total  int
	}
	Stage string

	// InventoryEntry is an inventory item with its identifier resolved.
	InventoryEntry struct {
		Item  refid.RefID `json:"item"`
		Name  string      `json:"name"`
		Type  string      `json:"type"`
		Count int32       `json:"count"`
		// Object is nil when the identifier did not resolve.
		Object refid.Object `json:"-"`
	}
	IngredientStack struct {
		Ingredient *erecord.Ingredient `json:"ingredient"`
		Count      int32               `json:"count"`
	}
	// Summary groups inventory entries of one record type.
	Summary struct {
		Type    string           `json:"type"`
		Entries []InventoryEntry `json:"entries"`
		Count   int32            `json:"count"`
		Weight  float32          `json:"weight"`
		Value   uint32           `json:"value"`
	}

	ErrBadMagic           = sheader.ErrBadMagic
	ErrUnsupportedVersion = sheader.ErrUnsupportedVersion
)

const (
	StageHeader       = Stage("header")
	StageGlobalData1  = Stage("global data 1")
	StageGlobalData2  = Stage("global data 2")
	StageChangeForms  = Stage("change forms")
	StageGlobalData3  = Stage("global data 3")
	StageFormIDs      = Stage("form ids")
	StageUnknownTable = Stage("unknown table 3")
	StageDone         = Stage("done")
)

const (
	ProgressInterval = 1000
	// UnresolvedType is the summary type of identifiers no table knows.
	UnresolvedType = "????"
	// CreatedType is the summary type of objects created in-game.
	CreatedType = "CREATED"
)
