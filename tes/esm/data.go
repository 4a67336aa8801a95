// Package esm builds the plugin database from ESM/ESP files: record type to
// form id to typed record.
package esm

import (
	"github.com/ronanpaixao/SkyAlchemy/tes/esm/egroup"
	"github.com/ronanpaixao/SkyAlchemy/tes/esm/erecord"
	"github.com/ronanpaixao/SkyAlchemy/tes/strtable"
)

type (
	recordsByType map[string]map[uint32]erecord.Record
	// Database is read-only once built and safe for concurrent readers.
	Database struct {
		records  recordsByType
		byFormID map[uint32]erecord.Record
		plugins  []Plugin
	}
	Builder struct {
		records recordsByType
		plugins []Plugin
		built   bool
	}
	Plugin struct {
		Name    string                `json:"name"`
		Header  *erecord.PluginHeader `json:"header"`
		Records int                   `json:"records"`
		Skipped int                   `json:"skipped"`
	}
	Options struct {
		Walker egroup.Options
		// Strings resolves lstring ids of localized plugins; may be nil.
		Strings *strtable.Table
		// OnProgress, when set, is called every ProgressInterval items and
		// once at the end of each file.
		OnProgress func(Progress)
	}
	Progress struct {
		Plugin  string
		Offset  int64
		Size    int64
		Records int
	}
	ErrBuilderClosed struct{}
)

const ProgressInterval = 512

func DefaultOptions() Options {
	return Options{
		Walker: egroup.DefaultOptions(),
	}
}

func (r ErrBuilderClosed) Error() string {
	return "esm.Builder: already built"
}
