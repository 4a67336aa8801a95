package esm

import (
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ronanpaixao/SkyAlchemy/tes/esm/egroup"
	"github.com/ronanpaixao/SkyAlchemy/tes/esm/erecord"
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

func NewBuilder() *Builder {
	return &Builder{records: recordsByType{}}
}

func (r recordsByType) insert(record erecord.Record) {
	recordType := record.RecordHeader().Type
	byID, ok := r[recordType]
	if !ok {
		byID = map[uint32]erecord.Record{}
		r[recordType] = byID
	}
	byID[record.FormID()] = record
}

// Insert adds one record; a record with the same type and form id replaces
// the earlier one.
func (b *Builder) Insert(record erecord.Record) error {
	if b.built {
		return ErrBuilderClosed{}
	}
	b.records.insert(record)
	return nil
}

// LoadPlugin decodes one plugin file and merges its records. Nothing is
// merged when decoding fails.
func (b *Builder) LoadPlugin(name string, bs []byte, options Options) error {
	if b.built {
		return ErrBuilderClosed{}
	}
	staged, plugin, err := decodePlugin(name, bs, options)
	if err != nil {
		err := errors.Wrapf(err, `esm.LoadPlugin error decoding "%s"`, name)
		return err
	}
	for _, byID := range staged {
		for _, record := range byID {
			b.records.insert(record)
		}
	}
	b.plugins = append(b.plugins, *plugin)
	log.Debug().
		Str("plugin", name).
		Int("records", plugin.Records).
		Int("skipped", plugin.Skipped).
		Msg("plugin loaded")
	return nil
}

func decodePlugin(name string, bs []byte, options Options) (recordsByType, *Plugin, error) {
	reader := lbytes.NewBytesReader(bs)
	walkerOptions := options.Walker
	walkerOptions.Context = erecord.Context{Strings: options.Strings}
	walker := egroup.NewWalker(reader, walkerOptions)

	staged := recordsByType{}
	plugin := Plugin{Name: name}
	// records of one file are merged in file order, so a later duplicate
	// inside the same file still wins
	order := make([]erecord.Record, 0, 1024)
	items := 0
	report := func() {
		if options.OnProgress != nil {
			options.OnProgress(Progress{
				Plugin:  name,
				Offset:  reader.Offset(),
				Size:    reader.Size(),
				Records: len(order),
			})
		}
	}
	for {
		item, err := walker.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		items++
		if items%ProgressInterval == 0 {
			report()
		}
		if item.Record == nil {
			continue
		}
		if header, ok := item.Record.(*erecord.PluginHeader); ok {
			plugin.Header = header
			walker.SetContext(erecord.Context{
				Strings:   options.Strings,
				Localized: header.RecordHeader().Flags.Has(erecord.FlagLocalized),
			})
			continue
		}
		order = append(order, item.Record)
	}
	for _, record := range order {
		staged.insert(record)
	}
	plugin.Records = len(order)
	plugin.Skipped = walker.Skipped()
	report()
	return staged, &plugin, nil
}

// Build links every effect to its magic effect record and freezes the
// database. The builder cannot be used afterwards.
func (b *Builder) Build() *Database {
	b.built = true
	db := &Database{
		records:  b.records,
		byFormID: map[uint32]erecord.Record{},
		plugins:  b.plugins,
	}
	magicEffects := db.records[erecord.TypeMagicEffect]
	types := maps.Keys(db.records)
	slices.Sort(types)
	linked := 0
	for _, recordType := range types {
		for formID, record := range db.records[recordType] {
			db.byFormID[formID] = record
			carrier, ok := record.(erecord.EffectCarrier)
			if !ok {
				continue
			}
			effects := carrier.EffectList()
			for i := range effects {
				mgef, ok := magicEffects[effects[i].EffectID].(*erecord.MagicEffect)
				if ok {
					effects[i].MagicEffect = mgef
					linked++
				}
			}
		}
	}
	log.Debug().
		Int("records", len(db.byFormID)).
		Int("linked_effects", linked).
		Msg("plugin database built")
	return db
}

// Load builds a database out of a single plugin file.
func Load(name string, bs []byte, options Options) (*Database, error) {
	builder := NewBuilder()
	if err := builder.LoadPlugin(name, bs, options); err != nil {
		return nil, err
	}
	return builder.Build(), nil
}
