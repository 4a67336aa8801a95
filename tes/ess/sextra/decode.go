package sextra

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
	"github.com/ronanpaixao/SkyAlchemy/tes/refid"
)

// Decode reads a vsval-counted block of entries.
func Decode(reader *lbytes.Reader) (Block, error) {
	count, err := reader.ReadVsval()
	if err != nil {
		err := errors.Wrap(err, "sextra.Decode error reading count")
		return Block{}, err
	}
	entries := make([]Entry, 0, reader.Capacity(count, 1))
	for i := uint32(0); i < count; i++ {
		entry, err := DecodeEntry(reader)
		if err != nil {
			err := errors.Wrapf(err, "sextra.Decode error reading entry %d of %d", i, count)
			return Block{}, err
		}
		entries = append(entries, entry)
	}
	return Block{Entries: entries}, nil
}

func DecodeEntry(reader *lbytes.Reader) (Entry, error) {
	offset := reader.Offset()
	value, err := reader.ReadUint8()
	if err != nil {
		err := errors.Wrap(err, "sextra.DecodeEntry error reading type")
		return Entry{}, err
	}
	dataType := DataType(value)
	if _, ok := typeNames[dataType]; !ok {
		return Entry{}, ErrUnknownExtraDataType{
			Type:   value,
			Offset: offset,
		}
	}
	decode, ok := layouts[dataType]
	if !ok {
		return Entry{}, ErrUnsupportedExtraDataType{
			Type:   dataType,
			Offset: offset,
			Reason: "layout is not decoded",
		}
	}
	payload, err := decode(reader)
	if err != nil {
		err := errors.Wrapf(err, `sextra.DecodeEntry error reading "%s"`, dataType)
		return Entry{}, err
	}
	return Entry{
		Type:    dataType,
		Name:    dataType.String(),
		Offset:  offset,
		Payload: payload,
	}, nil
}

// SupportedTypes lists the entry types with a decoded layout, sorted.
func SupportedTypes() []DataType {
	types := maps.Keys(layouts)
	slices.Sort(types)
	return types
}

// UnsupportedTypes lists the named entry types without a layout, sorted.
func UnsupportedTypes() []DataType {
	types := lo.Filter(maps.Keys(typeNames), func(dataType DataType, _ int) bool {
		_, ok := layouts[dataType]
		return !ok
	})
	slices.Sort(types)
	return types
}

// Find returns the first entry of the given type.
func (b Block) Find(dataType DataType) (Entry, bool) {
	return lo.Find(b.Entries, func(entry Entry) bool {
		return entry.Type == dataType
	})
}

// RefID reads an identifier-valued payload key.
func (e Entry) RefID(key string) (refid.RefID, bool) {
	if e.Payload == nil {
		return refid.RefID{}, false
	}
	value, ok := e.Payload.Get(key)
	if !ok {
		return refid.RefID{}, false
	}
	ref, ok := value.(refid.RefID)
	return ref, ok
}
