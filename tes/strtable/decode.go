package strtable

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

func KindFromFilename(filename string) (Kind, error) {
	kind, ok := kindByExtension[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return 0, ErrUnknownTableFile{Filename: filename}
	}
	return kind, nil
}

// Decode reads a whole string table file:
//
//	count uint32, dataSize uint32, count * (id uint32, offset uint32), blob
//
// .STRINGS offsets point at a zstring; the other kinds point at a uint32
// length that precedes the zstring.
func Decode(bs []byte, kind Kind) (*Table, error) {
	reader := lbytes.NewBytesReader(bs)
	count, err := reader.ReadUint32()
	if err != nil {
		err := errors.Wrap(err, "strtable.Decode error reading count")
		return nil, err
	}
	dataSize, err := reader.ReadUint32()
	if err != nil {
		err := errors.Wrap(err, "strtable.Decode error reading data size")
		return nil, err
	}

	entries := make([]entry, 0, reader.Capacity(count, directoryEntrySize))
	for i := uint32(0); i < count; i++ {
		id, err := reader.ReadUint32()
		if err != nil {
			err := errors.Wrapf(err, "strtable.Decode error reading directory entry %d", i)
			return nil, err
		}
		offset, err := reader.ReadUint32()
		if err != nil {
			err := errors.Wrapf(err, "strtable.Decode error reading directory entry %d", i)
			return nil, err
		}
		entries = append(entries, entry{ID: id, Offset: offset})
	}

	blob, err := reader.Sub(int(dataSize))
	if err != nil {
		err := errors.Wrap(err, "strtable.Decode error reading string data")
		return nil, err
	}
	if err := reader.ExpectEnd("strtable.Decode"); err != nil {
		return nil, err
	}

	skip := int64(0)
	if kind != KindStrings {
		skip = 4
	}
	table := &Table{strings: make(map[uint32]string, len(entries))}
	for _, e := range entries {
		if err := blob.SeekTo(int64(e.Offset) + skip); err != nil {
			err := errors.Wrapf(err, "strtable.Decode error seeking string 0x%08x", e.ID)
			return nil, err
		}
		s, err := blob.ReadZString()
		if err != nil {
			err := errors.Wrapf(err, "strtable.Decode error reading string 0x%08x", e.ID)
			return nil, err
		}
		table.strings[e.ID] = s
	}

	log.Debug().
		Str("kind", kind.String()).
		Int("strings", table.Len()).
		Msg("string table decoded")
	return table, nil
}

// DecodeFile picks the table kind from filename.
func DecodeFile(filename string, bs []byte) (*Table, error) {
	kind, err := KindFromFilename(filename)
	if err != nil {
		return nil, err
	}
	table, err := Decode(bs, kind)
	if err != nil {
		err := errors.Wrapf(err, `strtable.DecodeFile error decoding "%s"`, filename)
		return nil, err
	}
	return table, nil
}
