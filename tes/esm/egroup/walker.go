package egroup

import (
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/ronanpaixao/SkyAlchemy/ds"
	"github.com/ronanpaixao/SkyAlchemy/tes/esm/erecord"
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

func NewWalker(reader *lbytes.Reader, options Options) *Walker {
	return &Walker{
		reader:  reader,
		options: options,
		labels: lo.SliceToMap(options.Labels, func(label string) (string, struct{}) {
			return label, struct{}{}
		}),
		ends: ds.NewStack[int64](),
	}
}

// ReadGroupHeader reads the 20 bytes following a GRUP tag that started at
// offset.
func ReadGroupHeader(reader *lbytes.Reader, offset int64) (*Group, error) {
	group := Group{Offset: offset}
	err := error(nil)
	if group.Size, err = reader.ReadUint32(); err != nil {
		return nil, errors.Wrap(err, "egroup.ReadGroupHeader error reading size")
	}
	if group.Label, err = reader.ReadString(4); err != nil {
		return nil, errors.Wrap(err, "egroup.ReadGroupHeader error reading label")
	}
	if group.GroupType, err = reader.ReadInt(); err != nil {
		return nil, errors.Wrap(err, "egroup.ReadGroupHeader error reading group type")
	}
	for _, target := range []*uint16{&group.Stamp, &group.Unknown1, &group.Version, &group.Unknown2} {
		if *target, err = reader.ReadUint16(); err != nil {
			return nil, errors.Wrap(err, "egroup.ReadGroupHeader error")
		}
	}
	if group.Size < HeaderSize {
		return nil, lbytes.ErrMalformedPrimitive{
			Kind:   lbytes.KindUint32,
			Offset: offset + 4,
			Reason: "group size smaller than its header",
		}
	}
	return &group, nil
}

// End is the absolute offset right after the group.
func (g Group) End() int64 {
	return g.Offset + int64(g.Size)
}

// SetContext changes how the following records interpret their fields, used
// once the plugin header tells whether the file is localized.
func (w *Walker) SetContext(ctx erecord.Context) {
	w.options.Context = ctx
}

func (w *Walker) Depth() int {
	return w.ends.Len()
}

// Skipped counts the unknown records passed over so far.
func (w *Walker) Skipped() int {
	return w.skipped
}

// closeGroups pops every group the cursor has reached the end of.
func (w *Walker) closeGroups() error {
	for {
		end, ok := w.ends.Peek()
		if !ok || w.reader.Offset() < end {
			return nil
		}
		w.ends.Pop()
		if w.reader.Offset() != end {
			return lbytes.ErrTrailingDataMismatch{
				Caller:   "egroup.Walker",
				Expected: end,
				Actual:   w.reader.Offset(),
			}
		}
	}
}

// Next returns the next item of the walk, or io.EOF once the data is
// exhausted.
func (w *Walker) Next() (Item, error) {
	for {
		if err := w.closeGroups(); err != nil {
			return Item{}, err
		}
		if w.reader.Remaining() == 0 {
			if end, ok := w.ends.Peek(); ok {
				return Item{}, lbytes.ErrTrailingDataMismatch{
					Caller:   "egroup.Walker",
					Expected: end,
					Actual:   w.reader.Offset(),
				}
			}
			return Item{}, io.EOF
		}

		offset := w.reader.Offset()
		tag, err := w.reader.ReadTag()
		if err != nil {
			err := errors.Wrap(err, "egroup.Walker.Next error reading tag")
			return Item{}, err
		}

		if tag == erecord.TypeGroup {
			return w.enterGroup(offset)
		}

		if erecord.IsKnown(tag) {
			record, err := erecord.Decode(w.reader, tag, w.options.Context)
			if err != nil {
				err := errors.Wrap(err, "egroup.Walker.Next error")
				return Item{}, err
			}
			return Item{Record: record, Depth: w.Depth()}, nil
		}

		policy := w.options.TopLevel
		if w.Depth() > 0 {
			policy = w.options.Nested
		}
		if policy == PolicyFail {
			return Item{}, erecord.ErrUnknownRecordType{Type: tag, Offset: offset}
		}
		header, err := erecord.Skip(w.reader, tag)
		if err != nil {
			err := errors.Wrap(err, "egroup.Walker.Next error")
			return Item{}, err
		}
		w.skipped++
		log.Debug().
			Str("type", tag).
			Uint32("form_id", header.FormID).
			Int64("offset", offset).
			Msg("skipped unknown record")
	}
}

func (w *Walker) enterGroup(offset int64) (Item, error) {
	group, err := ReadGroupHeader(w.reader, offset)
	if err != nil {
		err := errors.Wrap(err, "egroup.Walker.Next error")
		return Item{}, err
	}
	if group.End() > w.reader.Size() {
		return Item{}, lbytes.ErrTrailingDataMismatch{
			Caller:   "egroup.Walker",
			Expected: group.End(),
			Actual:   w.reader.Size(),
		}
	}
	depth := w.Depth()
	if _, ok := w.labels[group.Label]; ok {
		w.ends.Push(group.End())
		log.Debug().Str("label", group.Label).Int64("offset", offset).Msg("descending into group")
		return Item{Group: group, Descended: true, Depth: depth}, nil
	}
	if err := w.reader.SeekTo(group.End()); err != nil {
		err := errors.Wrap(err, "egroup.Walker.Next error skipping group")
		return Item{}, err
	}
	return Item{Group: group, Depth: depth}, nil
}
