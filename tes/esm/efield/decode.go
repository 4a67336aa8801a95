package efield

import (
	"github.com/pkg/errors"

	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

// DecodeFields reads fields until payload is exactly consumed. XXXX fields
// are folded into the length of the field that follows them and are not
// returned.
func DecodeFields(payload []byte) ([]Field, error) {
	reader := lbytes.NewBytesReader(payload)
	fields := make([]Field, 0, 8)
	override := int64(-1)
	for reader.Remaining() > 0 {
		offset := reader.Offset()
		if reader.Remaining() < HeaderSize {
			return nil, ErrTruncatedField{
				Offset:    offset,
				Declared:  HeaderSize,
				Available: reader.Remaining(),
			}
		}
		fieldType, err := reader.ReadTag()
		if err != nil {
			err := errors.Wrap(err, "efield.DecodeFields error reading type")
			return nil, err
		}
		size16, err := reader.ReadUint16()
		if err != nil {
			err := errors.Wrap(err, "efield.DecodeFields error reading size")
			return nil, err
		}
		size := int64(size16)
		if override >= 0 {
			size = override
			override = -1
		}
		if size > reader.Remaining() {
			return nil, ErrTruncatedField{
				Type:      fieldType,
				Offset:    offset,
				Declared:  size,
				Available: reader.Remaining(),
			}
		}
		data, err := reader.ReadBytes(int(size))
		if err != nil {
			err := errors.Wrapf(err, `efield.DecodeFields error reading "%s" data`, fieldType)
			return nil, err
		}
		if fieldType == TypeSizeOverride && len(data) == 4 {
			// four bytes are present, the read cannot fail
			value, _ := lbytes.NewBytesReader(data).ReadUint32()
			override = int64(value)
			continue
		}
		fields = append(fields, Field{Type: fieldType, Data: data})
	}
	return fields, nil
}

// Reader gives a cursor over the field payload.
func (f Field) Reader() *lbytes.Reader {
	return lbytes.NewBytesReader(f.Data)
}
