package refid

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

// Decode reads the packed form: the top two bits of the first byte are the
// namespace, the rest of it and the following big-endian uint16 the value.
func Decode(bs [3]byte) RefID {
	first := bs[0]
	rest := uint32(bs[1])<<8 | uint32(bs[2])
	return RefID{
		Namespace: Namespace(first >> 6),
		Value:     uint32(first&0x3F)<<16 | rest,
	}
}

func Read(reader *lbytes.Reader) (RefID, error) {
	bs, err := reader.ReadBytes(Size)
	if err != nil {
		err := errors.Wrap(err, "refid.Read error")
		return RefID{}, err
	}
	return Decode([3]byte{bs[0], bs[1], bs[2]}), nil
}

func (r RefID) Encode() []byte {
	return []byte{
		byte(r.Namespace&0b11)<<6 | byte(r.Value>>16)&0x3F,
		byte(r.Value >> 8),
		byte(r.Value),
	}
}

// Tag is the one-letter namespace name: F, D, C or U.
func (r RefID) Tag() string {
	return namespaceTags[r.Namespace&0b11]
}

func (r RefID) IsZero() bool {
	return r.Value == 0
}

func (r RefID) String() string {
	return fmt.Sprintf("%s:%08X", r.Tag(), r.Value)
}

func (r RefID) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// IsCreatedFormID tells whether a full 32-bit form id belongs to an object
// created in-game.
func IsCreatedFormID(formID uint32) bool {
	return formID>>24 == CreatedPrefix
}
