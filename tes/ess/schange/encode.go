package schange

import (
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
	"github.com/ronanpaixao/SkyAlchemy/tes/refid"
)

// EncodeChangeForm writes the header and payload of cf, deflating the
// payload when compress is set. Length fields use the narrowest width that
// fits.
func EncodeChangeForm(cf ChangeForm, compress bool) []byte {
	payload := cf.Data
	length1 := uint32(len(payload))
	length2 := uint32(0)
	if compress {
		payload = lbytes.Deflate(cf.Data)
		length1 = uint32(len(payload))
		length2 = uint32(len(cf.Data))
	}

	width := uint8(0)
	largest := length1
	if length2 > largest {
		largest = length2
	}
	switch {
	case largest > 0xFFFF:
		width = 2
	case largest > 0xFF:
		width = 1
	}
	encodeLength := func(value uint32) []byte {
		switch width {
		case 0:
			return lbytes.EncodeUint8(uint8(value))
		case 1:
			return lbytes.EncodeUint16(uint16(value))
		}
		return lbytes.EncodeUint32(value)
	}

	return lbytes.Concat(
		cf.RefID.Encode(),
		lbytes.EncodeUint32(uint32(cf.Flags)),
		lbytes.EncodeUint8(width<<6|uint8(cf.Type)&FormTypeMask),
		lbytes.EncodeUint8(cf.Version),
		encodeLength(length1),
		encodeLength(length2),
		payload,
	)
}

// EncodeInventory writes items without extra data.
func EncodeInventory(items ...InventoryItem) []byte {
	bs := lbytes.MustEncodeVsval(uint32(len(items)))
	for _, item := range items {
		bs = append(bs, EncodeInventoryItem(item.Item, item.Count)...)
	}
	return bs
}

func EncodeInventoryItem(item refid.RefID, count int32) []byte {
	return lbytes.Concat(
		item.Encode(),
		lbytes.EncodeValueInt(count),
		lbytes.MustEncodeVsval(0),
	)
}
