package strtable

import (
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

// Encode writes t in the layout Decode reads, ids in ascending order.
func Encode(t *Table, kind Kind) []byte {
	ids := t.IDs()
	directory := make([][]byte, 0, len(ids)*2)
	var blob []byte
	for _, id := range ids {
		s, _ := t.Get(id)
		directory = append(directory, lbytes.EncodeUint32(id), lbytes.EncodeUint32(uint32(len(blob))))
		text := lbytes.EncodeZString(s)
		if kind != KindStrings {
			blob = append(blob, lbytes.EncodeUint32(uint32(len(text)))...)
		}
		blob = append(blob, text...)
	}
	return lbytes.Concat(
		lbytes.EncodeUint32(uint32(len(ids))),
		lbytes.EncodeUint32(uint32(len(blob))),
		lbytes.Concat(directory...),
		blob,
	)
}
