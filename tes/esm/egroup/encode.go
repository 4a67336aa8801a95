package egroup

import (
	"github.com/ronanpaixao/SkyAlchemy/tes/esm/erecord"
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

// EncodeGroup wraps already encoded children in a group whose Size is
// computed.
func EncodeGroup(group Group, children ...[]byte) []byte {
	body := lbytes.Concat(children...)
	group.Size = uint32(HeaderSize + len(body))
	return lbytes.Concat(
		[]byte(erecord.TypeGroup),
		lbytes.EncodeUint32(group.Size),
		[]byte(group.Label),
		lbytes.EncodeValueInt(group.GroupType),
		lbytes.EncodeUint16(group.Stamp),
		lbytes.EncodeUint16(group.Unknown1),
		lbytes.EncodeUint16(group.Version),
		lbytes.EncodeUint16(group.Unknown2),
		body,
	)
}
