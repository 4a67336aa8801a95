package sheader

import (
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

// EncodeHeader writes the header block with its size prefix.
func EncodeHeader(h Header) []byte {
	block := lbytes.Concat(
		lbytes.EncodeUint32(h.Version),
		lbytes.EncodeUint32(h.SaveNumber),
		lbytes.EncodeWString(h.PlayerName),
		lbytes.EncodeUint32(h.PlayerLevel),
		lbytes.EncodeWString(h.PlayerLocation),
		lbytes.EncodeWString(h.GameDate),
		lbytes.EncodeWString(h.PlayerRaceEditorID),
		lbytes.EncodeUint16(uint16(h.PlayerSex)),
		lbytes.EncodeFloat32(h.PlayerCurExp),
		lbytes.EncodeFloat32(h.PlayerLvlUpExp),
		lbytes.EncodeFiletime(h.Filetime),
		lbytes.EncodeUint32(h.ShotWidth),
		lbytes.EncodeUint32(h.ShotHeight),
	)
	return lbytes.Concat(lbytes.EncodeUint32(uint32(len(block))), block)
}

// EncodePlugins writes the plugin list with its size prefix.
func EncodePlugins(plugins ...string) []byte {
	block := lbytes.EncodeUint8(uint8(len(plugins)))
	for _, plugin := range plugins {
		block = append(block, lbytes.EncodeWString(plugin)...)
	}
	return lbytes.Concat(lbytes.EncodeUint32(uint32(len(block))), block)
}

func (t FileLocationTable) Encode() []byte {
	bs := lbytes.Concat(
		lbytes.EncodeUint32(t.FormIDArrayCountOffset),
		lbytes.EncodeUint32(t.UnknownTable3Offset),
		lbytes.EncodeUint32(t.GlobalDataTable1Offset),
		lbytes.EncodeUint32(t.GlobalDataTable2Offset),
		lbytes.EncodeUint32(t.ChangeFormsOffset),
		lbytes.EncodeUint32(t.GlobalDataTable3Offset),
		lbytes.EncodeUint32(t.GlobalDataTable1Count),
		lbytes.EncodeUint32(t.GlobalDataTable2Count),
		lbytes.EncodeUint32(t.GlobalDataTable3Count),
		lbytes.EncodeUint32(t.ChangeFormCount),
	)
	return append(bs, make([]byte, ReservedWords*4)...)
}
