package ess

import (
	"github.com/ronanpaixao/SkyAlchemy/tes/ess/sheader"
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

// Layout lists the already encoded parts of a savegame; Encode lays them
// out in file order and fills in the file location table.
type Layout struct {
	Header      sheader.Header
	Screenshot  []byte
	FormVersion uint8
	Plugins     []string
	// GlobalData1, GlobalData2 and GlobalData3 hold encoded blocks.
	GlobalData1        [][]byte
	GlobalData2        [][]byte
	GlobalData3        [][]byte
	ChangeForms        [][]byte
	FormIDs            []uint32
	VisitedWorldspaces []uint32
	UnknownTable3      []byte
}

func encodeUint32Array(values []uint32) []byte {
	bs := lbytes.EncodeUint32(uint32(len(values)))
	for _, value := range values {
		bs = append(bs, lbytes.EncodeUint32(value)...)
	}
	return bs
}

func (l Layout) Encode() []byte {
	prefix := lbytes.Concat(
		[]byte(sheader.Magic),
		sheader.EncodeHeader(l.Header),
		l.Screenshot,
		lbytes.EncodeUint8(l.FormVersion),
		sheader.EncodePlugins(l.Plugins...),
	)
	table := sheader.FileLocationTable{
		GlobalDataTable1Count: uint32(len(l.GlobalData1)),
		GlobalDataTable2Count: uint32(len(l.GlobalData2)),
		GlobalDataTable3Count: uint32(len(l.GlobalData3)),
		ChangeFormCount:       uint32(len(l.ChangeForms)),
	}
	body := []byte{}
	offset := func() uint32 {
		return uint32(len(prefix) + sheader.FileLocationTableSize + len(body))
	}

	table.GlobalDataTable1Offset = offset()
	body = append(body, lbytes.Concat(l.GlobalData1...)...)
	table.GlobalDataTable2Offset = offset()
	body = append(body, lbytes.Concat(l.GlobalData2...)...)
	table.ChangeFormsOffset = offset()
	body = append(body, lbytes.Concat(l.ChangeForms...)...)
	table.GlobalDataTable3Offset = offset()
	body = append(body, lbytes.Concat(l.GlobalData3...)...)
	table.FormIDArrayCountOffset = offset()
	body = append(body, encodeUint32Array(l.FormIDs)...)
	body = append(body, encodeUint32Array(l.VisitedWorldspaces)...)
	table.UnknownTable3Offset = offset()
	body = append(body, lbytes.EncodeUint32(uint32(len(l.UnknownTable3)))...)
	body = append(body, l.UnknownTable3...)

	return lbytes.Concat(prefix, table.Encode(), body)
}
