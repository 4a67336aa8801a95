// Package lbytes holds the little-endian primitive codec shared by plugin
// files, string tables and savegames.
package lbytes

import (
	"bytes"
)

type (
	Reader struct {
		bytes.Reader
		// size is kept since bytes.Reader only exposes the unread length
		size int64
	}
	Instruction struct {
		Key          string
		ReadFunction ReadFunction
	}
	ReadFunction func() (any, error)
	// StringLookup resolves lstring ids; *strtable.Table satisfies it.
	StringLookup interface {
		Get(id uint32) (string, bool)
	}
	Kind string
)

const (
	KindBool     = Kind("bool")
	KindInt8     = Kind("int8")
	KindUint8    = Kind("uint8")
	KindInt16    = Kind("int16")
	KindUint16   = Kind("uint16")
	KindInt32    = Kind("int32")
	KindUint32   = Kind("uint32")
	KindUint64   = Kind("uint64")
	KindFloat32  = Kind("float32")
	KindWString  = Kind("wstring")
	KindZString  = Kind("zstring")
	KindLString  = Kind("lstring")
	KindFiletime = Kind("filetime")
	KindVsval    = Kind("vsval")
	KindBytes    = Kind("bytes")
)

const (
	// UnknownString is what an lstring id resolves to when no table knows it.
	UnknownString = "Unknown string"
	// MaxVsval is the largest value the three-byte vsval form can hold.
	MaxVsval = 0x3FFFFF
)
