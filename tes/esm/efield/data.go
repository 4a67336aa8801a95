// Package efield splits a record payload into its tagged fields.
package efield

type (
	Field struct {
		Type string `json:"type"`
		Data []byte `json:"data"`
	}
	// ErrTruncatedField means the payload ended inside a field header or
	// before the declared field length was available.
	ErrTruncatedField struct {
		Type      string
		Offset    int64
		Declared  int64
		Available int64
	}
)

const (
	// TypeSizeOverride carries a uint32 length for the field after it, used
	// when a field is larger than a uint16 can describe.
	TypeSizeOverride = "XXXX"
	HeaderSize       = 6
)
