package lbytes

// ReadKind reads one primitive chosen at run time. lstrings are resolved
// through lookup, which may be nil.
func (b *Reader) ReadKind(kind Kind, lookup StringLookup) (any, error) {
	type ReadFunc func() (any, error)
	dispatchMap := map[Kind]ReadFunc{
		KindBool:     func() (any, error) { return b.ReadBool() },
		KindInt8:     func() (any, error) { return b.ReadInt8() },
		KindUint8:    func() (any, error) { return b.ReadUint8() },
		KindInt16:    func() (any, error) { return b.ReadInt16() },
		KindUint16:   func() (any, error) { return b.ReadUint16() },
		KindInt32:    func() (any, error) { return b.ReadInt() },
		KindUint32:   func() (any, error) { return b.ReadUint32() },
		KindUint64:   func() (any, error) { return b.ReadUint64() },
		KindFloat32:  func() (any, error) { return b.ReadFloat32() },
		KindWString:  func() (any, error) { return b.ReadWString() },
		KindZString:  func() (any, error) { return b.ReadZString() },
		KindFiletime: func() (any, error) { return b.ReadFiletime() },
		KindVsval:    func() (any, error) { return b.ReadVsval() },
		KindLString: func() (any, error) {
			_, s, err := b.ReadLString(lookup)
			return s, err
		},
	}
	readFunc, ok := dispatchMap[kind]
	if !ok {
		return nil, ErrMalformedPrimitive{
			Kind:   kind,
			Offset: b.Offset(),
			Reason: "unknown primitive kind",
		}
	}
	return readFunc()
}
