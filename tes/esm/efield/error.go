package efield

import (
	"fmt"
)

func (r ErrTruncatedField) Error() string {
	if r.Type == "" {
		return fmt.Sprintf(
			"truncated field header at offset %d: %d bytes left, need %d",
			r.Offset, r.Available, r.Declared,
		)
	}
	return fmt.Sprintf(
		`truncated field "%s" at offset %d: declared %d bytes, %d available`,
		r.Type, r.Offset, r.Declared, r.Available,
	)
}
