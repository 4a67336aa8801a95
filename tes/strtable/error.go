package strtable

import (
	"fmt"
)

func (r ErrUnknownTableFile) Error() string {
	return fmt.Sprintf(`"%s" is not a .STRINGS, .DLSTRINGS or .ILSTRINGS file`, r.Filename)
}
