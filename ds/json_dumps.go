package ds

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// DumpJSON renders t as two-space indented JSON ending with a newline.
func DumpJSON[T any](t T) ([]byte, error) {
	tBytes, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		err := errors.Wrap(err, "ds.DumpJSON error")
		return nil, err
	}
	return append(tBytes, '\n'), nil
}
