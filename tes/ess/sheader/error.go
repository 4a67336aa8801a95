package sheader

import (
	"fmt"
)

type (
	ErrBadMagic struct {
		Actual string
	}
	ErrUnsupportedVersion struct {
		Version uint32
	}
)

func (r ErrBadMagic) Error() string {
	return fmt.Sprintf(`bad magic: expected "%s"; got "%s"`, Magic, r.Actual)
}

func (r ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf(
		"unsupported savegame version %d: only versions %d to %d are supported",
		r.Version, MinVersion, MaxVersion,
	)
}
