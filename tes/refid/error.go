package refid

import (
	"fmt"
)

// ErrRegistryFrozen is returned when a Registry is written to out of phase
// order: created objects, then the form id array, then nothing.
type ErrRegistryFrozen struct {
	Operation string
	Phase     string
}

func (r ErrRegistryFrozen) Error() string {
	return fmt.Sprintf("registry: cannot %s while %s", r.Operation, r.Phase)
}
