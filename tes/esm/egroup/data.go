// Package egroup walks the GRUP tree of a plugin file, descending into the
// groups whose label is of interest and seeking past the others.
package egroup

import (
	"github.com/ronanpaixao/SkyAlchemy/ds"
	"github.com/ronanpaixao/SkyAlchemy/tes/esm/erecord"
	"github.com/ronanpaixao/SkyAlchemy/tes/lbytes"
)

type (
	Group struct {
		Label     string `json:"label"`
		GroupType int32  `json:"group_type"`
		Stamp     uint16 `json:"stamp"`
		Unknown1  uint16 `json:"unknown1"`
		Version   uint16 `json:"version"`
		Unknown2  uint16 `json:"unknown2"`
		Size      uint32 `json:"size"`
		Offset    int64  `json:"offset"`
	}
	// Policy decides what happens to a record whose type has no decoder.
	Policy int
	// Item is one step of the walk: a group header (descended or skipped) or
	// a decoded record.
	Item struct {
		Group     *Group
		Descended bool
		Record    erecord.Record
		Depth     int
	}
	Options struct {
		// Labels are the group labels worth descending into.
		Labels   []string
		TopLevel Policy
		Nested   Policy
		Context  erecord.Context
	}
	Walker struct {
		reader  *lbytes.Reader
		options Options
		labels  map[string]struct{}
		ends    *ds.Stack[int64]
		skipped int
	}
)

const (
	PolicyFail Policy = iota
	PolicySkip
)

const HeaderSize = 24

var policyNames = map[Policy]string{
	PolicyFail: "fail",
	PolicySkip: "skip",
}

func (p Policy) String() string {
	return policyNames[p]
}

// ParsePolicy accepts "fail" and "skip".
func ParsePolicy(s string) (Policy, bool) {
	for policy, name := range policyNames {
		if name == s {
			return policy, true
		}
	}
	return PolicyFail, false
}

// DefaultOptions descends into every group holding a typed record, fails on
// unknown records at top level and skips them inside groups.
func DefaultOptions() Options {
	return Options{
		Labels:   erecord.ItemTypes(),
		TopLevel: PolicyFail,
		Nested:   PolicySkip,
	}
}
