package types

import (
	"sort"
	"strings"
)

// Capture is a single member of a CaptureSet (spec.md §3/§4.3). Captures
// are identity-compared: two captures denoting "the same" resource are
// only equal if they are the same Go value (pointer identity for Region
// and Resource; the IO and Control captures are process-wide singletons).
type Capture interface {
	isCapture()
	String() string
	// category drives the pure-or-IO predicate (spec §4.3/§4.5).
	category() captureCategory
}

type captureCategory int

const (
	categoryIO captureCategory = iota
	categoryRegion
	categoryResource
	categoryControl
)

// ioCapability is the type of the single process-wide I/O capability.
type ioCapability struct{}

func (*ioCapability) isCapture()               {}
func (*ioCapability) String() string           { return "io" }
func (*ioCapability) category() captureCategory { return categoryIO }

// IO is the distinguished I/O capability singleton.
var IO Capture = &ioCapability{}

// control is the type of ControlCapability, the distinguished control
// capability singleton (spec §3:
// "the dedicated control capability"); its presence in a capture set
// means the term is not pure-or-IO, i.e. it may suspend.
type control struct{}

func (*control) isCapture()               {}
func (*control) String() string           { return "control" }
func (*control) category() captureCategory { return categoryControl }

var ControlCapability Capture = &control{}

// Region is a lexically-scoped mutable-state region. Two Region values
// are the same capture iff they are the same pointer.
type Region struct {
	Label string
}

func (*Region) isCapture()               {}
func (r *Region) String() string         { return "region:" + r.Label }
func (*Region) category() captureCategory { return categoryRegion }

// Resource is an external handle (file, socket, ...) captured by identity.
type Resource struct {
	Label string
}

func (*Resource) isCapture()               {}
func (r *Resource) String() string         { return "resource:" + r.Label }
func (*Resource) category() captureCategory { return categoryResource }

// CaptureSet is a set of captures, identity-compared.
type CaptureSet struct {
	members []Capture
}

// Empty is the empty (pure) capture set.
var Empty = CaptureSet{}

// NewCaptureSet builds a CaptureSet, deduplicating by identity.
func NewCaptureSet(caps ...Capture) CaptureSet {
	var out []Capture
	for _, c := range caps {
		found := false
		for _, existing := range out {
			if existing == c {
				found = true
				break
			}
		}
		if !found {
			out = append(out, c)
		}
	}
	return CaptureSet{members: out}
}

// IsEmpty reports whether the set is pure.
func (cs CaptureSet) IsEmpty() bool { return len(cs.members) == 0 }

// Members returns the captures in the set (caller must not mutate).
func (cs CaptureSet) Members() []Capture { return cs.members }

// Union returns a new set containing every capture from both sets.
func (cs CaptureSet) Union(other CaptureSet) CaptureSet {
	return NewCaptureSet(append(append([]Capture{}, cs.members...), other.members...)...)
}

// Contains reports identity membership.
func (cs CaptureSet) Contains(c Capture) bool {
	for _, m := range cs.members {
		if m == c {
			return true
		}
	}
	return false
}

// IsPureOrIO is the pure-or-IO predicate of spec §4.3/§4.5: every member
// is I/O, a lexical region, or a resource, and none is the control
// capability.
func (cs CaptureSet) IsPureOrIO() bool {
	for _, m := range cs.members {
		switch m.category() {
		case categoryIO, categoryRegion, categoryResource:
			continue
		default:
			return false
		}
	}
	return true
}

// CaptureSetEqual compares two capture sets by identity-set equality.
func CaptureSetEqual(a, b CaptureSet) bool {
	if len(a.members) != len(b.members) {
		return false
	}
	for _, m := range a.members {
		if !b.Contains(m) {
			return false
		}
	}
	return true
}

func (cs CaptureSet) String() string {
	if cs.IsEmpty() {
		return "{}"
	}
	strs := make([]string, len(cs.members))
	for i, m := range cs.members {
		strs[i] = m.String()
	}
	sort.Strings(strs)
	return "{" + strings.Join(strs, ", ") + "}"
}
