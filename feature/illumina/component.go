package illumina

import (
	"encoding/json"
	"fmt"

	"seq-metadata/core/lims"
	"seq-metadata/core/obstore"
)

// Sequencing tag indexes which have special meaning or behaviour.
const (
	// TagIndexBin is not a real tag i.e. there is no DNA sequence
	// corresponding to it. Rather, it is a bin for reads that cannot be
	// associated with any of the candidate tags in a pool after sequencing.
	TagIndexBin = 0

	TagIndexControl198 = 198
	TagIndexControl887 = 887

	// TagIndexControl888 is conventionally used to indicate a control sample
	// e.g. Phi X that has been added to a pool.
	TagIndexControl888 = 888
)

// Subset denotes that the reads of a component have been filtered down to a
// subset of the original output.
type Subset string

const (
	SubsetHuman   Subset = "human"
	SubsetXAHuman Subset = "xahuman"
	SubsetYHuman  Subset = "yhuman"
	SubsetPhiX    Subset = "phix"
)

// Component identifies a set of reads from an Illumina sequencing run.
//
// The zero TagIndex (the bin) is meaningful, so TagIndex is a pointer; nil
// means the component is a whole, undemultiplexed lane. Fields are declared
// in lexicographic key order so that the JSON encoding is the canonical
// descriptor form (sorted keys, compact separators).
type Component struct {
	// Position is the 1-based instrument position where the sample was
	// sequenced.
	Position int `json:"position"`
	// RunID is the run ID generated by the tracking database.
	RunID int `json:"run_id"`
	// Subset of the reads for this run/position/tag index, if filtered.
	Subset Subset `json:"subset,omitempty"`
	// TagIndex is the 1-based index in a pool of tags, if multiplexed.
	TagIndex *int `json:"tag_index,omitempty"`
}

// ParseComponent returns a new Component by parsing the value of a component
// AVU attached to a stored path.
func ParseComponent(avu obstore.AVU) (Component, error) {
	if avu.Attr != lims.ComponentAttr {
		return Component{}, &ParseError{
			msg: fmt.Sprintf("cannot create a component from metadata %s; invalid attribute %q", avu, avu.Attr),
		}
	}

	var raw struct {
		RunID    *int    `json:"run_id"`
		Position *int    `json:"position"`
		TagIndex *int    `json:"tag_index"`
		Subset   *string `json:"subset"`
	}
	if err := json.Unmarshal([]byte(avu.Value), &raw); err != nil {
		return Component{}, &ParseError{
			msg: fmt.Sprintf("failed to create a component from metadata %s", avu),
			err: err,
		}
	}

	if raw.RunID == nil {
		return Component{}, &ParseError{
			msg: fmt.Sprintf("failed to create a component from metadata %s: missing run_id", avu),
		}
	}
	if raw.Position == nil {
		return Component{}, &ParseError{
			msg: fmt.Sprintf("failed to create a component from metadata %s: missing position", avu),
		}
	}

	var subset Subset
	if raw.Subset != nil {
		switch Subset(*raw.Subset) {
		case SubsetHuman, SubsetXAHuman, SubsetYHuman, SubsetPhiX:
			subset = Subset(*raw.Subset)
		default:
			return Component{}, &ParseError{
				msg: fmt.Sprintf("failed to create a component from metadata %s: invalid subset %q", avu, *raw.Subset),
			}
		}
	}

	return Component{
		RunID:    *raw.RunID,
		Position: *raw.Position,
		TagIndex: raw.TagIndex,
		Subset:   subset,
	}, nil
}

// ContainsNonconsentedHuman returns true if this component contains
// non-consented human sequence.
func (c Component) ContainsNonconsentedHuman() bool {
	return c.Subset == SubsetHuman || c.Subset == SubsetXAHuman
}

// AVU returns the component serialized back to its metadata form.
func (c Component) AVU() obstore.AVU {
	return obstore.AVU{Attr: lims.ComponentAttr, Value: c.String()}
}

// String returns the canonical descriptor encoding: a single-line JSON
// object with lexicographically sorted keys and no extraneous whitespace.
func (c Component) String() string {
	b, err := json.Marshal(c)
	if err != nil {
		// Marshalling a Component cannot fail; all fields are plain values.
		panic(err)
	}
	return string(b)
}

// Equal reports whether two components identify the same reads.
func (c Component) Equal(other Component) bool {
	return c.Compare(other) == 0
}

// Compare orders components by run ID, position, tag index then subset. A
// nil tag index sorts before any present one.
func (c Component) Compare(other Component) int {
	if c.RunID != other.RunID {
		return compareInt(c.RunID, other.RunID)
	}
	if c.Position != other.Position {
		return compareInt(c.Position, other.Position)
	}
	switch {
	case c.TagIndex == nil && other.TagIndex != nil:
		return -1
	case c.TagIndex != nil && other.TagIndex == nil:
		return 1
	case c.TagIndex != nil && other.TagIndex != nil && *c.TagIndex != *other.TagIndex:
		return compareInt(*c.TagIndex, *other.TagIndex)
	}
	switch {
	case c.Subset < other.Subset:
		return -1
	case c.Subset > other.Subset:
		return 1
	}
	return 0
}

func compareInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
