package locations

import (
	"errors"
)

// ErrMissingMetadata is returned when a data object lacks the id_product
// metadata required to export it. Reported per object; never aborts a batch.
var ErrMissingMetadata = errors.New("missing metadata")

// ErrExcludedObject is returned when a data object is intentionally skipped:
// the unassigned-read bin (tag index 0), PhiX-referenced controls, read
// subsets, or objects outside the target extension. Not an error for batch
// purposes.
var ErrExcludedObject = errors.New("excluded object")
