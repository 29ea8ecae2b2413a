package illumina

import (
	"errors"
)

// ErrInvalidQuery is returned when a flowcell query contradicts itself, e.g.
// asking to exclude controls while querying for a control component.
var ErrInvalidQuery = errors.New("invalid flowcell query")

// ErrInvalidComponent is returned when a component's tag index falls outside
// the recognised domain.
var ErrInvalidComponent = errors.New("invalid component")

// ParseError is returned when an identity descriptor cannot be parsed into a
// Component.
type ParseError struct {
	msg string
	err error
}

func (e *ParseError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *ParseError) Unwrap() error {
	return e.err
}
