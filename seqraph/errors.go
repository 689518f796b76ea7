package seqraph

import "errors"

// Errors
var (
	ErrInvalidVertexIndex = errors.New("vertex index was never issued by this graph")
	ErrWidthMismatch      = errors.New("pattern width does not match vertex width")
	ErrEmptyPattern       = errors.New("pattern needs at least two elements")
	ErrPositionOutOfRange = errors.New("split position exceeds pattern width")
	ErrStepLimit          = errors.New("match step limit exceeded")
	ErrUnknownName        = errors.New("unknown vertex name")
	ErrDuplicateName      = errors.New("vertex name already defined")
	ErrBrokenParentLink   = errors.New("parent and child links are inconsistent")
	ErrNotAToken          = errors.New("vertex is not a token")
)
