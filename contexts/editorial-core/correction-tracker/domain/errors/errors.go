package errors

import "errors"

var (
	ErrCorrectionNotFound     = errors.New("correction not found")
	ErrInvalidCorrectionInput = errors.New("invalid correction input")
	ErrFactCheckNotPublished  = errors.New("fact check is not published")
	ErrInvalidCorrectionState = errors.New("correction is not in a state that allows this operation")
	ErrPermissionDenied       = errors.New("actor role does not permit this operation")
	ErrConflict               = errors.New("correction was modified concurrently, refetch and retry")
)
