package errors

import "errors"

var (
	ErrRatingNotFound       = errors.New("no rating assigned to this fact check")
	ErrInvalidRatingInput   = errors.New("invalid rating input")
	ErrInvalidWorkflowState = errors.New("fact check workflow state does not allow rating assignment")
	ErrPermissionDenied     = errors.New("actor role does not permit this operation")
	ErrConflict             = errors.New("rating chain was modified concurrently, refetch and retry")
)
