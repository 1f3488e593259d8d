package errors

import "errors"

var (
	ErrFactCheckNotFound    = errors.New("fact check not found")
	ErrFactCheckExists      = errors.New("fact check already exists for submission")
	ErrInvalidWorkflowInput = errors.New("invalid workflow input")
	ErrUnknownState         = errors.New("unknown workflow state")
	ErrInvalidTransition    = errors.New("transition not allowed from current state")
	ErrPermissionDenied     = errors.New("actor role is not permitted for this transition")
	ErrReasonRequired       = errors.New("transition requires a reason")
	ErrConflict             = errors.New("concurrent workflow update lost")
)
