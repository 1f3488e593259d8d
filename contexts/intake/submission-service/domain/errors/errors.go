package errors

import "errors"

var (
	ErrSubmissionNotFound      = errors.New("submission not found")
	ErrInvalidSubmissionInput  = errors.New("invalid submission input")
	ErrPermissionDenied        = errors.New("actor role does not permit this operation")
	ErrReviewerAlreadyAssigned = errors.New("reviewer is already assigned to this submission")
	ErrReviewerNotAssigned     = errors.New("reviewer is not assigned to this submission")
)
