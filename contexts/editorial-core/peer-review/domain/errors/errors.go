package errors

import "errors"

var (
	ErrInvalidReviewInput = errors.New("invalid peer review input")
	ErrNoActiveRound      = errors.New("no open peer review round for fact check")
	ErrRoundActive        = errors.New("an open peer review round already exists")
	ErrNoReviewers        = errors.New("peer review round requires at least one reviewer")
	ErrNotAReviewer       = errors.New("actor is not a reviewer in this round")
	ErrAlreadyDecided     = errors.New("reviewer has already decided in this round")
	ErrConflict           = errors.New("concurrent peer review update lost")
)
