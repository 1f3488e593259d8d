package entities

import "time"

type SubmissionKind string

const (
	SubmissionText  SubmissionKind = "text"
	SubmissionURL   SubmissionKind = "url"
	SubmissionImage SubmissionKind = "image"
	SubmissionVideo SubmissionKind = "video"
)

func (k SubmissionKind) Valid() bool {
	switch k {
	case SubmissionText, SubmissionURL, SubmissionImage, SubmissionVideo:
		return true
	default:
		return false
	}
}

type SubmissionStatus string

const SubmissionReceived SubmissionStatus = "received"

// Submission is an immutable intake record. Reviewers is order-irrelevant
// and the only field assignment operations touch.
type Submission struct {
	SubmissionID string
	Kind         SubmissionKind
	Content      string
	SubmitterID  string
	Status       SubmissionStatus
	Reviewers    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
