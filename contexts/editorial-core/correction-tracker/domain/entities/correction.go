package entities

import (
	"math"
	"time"
)

type CorrectionType string

const (
	CorrectionSubstantial CorrectionType = "substantial"
	CorrectionUpdate      CorrectionType = "update"
	CorrectionMinor       CorrectionType = "minor"
)

func (t CorrectionType) Valid() bool {
	switch t {
	case CorrectionSubstantial, CorrectionUpdate, CorrectionMinor:
		return true
	default:
		return false
	}
}

// SeverityRank orders triage: substantial before update before minor.
// Unknown types sort last.
func (t CorrectionType) SeverityRank() int {
	switch t {
	case CorrectionSubstantial:
		return 0
	case CorrectionUpdate:
		return 1
	case CorrectionMinor:
		return 2
	default:
		return 3
	}
}

type CorrectionStatus string

const (
	CorrectionPending  CorrectionStatus = "pending"
	CorrectionAccepted CorrectionStatus = "accepted"
	CorrectionRejected CorrectionStatus = "rejected"
	CorrectionApplied  CorrectionStatus = "applied"
)

type Correction struct {
	CorrectionID    string
	FactCheckID     string
	Type            CorrectionType
	Status          CorrectionStatus
	Details         string
	RequesterEmail  string
	ResolutionNotes string
	SLADeadline     time.Time
	RowVersion      int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CorrectionApplication is an immutable record of an applied correction.
// Version is gapless and ascending per fact-check.
type CorrectionApplication struct {
	ApplicationID  string
	CorrectionID   string
	FactCheckID    string
	Version        int
	AppliedBy      string
	Changes        string
	ChangesSummary string
	AppliedAt      time.Time
}

// SLADaysRemaining is ceil((deadline - now) / 24h). Negative means the
// deadline has been missed by at least a full day.
func SLADaysRemaining(deadline time.Time, now time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}

func SLAOverdue(deadline time.Time, now time.Time) bool {
	return SLADaysRemaining(deadline, now) < 0
}
