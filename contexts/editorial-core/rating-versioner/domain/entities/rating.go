package entities

import "time"

// DefaultScale is the EFCSN-aligned verdict scale. Deployments may override
// it through policy config; validation is always against the active scale.
var DefaultScale = []string{
	"true",
	"mostly_true",
	"half_true",
	"mostly_false",
	"false",
	"misleading",
	"unverifiable",
}

// RatingVersion is one link of a fact-check's verdict chain. Versions are
// gapless and ascending; exactly one link per fact-check is current.
type RatingVersion struct {
	RatingID      string
	FactCheckID   string
	Rating        string
	Justification string
	Version       int
	IsCurrent     bool
	AssignedBy    string
	CreatedAt     time.Time
}
