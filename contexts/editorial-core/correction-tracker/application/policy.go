package application

import "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/domain/entities"

// Policy carries the editorial constants for correction handling. Zero
// values fall back to the EFCSN-aligned defaults.
type Policy struct {
	SubstantialSLADays int
	UpdateSLADays      int
	MinorSLADays       int
	MinDetailsLen      int
	MinNotesLen        int
	MinSummaryLen      int
}

const (
	defaultSubstantialSLADays = 2
	defaultUpdateSLADays      = 7
	defaultMinorSLADays       = 14
	defaultMinDetailsLen      = 20
	defaultMinNotesLen        = 10
	defaultMinSummaryLen      = 10
)

func (p Policy) SLADays(correctionType entities.CorrectionType) int {
	switch correctionType {
	case entities.CorrectionSubstantial:
		return orDefault(p.SubstantialSLADays, defaultSubstantialSLADays)
	case entities.CorrectionUpdate:
		return orDefault(p.UpdateSLADays, defaultUpdateSLADays)
	default:
		return orDefault(p.MinorSLADays, defaultMinorSLADays)
	}
}

func (p Policy) DetailsFloor() int {
	return orDefault(p.MinDetailsLen, defaultMinDetailsLen)
}

func (p Policy) NotesFloor() int {
	return orDefault(p.MinNotesLen, defaultMinNotesLen)
}

func (p Policy) SummaryFloor() int {
	return orDefault(p.MinSummaryLen, defaultMinSummaryLen)
}

func orDefault(value int, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
