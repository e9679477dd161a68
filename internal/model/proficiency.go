package model

// ProficiencyLevel is derived from the answer counters and intentionally
// never persisted; it is recomputed on every read.
type ProficiencyLevel string

const (
	ProficiencyMaster   ProficiencyLevel = "master"
	ProficiencyGood     ProficiencyLevel = "good"
	ProficiencyNeutral  ProficiencyLevel = "neutral"
	ProficiencyWeak     ProficiencyLevel = "weak"
	ProficiencyVeryWeak ProficiencyLevel = "very-weak"
)

// ProficiencyLevels lists all levels in display order.
var ProficiencyLevels = []ProficiencyLevel{
	ProficiencyMaster,
	ProficiencyGood,
	ProficiencyNeutral,
	ProficiencyWeak,
	ProficiencyVeryWeak,
}

// ProficiencyLevelLabel maps each level to its display label.
var ProficiencyLevelLabel = map[ProficiencyLevel]string{
	ProficiencyMaster:   "超得意",
	ProficiencyGood:     "得意",
	ProficiencyNeutral:  "普通",
	ProficiencyWeak:     "苦手",
	ProficiencyVeryWeak: "超苦手",
}

func (p ProficiencyLevel) Valid() bool {
	switch p {
	case ProficiencyMaster, ProficiencyGood, ProficiencyNeutral, ProficiencyWeak, ProficiencyVeryWeak:
		return true
	}
	return false
}

// CalculateProficiencyLevel classifies a counter pair. The thresholds are
// asymmetric on purpose: master needs a +2 margin, very-weak a +3 margin.
// Evaluation order matters; the first matching rule wins.
func CalculateProficiencyLevel(correctCount, incorrectCount int) ProficiencyLevel {
	switch {
	case correctCount > incorrectCount+2:
		return ProficiencyMaster
	case correctCount > incorrectCount:
		return ProficiencyGood
	case incorrectCount > correctCount+3:
		return ProficiencyVeryWeak
	case incorrectCount > correctCount:
		return ProficiencyWeak
	default:
		return ProficiencyNeutral
	}
}
