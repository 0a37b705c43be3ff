package compat

import "stableCraft/domain"

const (
	// MinBonusCoverage is the share of a milestone window an assignment must
	// cover before the groom's bonus traits count.
	MinBonusCoverage = 0.75

	ReasonBondTooLow  = "Bond score too low"
	ReasonLowCoverage = "Insufficient assignment coverage"
)

// CalculateTraitProbability applies a groom's bonus-trait increment to a
// trait's base probability. Two gates are checked in order, bond first,
// then coverage; when both fail the reason reports the bond. A trait absent
// from the bonus map passes the gates but adds nothing.
//
// The sum is not clamped to 1; callers treat any final probability >= 1
// as a guaranteed roll.
func CalculateTraitProbability(baseProbability float64, trait string, bondScore int, coverage float64, bonuses domain.BonusTraitMap) domain.TraitProbability {
	if bondScore <= StrongBondThreshold {
		return domain.TraitProbability{
			FinalProbability: baseProbability,
			Reason:           ReasonBondTooLow,
		}
	}

	if coverage < MinBonusCoverage {
		return domain.TraitProbability{
			FinalProbability: baseProbability,
			Reason:           ReasonLowCoverage,
		}
	}

	bonus := bonuses[trait]
	if bonus == 0 {
		return domain.TraitProbability{FinalProbability: baseProbability}
	}

	return domain.TraitProbability{
		FinalProbability: baseProbability + bonus,
		BonusApplied:     true,
		BonusAmount:      bonus,
	}
}
