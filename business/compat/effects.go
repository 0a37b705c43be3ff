package compat

import "stableCraft/domain"

// ApplyMilestoneEffects folds a compatibility result into a milestone's base
// numbers. The stress adjustment is proportional (base plus base times the
// resistance bonus) and never drops below zero; score and bonding rate are
// plain additions.
//
// PersonalityEffectApplied mirrors result.Evaluated: a mismatch penalty is
// still an applied effect, only absent personality data reports false.
func ApplyMilestoneEffects(baseScore int, stressLevel float64, bondingRate int, result domain.CompatibilityResult) domain.MilestoneEffects {
	stress := stressLevel + stressLevel*result.StressResistanceBonus
	if stress < 0 {
		stress = 0
	}

	return domain.MilestoneEffects{
		ModifiedMilestoneScore:   baseScore + result.TraitModifierScore,
		ModifiedStressLevel:      stress,
		ModifiedBondingRate:      bondingRate + result.BondModifier,
		PersonalityEffectApplied: result.Evaluated,
		PersonalityMatchScore:    result.TraitModifierScore,
	}
}
