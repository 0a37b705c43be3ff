package compat

import "stableCraft/domain"

const (
	// StrongBondThreshold separates an ordinary working relationship from a
	// strong one. A compatible pairing upgrades to a strong match only when
	// the bond score is strictly above it (a bond of exactly 60 stays
	// regular), and trait probability bonuses use the same gate.
	StrongBondThreshold = 60

	mismatchTraitModifier = -1
	regularTraitModifier  = 1
	strongTraitModifier   = 2

	mismatchStressBonus = 0.05
	regularStressBonus  = -0.05
	strongStressBonus   = -0.15

	mismatchBondModifier = -5
	regularBondModifier  = 5
	strongBondModifier   = 10
)

// ScoreCompatibility rates a groom/horse pairing. It is pure: same inputs,
// same result, no shared state touched.
//
// An absent or unknown personality/temperament yields the neutral result
// with Evaluated false; callers treat that as "no personality data", not as
// a mismatch. A known but incompatible pairing is penalized. Compatible
// pairings are rewarded, with a second tier once the bond passes
// StrongBondThreshold.
func ScoreCompatibility(p domain.Personality, t domain.Temperament, bondScore int) domain.CompatibilityResult {
	if !p.Valid() || !t.Valid() {
		return domain.CompatibilityResult{}
	}

	if !IsCompatible(p, t) {
		return domain.CompatibilityResult{
			Evaluated:             true,
			TraitModifierScore:    mismatchTraitModifier,
			StressResistanceBonus: mismatchStressBonus,
			BondModifier:          mismatchBondModifier,
		}
	}

	if bondScore > StrongBondThreshold {
		return domain.CompatibilityResult{
			Evaluated:             true,
			IsMatch:               true,
			IsStrongMatch:         true,
			TraitModifierScore:    strongTraitModifier,
			StressResistanceBonus: strongStressBonus,
			BondModifier:          strongBondModifier,
		}
	}

	return domain.CompatibilityResult{
		Evaluated:             true,
		IsMatch:               true,
		TraitModifierScore:    regularTraitModifier,
		StressResistanceBonus: regularStressBonus,
		BondModifier:          regularBondModifier,
	}
}
