package domain

// CompatibilityResult is the scorer's verdict for one groom/horse pairing.
// It is computed fresh on every call and never persisted.
type CompatibilityResult struct {
	Evaluated             bool    `json:"evaluated"` // false when personality or temperament was absent
	IsMatch               bool    `json:"is_match"`
	IsStrongMatch         bool    `json:"is_strong_match"`
	TraitModifierScore    int     `json:"trait_modifier_score"`
	StressResistanceBonus float64 `json:"stress_resistance_bonus"`
	BondModifier          int     `json:"bond_modifier"`
}

// MilestoneEffects is a milestone's base numbers after the compatibility
// result has been folded in.
type MilestoneEffects struct {
	ModifiedMilestoneScore    int     `json:"modified_milestone_score"`
	ModifiedStressLevel       float64 `json:"modified_stress_level"` // never below zero
	ModifiedBondingRate       int     `json:"modified_bonding_rate"`
	PersonalityEffectApplied  bool    `json:"personality_effect_applied"`
	PersonalityMatchScore     int     `json:"personality_match_score"`
}

// TraitProbability is the outcome of one epigenetic trait probability check.
type TraitProbability struct {
	FinalProbability float64 `json:"final_probability"` // base + bonus, not clamped to 1
	BonusApplied     bool    `json:"bonus_applied"`
	BonusAmount      float64 `json:"bonus_amount"`
	Reason           string  `json:"reason,omitempty"` // set only when a gate blocked the bonus
}

// CompatibilityBreakdown exposes every intermediate of a pairing score for
// inspection.
type CompatibilityBreakdown struct {
	GroomID      uint                `json:"groom_id"`
	HorseID      uint                `json:"horse_id"`
	Personality  Personality         `json:"personality"`
	Temperament  Temperament         `json:"temperament"`
	BondScore    int                 `json:"bond_score"`
	MatchQuality string              `json:"match_quality"` // none | regular | preferred
	StrongBond   bool                `json:"strong_bond"`   // bond_score above the strong-match threshold
	BonusTraits  BonusTraitMap       `json:"bonus_traits"`
	Result       CompatibilityResult `json:"result"`
}
