package compat

import "stableCraft/domain"

// compatibleWith maps each groom personality to the horse temperaments it
// works well with. The table is static; gameplay never mutates it, so the
// lookups below are safe from any goroutine.
var compatibleWith = map[domain.Personality][]domain.Temperament{
	domain.PersonalityCalm:       {domain.TemperamentSpirited, domain.TemperamentNervous, domain.TemperamentAggressive},
	domain.PersonalityEnergetic:  {domain.TemperamentLazy, domain.TemperamentDocile, domain.TemperamentPlayful},
	domain.PersonalityReserved:   {domain.TemperamentDocile, domain.TemperamentStubborn},
	domain.PersonalitySoftSpoken: {domain.TemperamentNervous, domain.TemperamentAggressive, domain.TemperamentCurious},
	domain.PersonalityPatient:    {domain.TemperamentStubborn, domain.TemperamentLazy, domain.TemperamentNervous},
	domain.PersonalityAssertive:  {domain.TemperamentStubborn, domain.TemperamentAggressive, domain.TemperamentSpirited},
}

// preferredWith is the natural-affinity subset of compatibleWith. It does
// not decide match strength (the bond score does, see scoring.go); it only
// ranks inverse lookups so the best-suited personalities come first.
var preferredWith = map[domain.Personality][]domain.Temperament{
	domain.PersonalityCalm:       {domain.TemperamentSpirited, domain.TemperamentNervous},
	domain.PersonalityEnergetic:  {domain.TemperamentLazy},
	domain.PersonalityReserved:   {domain.TemperamentDocile},
	domain.PersonalitySoftSpoken: {domain.TemperamentNervous},
	domain.PersonalityPatient:    {domain.TemperamentStubborn},
	domain.PersonalityAssertive:  {domain.TemperamentAggressive},
}

// personalityOrder pins iteration order for inverse lookups; map iteration
// is randomized and lookup results must be deterministic.
var personalityOrder = []domain.Personality{
	domain.PersonalityCalm,
	domain.PersonalityEnergetic,
	domain.PersonalityReserved,
	domain.PersonalitySoftSpoken,
	domain.PersonalityPatient,
	domain.PersonalityAssertive,
}

// IsCompatible reports whether a groom personality works with a horse
// temperament. Unknown values are never compatible.
func IsCompatible(p domain.Personality, t domain.Temperament) bool {
	for _, c := range compatibleWith[p] {
		if c == t {
			return true
		}
	}
	return false
}

func isPreferred(p domain.Personality, t domain.Temperament) bool {
	for _, c := range preferredWith[p] {
		if c == t {
			return true
		}
	}
	return false
}

// CompatibleTemperaments returns the temperaments a personality works with,
// in table order. Empty for unknown personalities.
func CompatibleTemperaments(p domain.Personality) []domain.Temperament {
	src := compatibleWith[p]
	out := make([]domain.Temperament, len(src))
	copy(out, src)
	return out
}

// CompatiblePersonalities is the inverse lookup: which groom personalities
// suit a horse temperament. Preferred-affinity personalities come first,
// the remaining matches keep table order. Empty for unknown temperaments.
func CompatiblePersonalities(t domain.Temperament) []domain.Personality {
	out := make([]domain.Personality, 0, len(personalityOrder))
	for _, p := range personalityOrder {
		if isPreferred(p, t) {
			out = append(out, p)
		}
	}
	for _, p := range personalityOrder {
		if IsCompatible(p, t) && !isPreferred(p, t) {
			out = append(out, p)
		}
	}
	return out
}

// Match quality labels used in breakdown output.
const (
	MatchNone      = "none"
	MatchRegular   = "regular"
	MatchPreferred = "preferred"
)

// MatchQuality classifies a pairing against the matrix alone, ignoring the
// bond score.
func MatchQuality(p domain.Personality, t domain.Temperament) string {
	switch {
	case isPreferred(p, t):
		return MatchPreferred
	case IsCompatible(p, t):
		return MatchRegular
	default:
		return MatchNone
	}
}
