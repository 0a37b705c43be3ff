package compat

import (
	"context"
	"fmt"

	"stableCraft/domain"
	"stableCraft/pkg/logger"
)

// ---- Repository interfaces ----

type GroomRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Groom, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Groom, error)
}

type HorseRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Horse, error)
}

type AssignmentRepository interface {
	FindActiveByHorseID(ctx context.Context, horseID uint) (*domain.GroomAssignment, error)
}

// ---- Usecase / Service ----

// Service composes the pure compatibility rules with stored grooms, horses,
// assignments, and the bonus-trait registry.
type Service struct {
	groomRepo      GroomRepository
	horseRepo      HorseRepository
	assignmentRepo AssignmentRepository
	registry       *BonusTraitRegistry
}

func NewService(
	groomRepo GroomRepository,
	horseRepo HorseRepository,
	assignmentRepo AssignmentRepository,
	registry *BonusTraitRegistry,
) *Service {
	return &Service{
		groomRepo:      groomRepo,
		horseRepo:      horseRepo,
		assignmentRepo: assignmentRepo,
		registry:       registry,
	}
}

func matchTier(res domain.CompatibilityResult) string {
	switch {
	case !res.Evaluated:
		return "neutral"
	case res.IsStrongMatch:
		return "strong"
	case res.IsMatch:
		return "regular"
	default:
		return "mismatch"
	}
}

func probabilityOutcome(res domain.TraitProbability) string {
	switch {
	case res.BonusApplied:
		return "bonus_applied"
	case res.Reason == ReasonBondTooLow:
		return "bond_too_low"
	case res.Reason == ReasonLowCoverage:
		return "low_coverage"
	default:
		return "no_bonus"
	}
}

// bondFor returns the bond between a groom and a horse: the running
// assignment's bond when that assignment belongs to this groom, zero
// otherwise.
func (s *Service) bondFor(ctx context.Context, groomID, horseID uint) int {
	a, err := s.assignmentRepo.FindActiveByHorseID(ctx, horseID)
	if err != nil || a == nil || a.GroomID != groomID {
		return 0
	}
	return a.BondScore
}

// ScoreForPair scores a stored groom against a stored horse using the bond
// from the horse's running assignment.
func (s *Service) ScoreForPair(ctx context.Context, groomID, horseID uint) (domain.CompatibilityResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.CompatibilityResult{}, fmt.Errorf("context error: %w", err)
	}

	groom, err := s.groomRepo.FindByID(ctx, groomID)
	if err != nil {
		return domain.CompatibilityResult{}, err
	}

	horse, err := s.horseRepo.FindByID(ctx, horseID)
	if err != nil {
		return domain.CompatibilityResult{}, err
	}

	bond := s.bondFor(ctx, groomID, horseID)
	result := ScoreCompatibility(groom.Personality, horse.Temperament, bond)

	tid := TraceIDFromContext(ctx)
	logger.Debug("compat_score",
		"trace_id", tid,
		"groom_id", groomID,
		"horse_id", horseID,
		"bond", bond,
		"tier", matchTier(result),
	)

	CompatScoresTotal.WithLabelValues(matchTier(result)).Inc()

	return result, nil
}

// Preview scores raw attribute strings without touching storage. Unknown
// strings score as missing data, never as an error.
func (s *Service) Preview(personality, temperament string, bondScore int) domain.CompatibilityResult {
	p := domain.ParsePersonality(personality)
	t := domain.ParseTemperament(temperament)

	result := ScoreCompatibility(p, t, bondScore)
	CompatScoresTotal.WithLabelValues(matchTier(result)).Inc()

	return result
}

// TraitProbabilityForGroom runs the trait probability check against the
// groom's stored bonus-trait map.
func (s *Service) TraitProbabilityForGroom(ctx context.Context, groomID uint, trait string, baseProbability float64, bondScore int, coverage float64) (domain.TraitProbability, error) {
	if err := ctx.Err(); err != nil {
		return domain.TraitProbability{}, fmt.Errorf("context error: %w", err)
	}

	traits, err := s.registry.Get(ctx, groomID)
	if err != nil {
		return domain.TraitProbability{}, err
	}

	result := CalculateTraitProbability(baseProbability, trait, bondScore, coverage, traits)
	TraitProbabilityChecksTotal.WithLabelValues(probabilityOutcome(result)).Inc()

	return result, nil
}

// GroomsForTemperament returns the user's grooms whose personalities suit a
// temperament, preferred-affinity personalities first. Unknown temperaments
// yield an empty list.
func (s *Service) GroomsForTemperament(ctx context.Context, temperament string, userID uint) ([]domain.Groom, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	personalities := CompatiblePersonalities(domain.ParseTemperament(temperament))
	if len(personalities) == 0 {
		return []domain.Groom{}, nil
	}

	grooms, err := s.groomRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Groom, 0, len(grooms))
	for _, p := range personalities {
		for _, g := range grooms {
			if g.Personality == p {
				out = append(out, g)
			}
		}
	}

	return out, nil
}

// Breakdown gathers every component of a pairing score for inspection.
func (s *Service) Breakdown(ctx context.Context, groomID, horseID uint) (domain.CompatibilityBreakdown, error) {
	if err := ctx.Err(); err != nil {
		return domain.CompatibilityBreakdown{}, fmt.Errorf("context error: %w", err)
	}

	groom, err := s.groomRepo.FindByID(ctx, groomID)
	if err != nil {
		return domain.CompatibilityBreakdown{}, err
	}

	horse, err := s.horseRepo.FindByID(ctx, horseID)
	if err != nil {
		return domain.CompatibilityBreakdown{}, err
	}

	traits, err := s.registry.Get(ctx, groomID)
	if err != nil {
		return domain.CompatibilityBreakdown{}, err
	}

	bond := s.bondFor(ctx, groomID, horseID)

	tid := TraceIDFromContext(ctx)
	logger.Debug("compat_breakdown",
		"trace_id", tid,
		"groom_id", groomID,
		"horse_id", horseID,
		"bond", bond,
	)

	return domain.CompatibilityBreakdown{
		GroomID:      groomID,
		HorseID:      horseID,
		Personality:  groom.Personality,
		Temperament:  horse.Temperament,
		BondScore:    bond,
		MatchQuality: MatchQuality(groom.Personality, horse.Temperament),
		StrongBond:   bond > StrongBondThreshold,
		BonusTraits:  traits,
		Result:       ScoreCompatibility(groom.Personality, horse.Temperament, bond),
	}, nil
}
