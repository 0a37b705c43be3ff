package milestone

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"stableCraft/business/compat"
	"stableCraft/domain"
	"stableCraft/pkg/logger"

	"gorm.io/datatypes"
)

var (
	ErrUnknownMilestoneType = errors.New("unknown milestone type")
	ErrAlreadyEvaluated     = errors.New("milestone already evaluated for this horse")
	ErrWindowNotOpen        = errors.New("milestone window has not opened yet")
	ErrNotHorseOwner        = errors.New("horse does not belong to user")
)

// baseBondingRate is the bonding a milestone grants before compatibility
// modifiers.
const baseBondingRate = 10

type candidateTrait struct {
	name            string
	baseProbability float64
}

type milestoneDef struct {
	startDay  int // window start, days after birth
	endDay    int // window end, inclusive
	baseScore int
	traits    []candidateTrait
}

// milestoneDefs pins the developmental windows of a foal's first year and
// the epigenetic traits each window can produce. Base probabilities are the
// pre-bonus chance per trait; traits roll in listed order, first hit wins.
var milestoneDefs = map[domain.MilestoneType]milestoneDef{
	domain.MilestoneImprinting: {
		startDay: 0, endDay: 7, baseScore: 50,
		traits: []candidateTrait{{"sensitive", 0.25}, {"confident", 0.15}},
	},
	domain.MilestoneSocialization: {
		startDay: 8, endDay: 30, baseScore: 55,
		traits: []candidateTrait{{"social", 0.30}, {"confident", 0.20}},
	},
	domain.MilestoneHalterIntro: {
		startDay: 31, endDay: 90, baseScore: 60,
		traits: []candidateTrait{{"tractable", 0.30}, {"show_calm", 0.15}},
	},
	domain.MilestoneLeadingBasics: {
		startDay: 91, endDay: 180, baseScore: 60,
		traits: []candidateTrait{{"willing", 0.25}, {"tractable", 0.20}},
	},
	domain.MilestoneGroundManners: {
		startDay: 181, endDay: 365, baseScore: 65,
		traits: []candidateTrait{{"mannerly", 0.30}, {"steady", 0.20}},
	},
}

// ---- Repository interfaces ----

type HorseRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Horse, error)
	UpdateStressLevel(ctx context.Context, id uint, stressLevel float64) error
}

type GroomRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Groom, error)
}

type AssignmentRepository interface {
	FindLatestOverlapping(ctx context.Context, horseID uint, from, to time.Time) (*domain.GroomAssignment, error)
	UpdateBondScore(ctx context.Context, id uint, bondScore int) error
}

type MilestoneRepository interface {
	Create(ctx context.Context, m *domain.TraitMilestone) error
	FindByHorseAndType(ctx context.Context, horseID uint, mt domain.MilestoneType) (*domain.TraitMilestone, error)
	FindByHorseID(ctx context.Context, horseID uint) ([]domain.TraitMilestone, error)
}

// BonusTraitSource yields a groom's bonus-trait map; satisfied by the
// compat registry.
type BonusTraitSource interface {
	Get(ctx context.Context, groomID uint) (domain.BonusTraitMap, error)
}

// ---- Usecase / Service ----

type Service struct {
	horseRepo      HorseRepository
	groomRepo      GroomRepository
	assignmentRepo AssignmentRepository
	milestoneRepo  MilestoneRepository
	traits         BonusTraitSource

	// roll draws from [0, 1); swapped out in tests for determinism
	roll func() float64
}

func NewService(
	horseRepo HorseRepository,
	groomRepo GroomRepository,
	assignmentRepo AssignmentRepository,
	milestoneRepo MilestoneRepository,
	traits BonusTraitSource,
) *Service {
	return &Service{
		horseRepo:      horseRepo,
		groomRepo:      groomRepo,
		assignmentRepo: assignmentRepo,
		milestoneRepo:  milestoneRepo,
		traits:         traits,
		roll:           rand.Float64,
	}
}

// Evaluate runs one milestone for a horse: it scores the covering groom's
// compatibility, folds the modifiers into the milestone numbers, rolls the
// window's candidate traits, persists the outcome, and writes the bonding
// and stress changes back to the assignment and horse.
func (s *Service) Evaluate(ctx context.Context, horseID uint, milestoneType domain.MilestoneType, userID uint) (domain.TraitMilestone, error) {
	if err := ctx.Err(); err != nil {
		return domain.TraitMilestone{}, fmt.Errorf("context error: %w", err)
	}

	def, ok := milestoneDefs[milestoneType]
	if !ok {
		return domain.TraitMilestone{}, ErrUnknownMilestoneType
	}

	horse, err := s.horseRepo.FindByID(ctx, horseID)
	if err != nil {
		return domain.TraitMilestone{}, err
	}
	if horse.UserID != userID {
		return domain.TraitMilestone{}, ErrNotHorseOwner
	}

	windowStart := horse.DateOfBirth.AddDate(0, 0, def.startDay)
	windowEnd := horse.DateOfBirth.AddDate(0, 0, def.endDay)

	// late evaluation is allowed, early is not
	if time.Now().Before(windowStart) {
		return domain.TraitMilestone{}, ErrWindowNotOpen
	}

	existing, err := s.milestoneRepo.FindByHorseAndType(ctx, horseID, milestoneType)
	if err != nil {
		return domain.TraitMilestone{}, fmt.Errorf("check existing milestone: %w", err)
	}
	if existing != nil {
		return domain.TraitMilestone{}, ErrAlreadyEvaluated
	}

	assignment, err := s.assignmentRepo.FindLatestOverlapping(ctx, horseID, windowStart, windowEnd)
	if err != nil {
		return domain.TraitMilestone{}, fmt.Errorf("load assignment: %w", err)
	}

	var (
		personality domain.Personality
		groomID     uint
		bond        int
		coverage    float64
		bonuses     domain.BonusTraitMap
	)

	if assignment != nil {
		groom, err := s.groomRepo.FindByID(ctx, assignment.GroomID)
		if err != nil {
			return domain.TraitMilestone{}, err
		}
		personality = groom.Personality
		groomID = groom.ID
		bond = assignment.BondScore
		coverage = assignmentCoverage(*assignment, windowStart, windowEnd)

		bonuses, err = s.traits.Get(ctx, groomID)
		if err != nil {
			return domain.TraitMilestone{}, err
		}
	}

	result := compat.ScoreCompatibility(personality, horse.Temperament, bond)
	effects := compat.ApplyMilestoneEffects(def.baseScore, horse.StressLevel, baseBondingRate, result)

	// roll candidate traits in order; the final probability may exceed 1,
	// which makes the roll a guaranteed hit since roll() stays below 1
	acquired := ""
	bonusApplied := false
	traitProbs := map[string]any{}
	for _, ct := range def.traits {
		p := compat.CalculateTraitProbability(ct.baseProbability, ct.name, bond, coverage, bonuses)
		traitProbs[ct.name] = p.FinalProbability
		if acquired == "" && s.roll() < p.FinalProbability {
			acquired = ct.name
			bonusApplied = p.BonusApplied
		}
	}

	record := domain.TraitMilestone{
		HorseID:       horseID,
		GroomID:       groomID,
		MilestoneType: milestoneType,
		WindowStart:   windowStart,
		WindowEnd:     windowEnd,
		BaseScore:     def.baseScore,
		FinalScore:    effects.ModifiedMilestoneScore,
		FinalStress:   effects.ModifiedStressLevel,
		BondingRate:   effects.ModifiedBondingRate,
		Coverage:      coverage,
		TraitAcquired: acquired,
		BonusApplied:  bonusApplied,
		Context: datatypes.JSONMap{
			"personality":         string(personality),
			"temperament":         string(horse.Temperament),
			"bond_score":          bond,
			"coverage":            coverage,
			"is_match":            result.IsMatch,
			"is_strong_match":     result.IsStrongMatch,
			"effect_applied":      effects.PersonalityEffectApplied,
			"trait_probabilities": traitProbs,
		},
	}

	if err := s.milestoneRepo.Create(ctx, &record); err != nil {
		return domain.TraitMilestone{}, fmt.Errorf("save milestone: %w", err)
	}

	if assignment != nil {
		newBond := assignment.BondScore + effects.ModifiedBondingRate
		if newBond < 0 {
			newBond = 0
		}
		if newBond > 100 {
			newBond = 100
		}
		if err := s.assignmentRepo.UpdateBondScore(ctx, assignment.ID, newBond); err != nil {
			return domain.TraitMilestone{}, fmt.Errorf("update bond score: %w", err)
		}
	}

	if err := s.horseRepo.UpdateStressLevel(ctx, horse.ID, effects.ModifiedStressLevel); err != nil {
		return domain.TraitMilestone{}, fmt.Errorf("update stress level: %w", err)
	}

	outcome := "no_trait"
	if acquired != "" {
		outcome = "trait_acquired"
	}
	MilestoneEvaluationsTotal.WithLabelValues(string(milestoneType), outcome).Inc()

	tid := compat.TraceIDFromContext(ctx)
	logger.Debug("milestone_evaluated",
		"trace_id", tid,
		"horse_id", horseID,
		"milestone_type", milestoneType,
		"groom_id", groomID,
		"coverage", coverage,
		"final_score", effects.ModifiedMilestoneScore,
		"trait_acquired", acquired,
	)

	return record, nil
}

// ListByHorse returns a horse's evaluated milestones, owner-scoped.
func (s *Service) ListByHorse(ctx context.Context, horseID, userID uint) ([]domain.TraitMilestone, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	horse, err := s.horseRepo.FindByID(ctx, horseID)
	if err != nil {
		return nil, err
	}
	if horse.UserID != userID {
		return nil, ErrNotHorseOwner
	}

	return s.milestoneRepo.FindByHorseID(ctx, horseID)
}

// Types returns the known milestone types with their windows, for clients
// that render evaluation pickers.
func Types() []map[string]any {
	order := []domain.MilestoneType{
		domain.MilestoneImprinting,
		domain.MilestoneSocialization,
		domain.MilestoneHalterIntro,
		domain.MilestoneLeadingBasics,
		domain.MilestoneGroundManners,
	}

	out := make([]map[string]any, 0, len(order))
	for _, mt := range order {
		def := milestoneDefs[mt]
		out = append(out, map[string]any{
			"milestone_type": mt,
			"start_day":      def.startDay,
			"end_day":        def.endDay,
			"base_score":     def.baseScore,
		})
	}
	return out
}
