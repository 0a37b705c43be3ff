package compat

import (
	"context"
	"errors"
	"fmt"

	"stableCraft/domain"
	"stableCraft/pkg/logger"
)

const (
	// MaxBonusTraits caps how many bonus traits one groom can carry.
	MaxBonusTraits = 3

	// MaxBonusTraitValue caps a single trait's probability increment.
	MaxBonusTraitValue = 0.30
)

// ErrBonusTraitConstraint flags a bonus-trait map that breaks the registry
// rules. The stored map is never touched when an assignment is rejected.
var ErrBonusTraitConstraint = errors.New("bonus trait map violates registry constraints")

// BonusTraitRepository persists per-groom bonus-trait maps. SaveBonusTraits
// must replace the whole map in one write so concurrent assigns for the
// same groom cannot interleave partial state.
type BonusTraitRepository interface {
	GetBonusTraits(ctx context.Context, groomID uint) (domain.BonusTraitMap, error)
	SaveBonusTraits(ctx context.Context, groomID uint, traits domain.BonusTraitMap) error
}

// BonusTraitRegistry validates and stores the bonus-trait maps grooms carry.
type BonusTraitRegistry struct {
	repo BonusTraitRepository
}

func NewBonusTraitRegistry(repo BonusTraitRepository) *BonusTraitRegistry {
	return &BonusTraitRegistry{repo: repo}
}

// ValidateBonusTraits checks a map against the registry constraints: at
// most MaxBonusTraits entries, every value in (0, MaxBonusTraitValue].
func ValidateBonusTraits(traits domain.BonusTraitMap) error {
	if len(traits) > MaxBonusTraits {
		return fmt.Errorf("%w: %d traits exceeds max %d", ErrBonusTraitConstraint, len(traits), MaxBonusTraits)
	}

	for name, v := range traits {
		if v <= 0 || v > MaxBonusTraitValue {
			return fmt.Errorf("%w: trait %q value %v outside (0, %v]", ErrBonusTraitConstraint, name, v, MaxBonusTraitValue)
		}
	}

	return nil
}

// Assign validates and persists a groom's full bonus-trait map. The write
// is all-or-nothing; a rejected map leaves the previous one in place.
func (r *BonusTraitRegistry) Assign(ctx context.Context, groomID uint, traits domain.BonusTraitMap) (domain.BonusTraitMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := ValidateBonusTraits(traits); err != nil {
		BonusTraitAssignsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	if traits == nil {
		traits = domain.BonusTraitMap{}
	}

	if err := r.repo.SaveBonusTraits(ctx, groomID, traits); err != nil {
		logger.Error("Failed to save bonus traits", "groom_id", groomID, "error", err)
		return nil, fmt.Errorf("save bonus traits: %w", err)
	}

	BonusTraitAssignsTotal.WithLabelValues("stored").Inc()
	return traits, nil
}

// Get returns a groom's stored bonus-trait map, empty (never nil) when none
// was assigned.
func (r *BonusTraitRegistry) Get(ctx context.Context, groomID uint) (domain.BonusTraitMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	traits, err := r.repo.GetBonusTraits(ctx, groomID)
	if err != nil {
		return nil, fmt.Errorf("load bonus traits: %w", err)
	}
	if traits == nil {
		traits = domain.BonusTraitMap{}
	}

	return traits, nil
}
