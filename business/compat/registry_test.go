//go:build !integration

package compat

import (
	"context"
	"errors"
	"testing"

	"stableCraft/domain"
)

// in-memory repo double; saves are whole-map swaps like the real one
type fakeBonusTraitRepo struct {
	store map[uint]domain.BonusTraitMap
	saves int
}

func newFakeBonusTraitRepo() *fakeBonusTraitRepo {
	return &fakeBonusTraitRepo{store: make(map[uint]domain.BonusTraitMap)}
}

func (f *fakeBonusTraitRepo) GetBonusTraits(ctx context.Context, groomID uint) (domain.BonusTraitMap, error) {
	m, ok := f.store[groomID]
	if !ok {
		return nil, nil
	}
	out := make(domain.BonusTraitMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out, nil
}

func (f *fakeBonusTraitRepo) SaveBonusTraits(ctx context.Context, groomID uint, traits domain.BonusTraitMap) error {
	f.saves++
	cp := make(domain.BonusTraitMap, len(traits))
	for k, v := range traits {
		cp[k] = v
	}
	f.store[groomID] = cp
	return nil
}

func TestBonusTraitRegistry_AssignValid(t *testing.T) {
	repo := newFakeBonusTraitRepo()
	reg := NewBonusTraitRegistry(repo)
	ctx := context.Background()

	traits := domain.BonusTraitMap{"sensitive": 0.2, "confident": 0.1, "social": 0.3}

	got, err := reg.Assign(ctx, 7, traits)
	if err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("returned map has %d entries, want 3", len(got))
	}

	stored, err := reg.Get(ctx, 7)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	for name, v := range traits {
		if stored[name] != v {
			t.Errorf("stored[%q] = %v, want %v", name, stored[name], v)
		}
	}
}

func TestBonusTraitRegistry_RejectsConstraintViolations(t *testing.T) {
	tests := []struct {
		name   string
		traits domain.BonusTraitMap
	}{
		{"too many traits", domain.BonusTraitMap{"a": 0.1, "b": 0.1, "c": 0.1, "d": 0.1}},
		{"value above cap", domain.BonusTraitMap{"sensitive": 0.35}},
		{"zero value", domain.BonusTraitMap{"sensitive": 0}},
		{"negative value", domain.BonusTraitMap{"sensitive": -0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBonusTraitRepo()
			reg := NewBonusTraitRegistry(repo)
			ctx := context.Background()

			seed := domain.BonusTraitMap{"sensitive": 0.2}
			if _, err := reg.Assign(ctx, 7, seed); err != nil {
				t.Fatalf("seeding failed: %v", err)
			}
			savesBefore := repo.saves

			_, err := reg.Assign(ctx, 7, tt.traits)
			if !errors.Is(err, ErrBonusTraitConstraint) {
				t.Fatalf("Assign error = %v, want ErrBonusTraitConstraint", err)
			}

			if repo.saves != savesBefore {
				t.Errorf("rejected assign reached the repository")
			}

			stored, err := reg.Get(ctx, 7)
			if err != nil {
				t.Fatalf("Get returned error: %v", err)
			}
			if len(stored) != 1 || stored["sensitive"] != 0.2 {
				t.Errorf("stored map changed after rejection: %v", stored)
			}
		})
	}
}

// A failing assign must fail the same way every time and never leak partial
// state between attempts.
func TestBonusTraitRegistry_RejectionIsRepeatable(t *testing.T) {
	repo := newFakeBonusTraitRepo()
	reg := NewBonusTraitRegistry(repo)
	ctx := context.Background()

	bad := domain.BonusTraitMap{"a": 0.1, "b": 0.1, "c": 0.1, "d": 0.1}

	for i := 0; i < 3; i++ {
		if _, err := reg.Assign(ctx, 9, bad); !errors.Is(err, ErrBonusTraitConstraint) {
			t.Fatalf("attempt %d: error = %v, want ErrBonusTraitConstraint", i, err)
		}
	}

	stored, err := reg.Get(ctx, 9)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("stored map = %v, want empty", stored)
	}
}

func TestBonusTraitRegistry_BoundaryValues(t *testing.T) {
	repo := newFakeBonusTraitRepo()
	reg := NewBonusTraitRegistry(repo)
	ctx := context.Background()

	// exactly at the value cap and exactly at the entry cap
	traits := domain.BonusTraitMap{"a": 0.30, "b": 0.01, "c": 0.30}
	if _, err := reg.Assign(ctx, 3, traits); err != nil {
		t.Fatalf("boundary map rejected: %v", err)
	}
}

func TestBonusTraitRegistry_GetUnknownGroom(t *testing.T) {
	reg := NewBonusTraitRegistry(newFakeBonusTraitRepo())

	got, err := reg.Get(context.Background(), 404)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil map, want empty map")
	}
	if len(got) != 0 {
		t.Fatalf("Get returned %v, want empty map", got)
	}
}
