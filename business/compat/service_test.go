//go:build !integration

package compat

import (
	"context"
	"errors"
	"testing"
	"time"

	"stableCraft/domain"
)

type fakeGroomRepo struct {
	grooms map[uint]domain.Groom
}

func (f *fakeGroomRepo) FindByID(ctx context.Context, id uint) (domain.Groom, error) {
	g, ok := f.grooms[id]
	if !ok {
		return domain.Groom{}, errors.New("groom not found")
	}
	return g, nil
}

func (f *fakeGroomRepo) FindByUserID(ctx context.Context, userID uint) ([]domain.Groom, error) {
	out := []domain.Groom{}
	// stable order by ID for deterministic assertions
	for id := uint(1); id <= uint(len(f.grooms)); id++ {
		if g, ok := f.grooms[id]; ok && g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

type fakeHorseRepo struct {
	horses map[uint]domain.Horse
}

func (f *fakeHorseRepo) FindByID(ctx context.Context, id uint) (domain.Horse, error) {
	h, ok := f.horses[id]
	if !ok {
		return domain.Horse{}, errors.New("horse not found")
	}
	return h, nil
}

type fakeAssignmentRepo struct {
	active map[uint]*domain.GroomAssignment
}

func (f *fakeAssignmentRepo) FindActiveByHorseID(ctx context.Context, horseID uint) (*domain.GroomAssignment, error) {
	return f.active[horseID], nil
}

func newTestService() (*Service, *fakeGroomRepo, *fakeHorseRepo, *fakeAssignmentRepo, *fakeBonusTraitRepo) {
	grooms := &fakeGroomRepo{grooms: map[uint]domain.Groom{
		1: {ID: 1, UserID: 10, Name: "Wren", Personality: domain.PersonalityCalm},
		2: {ID: 2, UserID: 10, Name: "Odette", Personality: domain.PersonalityAssertive},
		3: {ID: 3, UserID: 10, Name: "Piet", Personality: domain.PersonalityEnergetic},
		4: {ID: 4, UserID: 99, Name: "Mara", Personality: domain.PersonalityCalm},
	}}
	horses := &fakeHorseRepo{horses: map[uint]domain.Horse{
		1: {ID: 1, UserID: 10, Name: "Ember", Temperament: domain.TemperamentSpirited, DateOfBirth: time.Now().AddDate(0, -6, 0)},
		2: {ID: 2, UserID: 10, Name: "Biscuit", Temperament: domain.TemperamentLazy, DateOfBirth: time.Now().AddDate(-1, 0, 0)},
	}}
	assignments := &fakeAssignmentRepo{active: map[uint]*domain.GroomAssignment{}}
	traitRepo := newFakeBonusTraitRepo()

	svc := NewService(grooms, horses, assignments, NewBonusTraitRegistry(traitRepo))
	return svc, grooms, horses, assignments, traitRepo
}

func TestServiceScoreForPair_UsesActiveAssignmentBond(t *testing.T) {
	svc, _, _, assignments, _ := newTestService()
	ctx := context.Background()

	assignments.active[1] = &domain.GroomAssignment{ID: 1, GroomID: 1, HorseID: 1, BondScore: 72}

	got, err := svc.ScoreForPair(ctx, 1, 1)
	if err != nil {
		t.Fatalf("ScoreForPair returned error: %v", err)
	}
	if !got.IsStrongMatch {
		t.Errorf("expected strong match with bond 72, got %+v", got)
	}
}

func TestServiceScoreForPair_IgnoresOtherGroomsBond(t *testing.T) {
	svc, _, _, assignments, _ := newTestService()
	ctx := context.Background()

	// horse 1 is bonded to groom 2, so groom 1 scores with bond 0
	assignments.active[1] = &domain.GroomAssignment{ID: 1, GroomID: 2, HorseID: 1, BondScore: 90}

	got, err := svc.ScoreForPair(ctx, 1, 1)
	if err != nil {
		t.Fatalf("ScoreForPair returned error: %v", err)
	}
	if got.IsStrongMatch {
		t.Errorf("bond from another groom's assignment leaked in: %+v", got)
	}
	if !got.IsMatch {
		t.Errorf("calm/spirited should still be a regular match, got %+v", got)
	}
}

func TestServiceScoreForPair_UnknownGroom(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	if _, err := svc.ScoreForPair(context.Background(), 404, 1); err == nil {
		t.Fatal("expected error for unknown groom")
	}
}

func TestServicePreview_GarbageInputIsNeutral(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	got := svc.Preview("Grumpy", "UnknownTemperament", 90)
	if got.Evaluated || got.IsMatch || got.TraitModifierScore != 0 {
		t.Errorf("garbage input should score neutral, got %+v", got)
	}

	// parsing is case-insensitive for known values
	known := svc.Preview("CALM", "Spirited", 65)
	if !known.IsStrongMatch {
		t.Errorf("case-insensitive parse failed, got %+v", known)
	}
}

func TestServiceGroomsForTemperament_OrderAndScope(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := context.Background()

	// spirited suits calm (preferred) then assertive; Mara belongs to
	// another user and must not appear
	got, err := svc.GroomsForTemperament(ctx, "spirited", 10)
	if err != nil {
		t.Fatalf("GroomsForTemperament returned error: %v", err)
	}

	wantNames := []string{"Wren", "Odette"}
	if len(got) != len(wantNames) {
		t.Fatalf("got %d grooms, want %d (%v)", len(got), len(wantNames), got)
	}
	for i, name := range wantNames {
		if got[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestServiceGroomsForTemperament_Unknown(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	got, err := svc.GroomsForTemperament(context.Background(), "UnknownTemperament", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("unknown temperament should yield no grooms, got %v", got)
	}
}

func TestServiceTraitProbabilityForGroom(t *testing.T) {
	svc, _, _, _, traitRepo := newTestService()
	ctx := context.Background()

	traitRepo.store[1] = domain.BonusTraitMap{"sensitive": 0.2}

	got, err := svc.TraitProbabilityForGroom(ctx, 1, "sensitive", 0.1, 80, 0.9)
	if err != nil {
		t.Fatalf("TraitProbabilityForGroom returned error: %v", err)
	}
	if !got.BonusApplied || !almostEqual(got.FinalProbability, 0.3) {
		t.Errorf("expected applied bonus with final 0.3, got %+v", got)
	}

	// groom without a stored map gets base probability back
	plain, err := svc.TraitProbabilityForGroom(ctx, 2, "sensitive", 0.1, 80, 0.9)
	if err != nil {
		t.Fatalf("TraitProbabilityForGroom returned error: %v", err)
	}
	if plain.BonusApplied || !almostEqual(plain.FinalProbability, 0.1) {
		t.Errorf("expected plain base probability, got %+v", plain)
	}
}

func TestServiceBreakdown(t *testing.T) {
	svc, _, _, assignments, traitRepo := newTestService()
	ctx := context.Background()

	assignments.active[1] = &domain.GroomAssignment{ID: 1, GroomID: 1, HorseID: 1, BondScore: 65}
	traitRepo.store[1] = domain.BonusTraitMap{"sensitive": 0.2}

	got, err := svc.Breakdown(ctx, 1, 1)
	if err != nil {
		t.Fatalf("Breakdown returned error: %v", err)
	}

	if got.MatchQuality != MatchPreferred {
		t.Errorf("MatchQuality = %q, want %q", got.MatchQuality, MatchPreferred)
	}
	if !got.StrongBond {
		t.Error("StrongBond = false, want true at bond 65")
	}
	if !got.Result.IsStrongMatch {
		t.Errorf("Result should be a strong match, got %+v", got.Result)
	}
	if got.BonusTraits["sensitive"] != 0.2 {
		t.Errorf("BonusTraits = %v, want sensitive=0.2", got.BonusTraits)
	}
}
