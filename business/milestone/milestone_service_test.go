//go:build !integration

package milestone

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"stableCraft/domain"
)

type fakeHorseRepo struct {
	horses map[uint]domain.Horse
	stress map[uint]float64
}

func (f *fakeHorseRepo) FindByID(_ context.Context, id uint) (domain.Horse, error) {
	h, ok := f.horses[id]
	if !ok {
		return domain.Horse{}, errors.New("horse not found")
	}
	return h, nil
}

func (f *fakeHorseRepo) UpdateStressLevel(_ context.Context, id uint, stressLevel float64) error {
	f.stress[id] = stressLevel
	return nil
}

type fakeGroomRepo struct {
	grooms map[uint]domain.Groom
}

func (f *fakeGroomRepo) FindByID(_ context.Context, id uint) (domain.Groom, error) {
	g, ok := f.grooms[id]
	if !ok {
		return domain.Groom{}, errors.New("groom not found")
	}
	return g, nil
}

type fakeAssignmentRepo struct {
	assignment *domain.GroomAssignment
	bondWrites map[uint]int
}

func (f *fakeAssignmentRepo) FindLatestOverlapping(_ context.Context, horseID uint, from, to time.Time) (*domain.GroomAssignment, error) {
	if f.assignment == nil || f.assignment.HorseID != horseID {
		return nil, nil
	}
	return f.assignment, nil
}

func (f *fakeAssignmentRepo) UpdateBondScore(_ context.Context, id uint, bondScore int) error {
	f.bondWrites[id] = bondScore
	return nil
}

type fakeMilestoneRepo struct {
	records []domain.TraitMilestone
}

func (f *fakeMilestoneRepo) Create(_ context.Context, m *domain.TraitMilestone) error {
	m.ID = uint(len(f.records) + 1)
	f.records = append(f.records, *m)
	return nil
}

func (f *fakeMilestoneRepo) FindByHorseAndType(_ context.Context, horseID uint, mt domain.MilestoneType) (*domain.TraitMilestone, error) {
	for i := range f.records {
		if f.records[i].HorseID == horseID && f.records[i].MilestoneType == mt {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeMilestoneRepo) FindByHorseID(_ context.Context, horseID uint) ([]domain.TraitMilestone, error) {
	var out []domain.TraitMilestone
	for _, r := range f.records {
		if r.HorseID == horseID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeTraitSource struct {
	maps map[uint]domain.BonusTraitMap
}

func (f *fakeTraitSource) Get(_ context.Context, groomID uint) (domain.BonusTraitMap, error) {
	m, ok := f.maps[groomID]
	if !ok {
		return domain.BonusTraitMap{}, nil
	}
	return m, nil
}

type milestoneFixture struct {
	svc         *Service
	horses      *fakeHorseRepo
	assignments *fakeAssignmentRepo
	milestones  *fakeMilestoneRepo
}

// newFixture wires a three-day-old spirited foal owned by user 10, groomed
// since birth by a calm groom at bond 80 whose registry grants +0.20 on
// "sensitive".
func newFixture(bond int) milestoneFixture {
	dob := time.Now().AddDate(0, 0, -3)

	horses := &fakeHorseRepo{
		horses: map[uint]domain.Horse{
			1: {ID: 1, UserID: 10, Name: "Ember", Temperament: domain.TemperamentSpirited, DateOfBirth: dob, StressLevel: 20},
		},
		stress: map[uint]float64{},
	}
	grooms := &fakeGroomRepo{
		grooms: map[uint]domain.Groom{
			7: {ID: 7, UserID: 10, Name: "Wren", Personality: domain.PersonalityCalm},
		},
	}
	assignments := &fakeAssignmentRepo{
		assignment: &domain.GroomAssignment{ID: 3, GroomID: 7, HorseID: 1, BondScore: bond, StartedAt: dob},
		bondWrites: map[uint]int{},
	}
	mrepo := &fakeMilestoneRepo{}
	traits := &fakeTraitSource{
		maps: map[uint]domain.BonusTraitMap{
			7: {"sensitive": 0.2},
		},
	}

	svc := NewService(horses, grooms, assignments, mrepo, traits)
	return milestoneFixture{svc: svc, horses: horses, assignments: assignments, milestones: mrepo}
}

func TestEvaluate_StrongMatchAcquiresTrait(t *testing.T) {
	fx := newFixture(80)
	fx.svc.roll = func() float64 { return 0.40 }

	got, err := fx.svc.Evaluate(context.Background(), 1, domain.MilestoneImprinting, 10)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if got.FinalScore != 52 {
		t.Errorf("FinalScore = %d, want 52", got.FinalScore)
	}
	if math.Abs(got.FinalStress-17.0) > 1e-6 {
		t.Errorf("FinalStress = %v, want 17.0", got.FinalStress)
	}
	if got.BondingRate != 20 {
		t.Errorf("BondingRate = %d, want 20", got.BondingRate)
	}
	if math.Abs(got.Coverage-1.0) > 1e-6 {
		t.Errorf("Coverage = %v, want 1.0", got.Coverage)
	}

	// 0.25 base + 0.20 bonus = 0.45, roll 0.40 hits the first trait
	if got.TraitAcquired != "sensitive" {
		t.Errorf("TraitAcquired = %q, want %q", got.TraitAcquired, "sensitive")
	}
	if !got.BonusApplied {
		t.Error("expected BonusApplied true")
	}

	if len(fx.milestones.records) != 1 {
		t.Fatalf("persisted %d records, want 1", len(fx.milestones.records))
	}
	if fx.assignments.bondWrites[3] != 100 {
		t.Errorf("bond written back = %d, want 100", fx.assignments.bondWrites[3])
	}
	if math.Abs(fx.horses.stress[1]-17.0) > 1e-6 {
		t.Errorf("stress written back = %v, want 17.0", fx.horses.stress[1])
	}
	if got.Context == nil {
		t.Fatal("expected evaluation context to be recorded")
	}
	if got.Context["bond_score"] != 80 {
		t.Errorf("context bond_score = %v, want 80", got.Context["bond_score"])
	}
}

func TestEvaluate_HighRollAcquiresNothing(t *testing.T) {
	fx := newFixture(80)
	fx.svc.roll = func() float64 { return 0.99 }

	got, err := fx.svc.Evaluate(context.Background(), 1, domain.MilestoneImprinting, 10)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if got.TraitAcquired != "" {
		t.Errorf("TraitAcquired = %q, want empty", got.TraitAcquired)
	}
	if got.BonusApplied {
		t.Error("expected BonusApplied false when nothing was acquired")
	}
	// the milestone numbers still apply even when no trait lands
	if got.FinalScore != 52 {
		t.Errorf("FinalScore = %d, want 52", got.FinalScore)
	}
}

func TestEvaluate_LowBondRollsBaseProbability(t *testing.T) {
	fx := newFixture(40)
	fx.svc.roll = func() float64 { return 0.30 }

	got, err := fx.svc.Evaluate(context.Background(), 1, domain.MilestoneImprinting, 10)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	// bond 40 gates the bonus, so "sensitive" stays at 0.25 and a 0.30
	// roll misses it; "confident" at 0.15 misses too
	if got.TraitAcquired != "" {
		t.Errorf("TraitAcquired = %q, want empty", got.TraitAcquired)
	}
	// regular match still shapes the milestone
	if got.FinalScore != 51 {
		t.Errorf("FinalScore = %d, want 51", got.FinalScore)
	}
	if got.BondingRate != 15 {
		t.Errorf("BondingRate = %d, want 15", got.BondingRate)
	}
}

func TestEvaluate_NoAssignmentNeutralPath(t *testing.T) {
	fx := newFixture(80)
	fx.assignments.assignment = nil
	fx.svc.roll = func() float64 { return 0.20 }

	got, err := fx.svc.Evaluate(context.Background(), 1, domain.MilestoneImprinting, 10)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if got.GroomID != 0 {
		t.Errorf("GroomID = %d, want 0", got.GroomID)
	}
	if got.FinalScore != 50 {
		t.Errorf("FinalScore = %d, want unmodified 50", got.FinalScore)
	}
	if got.BondingRate != baseBondingRate {
		t.Errorf("BondingRate = %d, want %d", got.BondingRate, baseBondingRate)
	}
	if math.Abs(got.FinalStress-20.0) > 1e-6 {
		t.Errorf("FinalStress = %v, want untouched 20.0", got.FinalStress)
	}
	if got.Coverage != 0 {
		t.Errorf("Coverage = %v, want 0", got.Coverage)
	}

	// base probability still rolls: 0.20 < 0.25 acquires "sensitive"
	if got.TraitAcquired != "sensitive" {
		t.Errorf("TraitAcquired = %q, want %q", got.TraitAcquired, "sensitive")
	}
	if got.BonusApplied {
		t.Error("expected BonusApplied false without an assignment")
	}
	if len(fx.assignments.bondWrites) != 0 {
		t.Errorf("expected no bond writes, got %v", fx.assignments.bondWrites)
	}
}

func TestEvaluate_Rejections(t *testing.T) {
	t.Run("unknown milestone type", func(t *testing.T) {
		fx := newFixture(80)
		_, err := fx.svc.Evaluate(context.Background(), 1, domain.MilestoneType("weaning"), 10)
		if !errors.Is(err, ErrUnknownMilestoneType) {
			t.Errorf("error = %v, want ErrUnknownMilestoneType", err)
		}
	})

	t.Run("horse owned by someone else", func(t *testing.T) {
		fx := newFixture(80)
		_, err := fx.svc.Evaluate(context.Background(), 1, domain.MilestoneImprinting, 99)
		if !errors.Is(err, ErrNotHorseOwner) {
			t.Errorf("error = %v, want ErrNotHorseOwner", err)
		}
	})

	t.Run("window not open yet", func(t *testing.T) {
		fx := newFixture(80)
		_, err := fx.svc.Evaluate(context.Background(), 1, domain.MilestoneGroundManners, 10)
		if !errors.Is(err, ErrWindowNotOpen) {
			t.Errorf("error = %v, want ErrWindowNotOpen", err)
		}
	})

	t.Run("already evaluated", func(t *testing.T) {
		fx := newFixture(80)
		fx.svc.roll = func() float64 { return 0.99 }

		if _, err := fx.svc.Evaluate(context.Background(), 1, domain.MilestoneImprinting, 10); err != nil {
			t.Fatalf("first Evaluate() error = %v", err)
		}
		_, err := fx.svc.Evaluate(context.Background(), 1, domain.MilestoneImprinting, 10)
		if !errors.Is(err, ErrAlreadyEvaluated) {
			t.Errorf("error = %v, want ErrAlreadyEvaluated", err)
		}
		if len(fx.milestones.records) != 1 {
			t.Errorf("persisted %d records, want 1", len(fx.milestones.records))
		}
	})
}

func TestEvaluate_LateEvaluationAllowed(t *testing.T) {
	fx := newFixture(80)
	fx.svc.roll = func() float64 { return 0.99 }

	// foal is 3 days old but we push DOB back so imprinting closed long ago
	h := fx.horses.horses[1]
	h.DateOfBirth = time.Now().AddDate(0, 0, -40)
	fx.horses.horses[1] = h
	fx.assignments.assignment.StartedAt = h.DateOfBirth

	got, err := fx.svc.Evaluate(context.Background(), 1, domain.MilestoneImprinting, 10)
	if err != nil {
		t.Fatalf("Evaluate() after window close error = %v", err)
	}
	if math.Abs(got.Coverage-1.0) > 1e-6 {
		t.Errorf("Coverage = %v, want 1.0", got.Coverage)
	}
}

func TestEvaluate_StressNeverBelowZero(t *testing.T) {
	fx := newFixture(80)
	fx.svc.roll = func() float64 { return 0.99 }

	h := fx.horses.horses[1]
	h.StressLevel = 0
	fx.horses.horses[1] = h

	got, err := fx.svc.Evaluate(context.Background(), 1, domain.MilestoneImprinting, 10)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got.FinalStress != 0 {
		t.Errorf("FinalStress = %v, want 0", got.FinalStress)
	}
}

func TestListByHorse(t *testing.T) {
	fx := newFixture(80)
	fx.svc.roll = func() float64 { return 0.99 }

	if _, err := fx.svc.Evaluate(context.Background(), 1, domain.MilestoneImprinting, 10); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	got, err := fx.svc.ListByHorse(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("ListByHorse() error = %v", err)
	}
	if len(got) != 1 || got[0].MilestoneType != domain.MilestoneImprinting {
		t.Errorf("ListByHorse() = %+v, want one imprinting record", got)
	}

	if _, err := fx.svc.ListByHorse(context.Background(), 1, 99); !errors.Is(err, ErrNotHorseOwner) {
		t.Errorf("foreign owner error = %v, want ErrNotHorseOwner", err)
	}
}

func TestTypes_OrderedWindows(t *testing.T) {
	got := Types()
	if len(got) != 5 {
		t.Fatalf("Types() returned %d entries, want 5", len(got))
	}
	if got[0]["milestone_type"] != domain.MilestoneImprinting {
		t.Errorf("first type = %v, want imprinting", got[0]["milestone_type"])
	}
	if got[4]["milestone_type"] != domain.MilestoneGroundManners {
		t.Errorf("last type = %v, want ground_manners", got[4]["milestone_type"])
	}
	if got[0]["end_day"] != 7 {
		t.Errorf("imprinting end_day = %v, want 7", got[0]["end_day"])
	}
}
