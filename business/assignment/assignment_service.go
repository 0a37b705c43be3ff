package assignment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stableCraft/domain"
	"stableCraft/pkg/logger"
)

// AssignmentRepository contract interface
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.GroomAssignment) error
	FindByID(ctx context.Context, id uint) (domain.GroomAssignment, error)
	FindByHorseID(ctx context.Context, horseID uint) ([]domain.GroomAssignment, error)
	FindActiveByHorseID(ctx context.Context, horseID uint) (*domain.GroomAssignment, error)
	End(ctx context.Context, id uint, endedAt time.Time) error
}

type HorseReader interface {
	FindByID(ctx context.Context, id uint) (domain.Horse, error)
}

type GroomReader interface {
	FindByID(ctx context.Context, id uint) (domain.Groom, error)
}

type assignmentService struct {
	assignmentRepo AssignmentRepository
	horseRepo      HorseReader
	groomRepo      GroomReader
}

func NewAssignmentService(assignmentRepo AssignmentRepository, horseRepo HorseReader, groomRepo GroomReader) *assignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		horseRepo:      horseRepo,
		groomRepo:      groomRepo,
	}
}

// AssignGroom pairs a groom with a horse. A horse holds at most one active
// assignment, so any current one is ended first; re-assigning the groom who
// already holds the horse is rejected to keep the accrued bond.
func (s *assignmentService) AssignGroom(ctx context.Context, groomID, horseID, userID uint) (*domain.GroomAssignment, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when assigning groom")
		return nil, fmt.Errorf("context error: %w", err)
	}

	groom, err := s.groomRepo.FindByID(ctx, groomID)
	if err != nil {
		logger.Error("groom not found when assigning", err)
		return nil, errors.New("groom not found")
	}
	if groom.UserID != userID {
		logger.Error("groom does not belong to requesting user", "groom_id", groomID, "user_id", userID)
		return nil, errors.New("groom not found")
	}

	horse, err := s.horseRepo.FindByID(ctx, horseID)
	if err != nil {
		logger.Error("horse not found when assigning", err)
		return nil, errors.New("horse not found")
	}
	if horse.UserID != userID {
		logger.Error("horse does not belong to requesting user", "horse_id", horseID, "user_id", userID)
		return nil, errors.New("horse not found")
	}

	active, err := s.assignmentRepo.FindActiveByHorseID(ctx, horseID)
	if err != nil {
		logger.Error("failed to check active assignment", err)
		return nil, fmt.Errorf("failed to check active assignment: %w", err)
	}

	if active != nil {
		if active.GroomID == groomID {
			logger.Error("groom already assigned to horse", "groom_id", groomID, "horse_id", horseID)
			return nil, errors.New("groom is already assigned to this horse")
		}
		if err := s.assignmentRepo.End(ctx, active.ID, time.Now()); err != nil {
			logger.Error("failed to end previous assignment", err)
			return nil, fmt.Errorf("failed to end previous assignment: %w", err)
		}
	}

	assignment := &domain.GroomAssignment{
		GroomID:   groomID,
		HorseID:   horseID,
		BondScore: 0,
		StartedAt: time.Now(),
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		logger.Error("failed to create assignment", err)
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	logger.Info("groom assigned successfully", "groom_id", groomID, "horse_id", horseID)

	return assignment, nil
}

func (s *assignmentService) EndAssignment(ctx context.Context, assignmentID, userID uint) (*domain.GroomAssignment, error) {
	if assignmentID == 0 {
		logger.Error("invalid assignment id")
		return nil, errors.New("invalid assignment id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when ending assignment")
		return nil, fmt.Errorf("context error: %w", err)
	}

	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		logger.Error("assignment not found", err)
		return nil, errors.New("assignment not found")
	}

	horse, err := s.horseRepo.FindByID(ctx, assignment.HorseID)
	if err != nil {
		logger.Error("horse not found when ending assignment", err)
		return nil, errors.New("assignment not found")
	}
	if horse.UserID != userID {
		logger.Error("assignment does not belong to requesting user", "assignment_id", assignmentID, "user_id", userID)
		return nil, errors.New("assignment not found")
	}

	if !assignment.Active() {
		logger.Error("assignment already ended", "assignment_id", assignmentID)
		return nil, errors.New("assignment already ended")
	}

	if err := s.assignmentRepo.End(ctx, assignmentID, time.Now()); err != nil {
		logger.Error("failed to end assignment", err)
		return nil, fmt.Errorf("failed to end assignment: %w", err)
	}

	ended, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		logger.Error("failed to fetch ended assignment", err)
		return nil, fmt.Errorf("failed to fetch ended assignment: %w", err)
	}

	logger.Info("assignment ended success", "assignment_id", assignmentID)

	return &ended, nil
}

// GetAssignmentsByHorse returns a horse's assignment history, owner-scoped.
func (s *assignmentService) GetAssignmentsByHorse(ctx context.Context, horseID, userID uint) ([]domain.GroomAssignment, error) {
	if horseID == 0 {
		logger.Error("invalid horse id when listing assignments")
		return nil, errors.New("invalid horse id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing assignments")
		return nil, fmt.Errorf("context error: %w", err)
	}

	horse, err := s.horseRepo.FindByID(ctx, horseID)
	if err != nil {
		logger.Error("horse not found when listing assignments", err)
		return nil, errors.New("horse not found")
	}
	if horse.UserID != userID {
		logger.Error("horse does not belong to requesting user", "horse_id", horseID, "user_id", userID)
		return nil, errors.New("horse not found")
	}

	return s.assignmentRepo.FindByHorseID(ctx, horseID)
}
