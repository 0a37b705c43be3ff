package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"stableCraft/business/milestone"
	"stableCraft/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	MilestoneHandler struct {
		validate         *validator.Validate
		milestoneService MilestoneService
	}

	MilestoneService interface {
		Evaluate(ctx context.Context, horseID uint, milestoneType domain.MilestoneType, userID uint) (domain.TraitMilestone, error)
		ListByHorse(ctx context.Context, horseID, userID uint) ([]domain.TraitMilestone, error)
	}

	EvaluateMilestoneRequest struct {
		HorseID       uint   `json:"horse_id" validate:"required"`
		MilestoneType string `json:"milestone_type" validate:"required"`
	}

	ListMilestonesQuery struct {
		HorseID uint `query:"horse_id" validate:"required"`
	}
)

func NewMilestoneHandler(svc MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{
		validate:         validator.New(),
		milestoneService: svc,
	}
}

// Evaluate runs a developmental milestone for a foal and records the
// outcome. A milestone runs once per horse.
func (h *MilestoneHandler) Evaluate(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req EvaluateMilestoneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	milestoneType := domain.MilestoneType(strings.ToLower(strings.TrimSpace(req.MilestoneType)))

	result, err := h.milestoneService.Evaluate(c.Request().Context(), req.HorseID, milestoneType, userID)
	if err != nil {
		switch {
		case errors.Is(err, milestone.ErrUnknownMilestoneType):
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		case errors.Is(err, milestone.ErrNotHorseOwner):
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		case errors.Is(err, milestone.ErrAlreadyEvaluated),
			errors.Is(err, milestone.ErrWindowNotOpen):
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		case strings.Contains(err.Error(), "not found"):
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(result))
}

// GET /api/v1/milestones?horse_id=1
func (h *MilestoneHandler) ListByHorse(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q ListMilestonesQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	milestones, err := h.milestoneService.ListByHorse(c.Request().Context(), q.HorseID, userID)
	if err != nil {
		switch {
		case errors.Is(err, milestone.ErrNotHorseOwner):
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		case strings.Contains(err.Error(), "not found"):
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(milestones))
}

// Types lists the developmental windows so clients can render a plan
// without hardcoding the schedule.
func (h *MilestoneHandler) Types(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(milestone.Types()))
}
