package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"stableCraft/business/compat"
	"stableCraft/domain"
	"stableCraft/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type GroomService interface {
	CreateGroom(ctx context.Context, groom *domain.Groom) (*domain.Groom, error)
	GetGroomsByUser(ctx context.Context, userID uint) ([]domain.Groom, error)
	GetGroomByID(ctx context.Context, id, userID uint) (*domain.Groom, error)
	UpdateGroom(ctx context.Context, groom *domain.Groom, userID uint) (*domain.Groom, error)
	DeleteGroom(ctx context.Context, id, userID uint) error
}

// BonusTraitRegistry manages per-groom epigenetic trait bonuses. Admin
// routes only.
type BonusTraitRegistry interface {
	Assign(ctx context.Context, groomID uint, traits domain.BonusTraitMap) (domain.BonusTraitMap, error)
	Get(ctx context.Context, groomID uint) (domain.BonusTraitMap, error)
}

type GroomHandler struct {
	groomService GroomService
	bonusTraits  BonusTraitRegistry
	validator    *validator.Validate
	timeout      time.Duration
}

func NewGroomHandler(groomService GroomService, bonusTraits BonusTraitRegistry) *GroomHandler {
	return &GroomHandler{
		groomService: groomService,
		bonusTraits:  bonusTraits,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type CreateGroomRequest struct {
	Name        string `json:"name" validate:"required"`
	Personality string `json:"personality" validate:"required"`
	SkillLevel  int    `json:"skill_level" validate:"gte=0,lte=10"`
}

type UpdateGroomRequest struct {
	Name        string `json:"name" validate:"required"`
	Personality string `json:"personality" validate:"required"`
	SkillLevel  int    `json:"skill_level" validate:"gte=0,lte=10"`
}

type AssignBonusTraitsRequest struct {
	Traits map[string]float64 `json:"traits" validate:"required"`
}

func (h *GroomHandler) CreateGroom(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CreateGroomRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate groom request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	groom := &domain.Groom{
		UserID:      userID,
		Name:        req.Name,
		Personality: domain.ParsePersonality(req.Personality),
		SkillLevel:  req.SkillLevel,
	}

	newGroom, err := h.groomService.CreateGroom(ctx, groom)
	if err != nil {
		logger.Error("Failed to create groom", err)
		// Check if it's a validation error
		if err.Error() == "groom name is required" ||
			err.Error() == "unknown personality" ||
			err.Error() == "skill level must be between 1 and 10" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Groom successfully created",
		"groom":   newGroom,
	})
}

func (h *GroomHandler) GetAllGrooms(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	grooms, err := h.groomService.GetGroomsByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to find all grooms", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get all grooms",
		"grooms":  grooms,
	})
}

func (h *GroomHandler) GetGroomByID(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	groomIDStr := c.Param("id")

	groomID, err := strconv.ParseUint(groomIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid groom id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	groom, err := h.groomService.GetGroomByID(ctx, uint(groomID), userID)
	if err != nil {
		if err.Error() == "groom not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "invalid groom id" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find groom by id",
		"groom":   groom,
	})
}

func (h *GroomHandler) UpdateGroom(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	groomIDStr := c.Param("id")

	groomID, err := strconv.ParseUint(groomIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid groom id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req UpdateGroomRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate groom request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	groom := &domain.Groom{
		ID:          uint(groomID),
		Name:        req.Name,
		Personality: domain.ParsePersonality(req.Personality),
		SkillLevel:  req.SkillLevel,
	}

	updatedGroom, err := h.groomService.UpdateGroom(ctx, groom, userID)
	if err != nil {
		logger.Error("Failed to update groom", err)
		if err.Error() == "groom not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "groom ID is required" ||
			err.Error() == "groom name is required" ||
			err.Error() == "unknown personality" ||
			err.Error() == "skill level must be between 1 and 10" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update groom",
		"groom":   updatedGroom,
	})
}

func (h *GroomHandler) DeleteGroom(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	groomIDStr := c.Param("id")

	groomID, err := strconv.ParseUint(groomIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid groom id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.groomService.DeleteGroom(ctx, uint(groomID), userID)
	if err != nil {
		logger.Error("Failed to delete groom", err)
		if err.Error() == "groom not found" || err.Error() == "invalid groom id" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "groom successfully deleted",
		"groom_id": groomID,
	})
}

// GetBonusTraits returns the epigenetic trait bonuses registered for a
// groom. Unknown grooms read as an empty map.
func (h *GroomHandler) GetBonusTraits(c echo.Context) error {
	groomIDStr := c.Param("id")

	groomID, err := strconv.ParseUint(groomIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid groom id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	traits, err := h.bonusTraits.Get(ctx, uint(groomID))
	if err != nil {
		logger.Error("Failed to get bonus traits", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get bonus traits",
		"groom_id": groomID,
		"traits":   traits,
	})
}

// AssignBonusTraits replaces a groom's bonus trait map. The registry
// enforces its size and value constraints all or nothing, so a bad map
// leaves the stored one untouched.
func (h *GroomHandler) AssignBonusTraits(c echo.Context) error {
	groomIDStr := c.Param("id")

	groomID, err := strconv.ParseUint(groomIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid groom id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req AssignBonusTraitsRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate bonus traits request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	traits, err := h.bonusTraits.Assign(ctx, uint(groomID), domain.BonusTraitMap(req.Traits))
	if err != nil {
		logger.Error("Failed to assign bonus traits", err)
		if errors.Is(err, compat.ErrBonusTraitConstraint) {
			return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully assign bonus traits",
		"groom_id": groomID,
		"traits":   traits,
	})
}
