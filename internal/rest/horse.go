package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"stableCraft/domain"
	"stableCraft/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HorseService interface {
	CreateHorse(ctx context.Context, horse *domain.Horse) (*domain.Horse, error)
	GetHorsesByUser(ctx context.Context, userID uint) ([]domain.Horse, error)
	GetHorseByID(ctx context.Context, id, userID uint) (*domain.Horse, error)
	UpdateHorse(ctx context.Context, horse *domain.Horse, userID uint) (*domain.Horse, error)
	DeleteHorse(ctx context.Context, id, userID uint) error
}

type HorseHandler struct {
	horseService HorseService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewHorseHandler(horseService HorseService) *HorseHandler {
	return &HorseHandler{
		horseService: horseService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type CreateHorseRequest struct {
	Name        string    `json:"name" validate:"required"`
	Temperament string    `json:"temperament" validate:"required"`
	DateOfBirth time.Time `json:"date_of_birth" validate:"required"`
	StressLevel float64   `json:"stress_level" validate:"gte=0"`
}

type UpdateHorseRequest struct {
	Name        string  `json:"name" validate:"required"`
	Temperament string  `json:"temperament" validate:"required"`
	StressLevel float64 `json:"stress_level" validate:"gte=0"`
}

func (h *HorseHandler) CreateHorse(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CreateHorseRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate horse request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	horse := &domain.Horse{
		UserID:      userID,
		Name:        req.Name,
		Temperament: domain.ParseTemperament(req.Temperament),
		DateOfBirth: req.DateOfBirth,
		StressLevel: req.StressLevel,
	}

	newHorse, err := h.horseService.CreateHorse(ctx, horse)
	if err != nil {
		logger.Error("Failed to create horse", err)
		// Check if it's a validation error
		if err.Error() == "horse name is required" ||
			err.Error() == "unknown temperament" ||
			err.Error() == "date of birth is required" ||
			err.Error() == "date of birth cannot be in the future" ||
			err.Error() == "stress level cannot be negative" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Horse successfully created",
		"horse":   newHorse,
	})
}

func (h *HorseHandler) GetAllHorses(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	horses, err := h.horseService.GetHorsesByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to find all horses", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get all horses",
		"horses":  horses,
	})
}

func (h *HorseHandler) GetHorseByID(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	horseIDStr := c.Param("id")

	horseID, err := strconv.ParseUint(horseIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid horse id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	horse, err := h.horseService.GetHorseByID(ctx, uint(horseID), userID)
	if err != nil {
		if err.Error() == "horse not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "invalid horse id" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find horse by id",
		"horse":   horse,
	})
}

func (h *HorseHandler) UpdateHorse(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	horseIDStr := c.Param("id")

	horseID, err := strconv.ParseUint(horseIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid horse id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req UpdateHorseRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate horse request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	horse := &domain.Horse{
		ID:          uint(horseID),
		Name:        req.Name,
		Temperament: domain.ParseTemperament(req.Temperament),
		StressLevel: req.StressLevel,
	}

	updatedHorse, err := h.horseService.UpdateHorse(ctx, horse, userID)
	if err != nil {
		logger.Error("Failed to update horse", err)
		if err.Error() == "horse not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "horse ID is required" ||
			err.Error() == "horse name is required" ||
			err.Error() == "unknown temperament" ||
			err.Error() == "stress level cannot be negative" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update horse",
		"horse":   updatedHorse,
	})
}

func (h *HorseHandler) DeleteHorse(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	horseIDStr := c.Param("id")

	horseID, err := strconv.ParseUint(horseIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid horse id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.horseService.DeleteHorse(ctx, uint(horseID), userID)
	if err != nil {
		logger.Error("Failed to delete horse", err)
		if err.Error() == "horse not found" || err.Error() == "invalid horse id" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "horse successfully deleted",
		"horse_id": horseID,
	})
}
