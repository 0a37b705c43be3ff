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

type AssignmentService interface {
	AssignGroom(ctx context.Context, groomID, horseID, userID uint) (*domain.GroomAssignment, error)
	EndAssignment(ctx context.Context, assignmentID, userID uint) (*domain.GroomAssignment, error)
	GetAssignmentsByHorse(ctx context.Context, horseID, userID uint) ([]domain.GroomAssignment, error)
}

type AssignmentHandler struct {
	assignmentService AssignmentService
	validator         *validator.Validate
	timeout           time.Duration
}

func NewAssignmentHandler(assignmentService AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		validator:         validator.New(),
		timeout:           10 * time.Second,
	}
}

type AssignGroomRequest struct {
	GroomID uint `json:"groom_id" validate:"required"`
	HorseID uint `json:"horse_id" validate:"required"`
}

func (h *AssignmentHandler) AssignGroom(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req AssignGroomRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate assignment request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	assignment, err := h.assignmentService.AssignGroom(ctx, req.GroomID, req.HorseID, userID)
	if err != nil {
		logger.Error("Failed to assign groom", err)
		if err.Error() == "groom not found" || err.Error() == "horse not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "groom is already assigned to this horse" {
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "Groom successfully assigned",
		"assignment": assignment,
	})
}

func (h *AssignmentHandler) EndAssignment(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	assignmentIDStr := c.Param("id")

	assignmentID, err := strconv.ParseUint(assignmentIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid assignment id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	assignment, err := h.assignmentService.EndAssignment(ctx, uint(assignmentID), userID)
	if err != nil {
		logger.Error("Failed to end assignment", err)
		if err.Error() == "assignment not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "assignment already ended" {
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		}
		if err.Error() == "invalid assignment id" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "Assignment successfully ended",
		"assignment": assignment,
	})
}

func (h *AssignmentHandler) GetAssignmentsByHorse(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	horseIDStr := c.QueryParam("horse_id")
	if horseIDStr == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "horse_id query parameter is required"})
	}

	horseID, err := strconv.ParseUint(horseIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid horse id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	assignments, err := h.assignmentService.GetAssignmentsByHorse(ctx, uint(horseID), userID)
	if err != nil {
		logger.Error("Failed to get assignments", err)
		if err.Error() == "horse not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "invalid horse id" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "successfully get assignments",
		"assignments": assignments,
	})
}
