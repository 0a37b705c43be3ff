package rest

import (
	"context"
	"net/http"
	"strings"

	"stableCraft/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	CompatHandler struct {
		validate      *validator.Validate
		compatService CompatService
	}

	CompatService interface {
		ScoreForPair(ctx context.Context, groomID, horseID uint) (domain.CompatibilityResult, error)
		Preview(personality, temperament string, bondScore int) domain.CompatibilityResult
		TraitProbabilityForGroom(ctx context.Context, groomID uint, trait string, baseProbability float64, bondScore int, coverage float64) (domain.TraitProbability, error)
		GroomsForTemperament(ctx context.Context, temperament string, userID uint) ([]domain.Groom, error)
		Breakdown(ctx context.Context, groomID, horseID uint) (domain.CompatibilityBreakdown, error)
	}

	ScorePairQuery struct {
		GroomID uint `query:"groom_id" validate:"required"`
		HorseID uint `query:"horse_id" validate:"required"`
	}

	PreviewRequest struct {
		Personality string `json:"personality"`
		Temperament string `json:"temperament"`
		BondScore   int    `json:"bond_score"`
	}

	GroomsForTemperamentQuery struct {
		Temperament string `query:"temperament" validate:"required"`
	}

	TraitProbabilityRequest struct {
		GroomID         uint    `json:"groom_id" validate:"required"`
		Trait           string  `json:"trait" validate:"required"`
		BaseProbability float64 `json:"base_probability" validate:"gte=0,lte=1"`
		BondScore       int     `json:"bond_score" validate:"gte=0,lte=100"`
		Coverage        float64 `json:"coverage" validate:"gte=0,lte=1"`
	}
)

func NewCompatHandler(svc CompatService) *CompatHandler {
	return &CompatHandler{
		validate:      validator.New(),
		compatService: svc,
	}
}

// GET /api/v1/compatibility/score?groom_id=1&horse_id=2
func (h *CompatHandler) Score(c echo.Context) error {
	var q ScorePairQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	result, err := h.compatService.ScoreForPair(c.Request().Context(), q.GroomID, q.HorseID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// Preview scores raw attribute strings so clients can try pairings that
// are not in storage yet. Unknown strings come back neutral, not as
// errors.
func (h *CompatHandler) Preview(c echo.Context) error {
	var req PreviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	result := h.compatService.Preview(req.Personality, req.Temperament, req.BondScore)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// GET /api/v1/compatibility/grooms?temperament=nervous
func (h *CompatHandler) GroomsForTemperament(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q GroomsForTemperamentQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	grooms, err := h.compatService.GroomsForTemperament(c.Request().Context(), q.Temperament, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(grooms))
}

// GET /api/v1/compatibility/breakdown?groom_id=1&horse_id=2
func (h *CompatHandler) Breakdown(c echo.Context) error {
	var q ScorePairQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	breakdown, err := h.compatService.Breakdown(c.Request().Context(), q.GroomID, q.HorseID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(breakdown))
}

// TraitProbability runs the epigenetic trait check against a groom's
// registered bonuses with caller-supplied bond and coverage inputs.
func (h *CompatHandler) TraitProbability(c echo.Context) error {
	var req TraitProbabilityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	result, err := h.compatService.TraitProbabilityForGroom(
		c.Request().Context(),
		req.GroomID,
		req.Trait,
		req.BaseProbability,
		req.BondScore,
		req.Coverage,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}
