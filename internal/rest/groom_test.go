//go:build !integration

package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stableCraft/business/compat"
	"stableCraft/domain"

	"github.com/labstack/echo/v4"
)

type stubGroomService struct {
	created *domain.Groom
	err     error
}

func (s *stubGroomService) CreateGroom(ctx context.Context, groom *domain.Groom) (*domain.Groom, error) {
	if s.err != nil {
		return nil, s.err
	}
	groom.ID = 1
	s.created = groom
	return groom, nil
}

func (s *stubGroomService) GetGroomsByUser(ctx context.Context, userID uint) ([]domain.Groom, error) {
	return nil, s.err
}

func (s *stubGroomService) GetGroomByID(ctx context.Context, id, userID uint) (*domain.Groom, error) {
	return nil, s.err
}

func (s *stubGroomService) UpdateGroom(ctx context.Context, groom *domain.Groom, userID uint) (*domain.Groom, error) {
	return groom, s.err
}

func (s *stubGroomService) DeleteGroom(ctx context.Context, id, userID uint) error {
	return s.err
}

type stubRegistry struct {
	traits    domain.BonusTraitMap
	assignErr error
	assigned  domain.BonusTraitMap
}

func (r *stubRegistry) Assign(ctx context.Context, groomID uint, traits domain.BonusTraitMap) (domain.BonusTraitMap, error) {
	if r.assignErr != nil {
		return nil, r.assignErr
	}
	r.assigned = traits
	return traits, nil
}

func (r *stubRegistry) Get(ctx context.Context, groomID uint) (domain.BonusTraitMap, error) {
	if r.traits == nil {
		return domain.BonusTraitMap{}, nil
	}
	return r.traits, nil
}

func newGroomContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateGroom(t *testing.T) {
	svc := &stubGroomService{}
	h := NewGroomHandler(svc, &stubRegistry{})

	body := `{"name":"Willem","personality":"calm","skill_level":4}`
	c, rec := newGroomContext(t, http.MethodPost, "/api/v1/grooms", body)
	c.Set("user_id", uint(10))

	if err := h.CreateGroom(c); err != nil {
		t.Fatalf("CreateGroom returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.created == nil || svc.created.UserID != 10 {
		t.Errorf("groom not created for caller: %+v", svc.created)
	}
	if svc.created.Personality != domain.PersonalityCalm {
		t.Errorf("personality = %q, want calm", svc.created.Personality)
	}
}

func TestAssignBonusTraits(t *testing.T) {
	t.Run("constraint violation maps to 422", func(t *testing.T) {
		reg := &stubRegistry{
			assignErr: fmt.Errorf("%w: 4 traits exceeds max 3", compat.ErrBonusTraitConstraint),
		}
		h := NewGroomHandler(&stubGroomService{}, reg)

		body := `{"traits":{"sensitive":0.2,"confident":0.1,"social":0.1,"steady":0.1}}`
		c, rec := newGroomContext(t, http.MethodPut, "/api/v1/grooms/7/bonus-traits", body)
		c.SetPath("/grooms/:id/bonus-traits")
		c.SetParamNames("id")
		c.SetParamValues("7")

		if err := h.AssignBonusTraits(c); err != nil {
			t.Fatalf("AssignBonusTraits returned error: %v", err)
		}
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "exceeds max") {
			t.Errorf("body missing constraint detail: %s", rec.Body.String())
		}
	})

	t.Run("valid map stored", func(t *testing.T) {
		reg := &stubRegistry{}
		h := NewGroomHandler(&stubGroomService{}, reg)

		body := `{"traits":{"sensitive":0.2}}`
		c, rec := newGroomContext(t, http.MethodPut, "/api/v1/grooms/7/bonus-traits", body)
		c.SetPath("/grooms/:id/bonus-traits")
		c.SetParamNames("id")
		c.SetParamValues("7")

		if err := h.AssignBonusTraits(c); err != nil {
			t.Fatalf("AssignBonusTraits returned error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if reg.assigned["sensitive"] != 0.2 {
			t.Errorf("assigned = %v, want sensitive 0.2", reg.assigned)
		}
	})

	t.Run("non numeric id rejected", func(t *testing.T) {
		h := NewGroomHandler(&stubGroomService{}, &stubRegistry{})

		body := `{"traits":{"sensitive":0.2}}`
		c, rec := newGroomContext(t, http.MethodPut, "/api/v1/grooms/seven/bonus-traits", body)
		c.SetPath("/grooms/:id/bonus-traits")
		c.SetParamNames("id")
		c.SetParamValues("seven")

		if err := h.AssignBonusTraits(c); err != nil {
			t.Fatalf("AssignBonusTraits returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGetBonusTraits(t *testing.T) {
	reg := &stubRegistry{traits: domain.BonusTraitMap{"show_calm": 0.15}}
	h := NewGroomHandler(&stubGroomService{}, reg)

	c, rec := newGroomContext(t, http.MethodGet, "/api/v1/grooms/7/bonus-traits", "")
	c.SetPath("/grooms/:id/bonus-traits")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.GetBonusTraits(c); err != nil {
		t.Fatalf("GetBonusTraits returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "show_calm") {
		t.Errorf("body missing trait: %s", rec.Body.String())
	}
}
