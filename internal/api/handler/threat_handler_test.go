package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mangrovewatch/guardian-system/internal/core/domain"
	"github.com/mangrovewatch/guardian-system/internal/core/ports"
)

type stubThreatService struct {
	createFn func(ctx context.Context, input ports.CreateThreatInput) (*domain.Threat, error)
	updateFn func(ctx context.Context, id string, input ports.UpdateThreatInput) (*domain.Threat, error)
	nearbyFn func(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Threat, error)
}

func (s *stubThreatService) Create(ctx context.Context, input ports.CreateThreatInput) (*domain.Threat, error) {
	return s.createFn(ctx, input)
}

func (s *stubThreatService) Get(context.Context, string) (*domain.Threat, error) {
	return nil, domain.ErrThreatNotFound
}

func (s *stubThreatService) List(context.Context, ports.ThreatFilter) ([]*domain.Threat, error) {
	return nil, nil
}

func (s *stubThreatService) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Threat, error) {
	return s.nearbyFn(ctx, lat, lng, radiusKm)
}

func (s *stubThreatService) Update(ctx context.Context, id string, input ports.UpdateThreatInput) (*domain.Threat, error) {
	return s.updateFn(ctx, id, input)
}

func TestThreatHandler_Create_Success(t *testing.T) {
	e := newEchoWithValidator()
	stub := &stubThreatService{
		createFn: func(ctx context.Context, input ports.CreateThreatInput) (*domain.Threat, error) {
			if input.UserID != "u1" {
				t.Fatalf("expected claims user id, got %q", input.UserID)
			}
			if input.IdempotencyKey != "retry-9" {
				t.Fatalf("expected idempotency key from header, got %q", input.IdempotencyKey)
			}
			if input.Type != domain.ThreatLogging || input.Latitude != 9.05 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Threat{ID: "t1", UserID: input.UserID, Status: domain.StatusPending}, nil
		},
	}
	handler := NewThreatHandler(stub, t.TempDir())

	body := strings.NewReader(`{"type":"logging","title":"Chainsaws heard","description":"Machinery at dawn on the north bank","latitude":9.05,"longitude":-79.5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/threats", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Idempotency-Key", "retry-9")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("role", "guardian")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestThreatHandler_Create_MissingClaims(t *testing.T) {
	e := newEchoWithValidator()
	handler := NewThreatHandler(&stubThreatService{}, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/api/threats", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %v", err)
	}
}

func TestThreatHandler_Create_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	handler := NewThreatHandler(&stubThreatService{
		createFn: func(context.Context, ports.CreateThreatInput) (*domain.Threat, error) {
			t.Fatalf("service must not be called on invalid input")
			return nil, nil
		},
	}, t.TempDir())

	// Unknown type and out-of-range latitude.
	body := strings.NewReader(`{"type":"volcano","title":"Short","description":"Too short","latitude":123}`)
	req := httptest.NewRequest(http.MethodPost, "/api/threats", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("role", "guardian")

	err := handler.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestThreatHandler_Update_PassesReviewer(t *testing.T) {
	e := newEchoWithValidator()
	stub := &stubThreatService{
		updateFn: func(ctx context.Context, id string, input ports.UpdateThreatInput) (*domain.Threat, error) {
			if id != "t1" {
				t.Fatalf("unexpected id %q", id)
			}
			if input.ReviewerID != "authority-1" {
				t.Fatalf("expected reviewer from claims, got %q", input.ReviewerID)
			}
			if input.Status == nil || *input.Status != domain.StatusVerified {
				t.Fatalf("expected verified status, got %+v", input.Status)
			}
			return &domain.Threat{ID: id, Status: domain.StatusVerified}, nil
		},
	}
	handler := NewThreatHandler(stub, t.TempDir())

	req := httptest.NewRequest(http.MethodPatch, "/api/threats/t1", strings.NewReader(`{"status":"verified"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	c.Set("user_id", "authority-1")
	c.Set("role", "authority")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestThreatHandler_Nearby(t *testing.T) {
	e := newEchoWithValidator()
	stub := &stubThreatService{
		nearbyFn: func(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Threat, error) {
			if lat != 9.0 || lng != -79.5 {
				t.Fatalf("unexpected point: %v, %v", lat, lng)
			}
			if radiusKm != 10 {
				t.Fatalf("expected default radius 10, got %v", radiusKm)
			}
			return []*domain.Threat{}, nil
		},
	}
	handler := NewThreatHandler(stub, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/api/threats/nearby/9.0/-79.5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("lat", "lng")
	c.SetParamValues("9.0", "-79.5")

	if err := handler.Nearby(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestThreatHandler_Nearby_BadCoordinates(t *testing.T) {
	e := newEchoWithValidator()
	handler := NewThreatHandler(&stubThreatService{}, t.TempDir())

	for _, tc := range [][2]string{
		{"not-a-number", "-79.5"},
		{"95", "-79.5"},
		{"9.0", "-200"},
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/threats/nearby/x/y", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("lat", "lng")
		c.SetParamValues(tc[0], tc[1])

		err := handler.Nearby(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %v", tc, err)
		}
	}
}
