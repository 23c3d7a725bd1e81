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

type stubUserService struct {
	updateProfileFn func(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error)
}

func (s *stubUserService) Get(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) UpdateProfile(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	return s.updateProfileFn(ctx, id, patch)
}

func (s *stubUserService) Stats(context.Context, string) (*ports.UserStats, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Achievements(context.Context, string) ([]ports.EarnedAchievement, error) {
	return nil, nil
}

func (s *stubUserService) Leaderboard(context.Context, int) ([]*domain.User, error) {
	return nil, nil
}

func (s *stubUserService) Dashboard(context.Context) (*ports.DashboardStats, error) {
	return &ports.DashboardStats{}, nil
}

func TestUserHandler_UpdateProfile_Success(t *testing.T) {
	e := newEchoWithValidator()
	stub := &stubUserService{
		updateProfileFn: func(ctx context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
			if id != "u1" {
				t.Fatalf("unexpected id %q", id)
			}
			if patch.Location == nil || *patch.Location != "Everglades, Florida" {
				t.Fatalf("unexpected patch: %+v", patch)
			}
			return &domain.User{ID: id, Location: *patch.Location}, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/api/users/u1", strings.NewReader(`{"location":"Everglades, Florida"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("u1")
	c.Set("user_id", "u1")
	c.Set("role", "guardian")

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateProfile_ForbidsOtherUsers(t *testing.T) {
	e := newEchoWithValidator()
	handler := NewUserHandler(&stubUserService{
		updateProfileFn: func(context.Context, string, ports.UserPatch) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPatch, "/api/users/u2", strings.NewReader(`{"location":"elsewhere"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("u2")
	c.Set("user_id", "u1")
	c.Set("role", "guardian")

	err := handler.UpdateProfile(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestUserHandler_Leaderboard_InvalidLimit(t *testing.T) {
	e := newEchoWithValidator()
	handler := NewUserHandler(&stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=-3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Leaderboard(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
