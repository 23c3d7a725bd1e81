package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mangrovewatch/guardian-system/internal/core/ports"
)

// UserHandler serves the read side of user progress and community stats.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Location       *string `json:"location"       validate:"omitempty,max=120"`
	ProfilePicture *string `json:"profilePicture" validate:"omitempty,url"`
}

// UpdateProfile handles PATCH /api/users/:id. Users can only edit their own
// profile.
//
// @Summary      Update a user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                true  "User id"
// @Param        body  body  updateProfileRequest  true  "Profile fields to change"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if userID != c.Param("id") {
		return echo.NewHTTPError(http.StatusForbidden, "cannot edit another user's profile")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), userID, ports.UserPatch{
		Location:       req.Location,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Stats handles GET /api/users/:id/stats.
//
// @Summary      Get a user's progress stats
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  ports.UserStats
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id}/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Achievements handles GET /api/users/:id/achievements.
//
// @Summary      List a user's earned achievements
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "User id"
// @Success      200  {array}  ports.EarnedAchievement
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id}/achievements [get]
func (h *UserHandler) Achievements(c echo.Context) error {
	earned, err := h.service.Achievements(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, earned)
}

// Leaderboard handles GET /api/leaderboard?limit=.
//
// @Summary      Top users by points
// @Tags         users
// @Produce      json
// @Param        limit  query  int  false  "Max entries (default 10)"
// @Success      200  {array}  domain.User
// @Router       /api/leaderboard [get]
func (h *UserHandler) Leaderboard(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}

	users, err := h.service.Leaderboard(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Dashboard handles GET /api/dashboard/stats.
//
// @Summary      Community-wide dashboard counters
// @Tags         users
// @Produce      json
// @Success      200  {object}  ports.DashboardStats
// @Router       /api/dashboard/stats [get]
func (h *UserHandler) Dashboard(c echo.Context) error {
	stats, err := h.service.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
