package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mangrovewatch/guardian-system/internal/core/ports"
)

// AchievementHandler serves the achievement catalog.
type AchievementHandler struct {
	repo ports.AchievementRepository
}

func NewAchievementHandler(repo ports.AchievementRepository) *AchievementHandler {
	return &AchievementHandler{repo: repo}
}

// List handles GET /api/achievements.
//
// @Summary      List the achievement catalog
// @Tags         achievements
// @Produce      json
// @Success      200  {array}  domain.Achievement
// @Router       /api/achievements [get]
func (h *AchievementHandler) List(c echo.Context) error {
	achievements, err := h.repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, achievements)
}
