package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mangrovewatch/guardian-system/internal/core/ports"
)

const (
	maxPhotosPerThreat = 5
	defaultRadiusKm    = 10
)

// ThreatHandler handles HTTP requests for threat report operations.
type ThreatHandler struct {
	service   ports.ThreatService
	uploadDir string
}

func NewThreatHandler(service ports.ThreatService, uploadDir string) *ThreatHandler {
	return &ThreatHandler{service: service, uploadDir: uploadDir}
}

// Create handles POST /api/threats. The body is either JSON or a multipart
// form carrying up to five photo files.
//
// @Summary      Submit a threat report
// @Tags         threats
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header  string  false  "Idempotency key to prevent duplicate submissions"
// @Success      201  {object}  domain.Threat
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/threats [post]
func (h *ThreatHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createThreatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	photos, err := h.savePhotos(c)
	if err != nil {
		return err
	}

	threat, err := h.service.Create(c.Request().Context(), toCreateInput(
		req, userID, c.Request().Header.Get("Idempotency-Key"), photos))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, threat)
}

// List handles GET /api/threats with optional status/type/userId filters.
//
// @Summary      List threat reports
// @Tags         threats
// @Produce      json
// @Param        status  query  string  false  "Filter by status"
// @Param        type    query  string  false  "Filter by threat type"
// @Param        userId  query  string  false  "Filter by reporting user"
// @Success      200  {array}  domain.Threat
// @Failure      400  {object}  errorResponse
// @Router       /api/threats [get]
func (h *ThreatHandler) List(c echo.Context) error {
	var q listThreatsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	threats, err := h.service.List(c.Request().Context(), toListFilter(q))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, threats)
}

// Get handles GET /api/threats/:id.
//
// @Summary      Get a threat report
// @Tags         threats
// @Produce      json
// @Param        id  path  string  true  "Threat id"
// @Success      200  {object}  domain.Threat
// @Failure      404  {object}  errorResponse
// @Router       /api/threats/{id} [get]
func (h *ThreatHandler) Get(c echo.Context) error {
	threat, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, threat)
}

// Update handles PATCH /api/threats/:id. Routed behind the authority RBAC
// middleware; status changes go through the transition guard.
//
// @Summary      Review a threat report
// @Tags         threats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "Threat id"
// @Param        body  body  updateThreatRequest  true  "Fields to change"
// @Success      200  {object}  domain.Threat
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/threats/{id} [patch]
func (h *ThreatHandler) Update(c echo.Context) error {
	reviewerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateThreatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	threat, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateInput(req, reviewerID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, threat)
}

// Nearby handles GET /api/threats/nearby/:lat/:lng?radius=.
//
// @Summary      List threats near a point
// @Tags         threats
// @Produce      json
// @Param        lat     path   number  true   "Latitude"
// @Param        lng     path   number  true   "Longitude"
// @Param        radius  query  number  false  "Radius in km (default 10)"
// @Success      200  {array}  domain.Threat
// @Failure      400  {object}  errorResponse
// @Router       /api/threats/nearby/{lat}/{lng} [get]
func (h *ThreatHandler) Nearby(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.Param("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid latitude")
	}
	lng, err := strconv.ParseFloat(c.Param("lng"), 64)
	if err != nil || lng < -180 || lng > 180 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid longitude")
	}

	radius := float64(defaultRadiusKm)
	if raw := c.QueryParam("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid radius")
		}
	}

	threats, err := h.service.Nearby(c.Request().Context(), lat, lng, radius)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, threats)
}

// savePhotos stores uploaded photo files under the upload directory and
// returns the generated filenames. A JSON body simply has no files.
func (h *ThreatHandler) savePhotos(c echo.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	files := form.File["photos"]
	if len(files) > maxPhotosPerThreat {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "too many photos")
	}

	if len(files) > 0 {
		if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		name := uuid.NewString() + safeExt(file.Filename)
		if err := h.saveFile(file, filepath.Join(h.uploadDir, name)); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (h *ThreatHandler) saveFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

// safeExt keeps a short, lowercased extension and discards anything odd so
// the stored name never depends on client-controlled paths.
func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) > 5 {
		return ""
	}
	for _, r := range ext[min(1, len(ext)):] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
