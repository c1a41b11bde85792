package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"satwatch/internal/middleware"
	"satwatch/internal/models"
	"satwatch/internal/repository"
	"satwatch/internal/service"
	"satwatch/internal/validation"

	"github.com/gin-gonic/gin"
)

type TelemetryHandler struct {
	service service.TelemetryService
}

func NewTelemetryHandler(service service.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{service: service}
}

// Register mounts the REST endpoints on the /api group.
func (h *TelemetryHandler) Register(api *gin.RouterGroup) {
	api.GET("/", h.APIRoot)
	api.GET("/telemetry/", h.List)
	api.POST("/telemetry/", h.Create)
	api.GET("/telemetry/export/", h.Export)
	api.GET("/telemetry/:id/", h.Retrieve)
	api.PUT("/telemetry/:id/", h.Update)
	api.DELETE("/telemetry/:id/", h.Delete)
}

type listResponse struct {
	Count    int64              `json:"count"`
	Next     *string            `json:"next"`
	Previous *string            `json:"previous"`
	Results  []models.Telemetry `json:"results"`
}

func (h *TelemetryHandler) APIRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"telemetry": absoluteURL(c, "/api/telemetry/", nil),
	})
}

func (h *TelemetryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	page, ok := parsePage(c.Query("page"))
	if !ok {
		h.respondError(c, service.ErrInvalidPage)
		return
	}

	filter := repository.TelemetryFilter{
		SatelliteID: c.Query("satellite_id"),
		Status:      c.Query("status"),
	}

	result, err := h.service.List(ctx, filter, page)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := listResponse{Count: result.Count, Results: result.Results}
	if resp.Results == nil {
		resp.Results = []models.Telemetry{}
	}
	if result.HasNext() {
		next := pageURL(c, result.Number+1)
		resp.Next = &next
	}
	if result.HasPrevious() {
		prev := pageURL(c, result.Number-1)
		resp.Previous = &prev
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TelemetryHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := c.GetRawData()
	if err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", validation.ErrMalformedRequest, err))
		return
	}

	telemetry, err := validation.DecodeTelemetry(body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	created, err := h.service.Create(ctx, telemetry)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *TelemetryHandler) Retrieve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.respondError(c, repository.ErrNotFound)
		return
	}

	telemetry, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, telemetry)
}

func (h *TelemetryHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseID(c)
	if !ok {
		h.respondError(c, repository.ErrNotFound)
		return
	}

	// Сначала 404, потом ошибки валидации
	if _, err := h.service.Get(ctx, id); err != nil {
		h.respondError(c, err)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", validation.ErrMalformedRequest, err))
		return
	}

	telemetry, err := validation.DecodeTelemetry(body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	updated, err := h.service.Update(ctx, id, telemetry)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *TelemetryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.respondError(c, repository.ErrNotFound)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TelemetryHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()

	format := c.DefaultQuery("format", "csv")
	filter := repository.TelemetryFilter{
		SatelliteID: c.Query("satellite_id"),
		Status:      c.Query("status"),
	}

	export, err := h.service.Export(ctx, format, filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+export.Filename)
	c.Data(http.StatusOK, export.ContentType, export.Data)
}

func (h *TelemetryHandler) respondError(c *gin.Context, err error) {
	var fieldErrs validation.FieldErrors

	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, fieldErrs)
	case errors.Is(err, validation.ErrMalformedRequest):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON parse error - " + err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	case errors.Is(err, service.ErrInvalidPage):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Invalid page."})
	case errors.Is(err, service.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "unsupported format, use 'csv' or 'xlsx'",
			"message": err.Error(),
		})
	default:
		log.Printf("[%s] %s %s failed: %v", middleware.RequestID(c), c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"message": err.Error(),
		})
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parsePage(raw string) (int, bool) {
	if raw == "" {
		return 1, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}
