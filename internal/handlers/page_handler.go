package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"satwatch/internal/models"
	"satwatch/internal/repository"
	"satwatch/internal/service"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoadTemplates parses the embedded HTML templates for gin's renderer.
func LoadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"badge": statusBadge,
	}).ParseFS(templateFS, "templates/*.html"))
}

type PageHandler struct {
	service service.TelemetryService
}

func NewPageHandler(service service.TelemetryService) *PageHandler {
	return &PageHandler{service: service}
}

func (h *PageHandler) Register(r gin.IRoutes) {
	r.GET("/", h.Home)
	r.GET("/telemetry/", h.TelemetryList)
}

func (h *PageHandler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/telemetry/")
}

type telemetryListView struct {
	Entries            []models.Telemetry
	Count              int64
	PageNumber         int
	NumPages           int
	PrevURL            string
	NextURL            string
	SatelliteIDs       []string
	Statuses           []models.HealthStatus
	CurrentSatelliteID string
	CurrentStatus      string
}

// TelemetryList renders the filterable table. Filters use the satelliteId and
// status query parameters.
func (h *PageHandler) TelemetryList(c *gin.Context) {
	ctx := c.Request.Context()

	page, ok := parsePage(c.Query("page"))
	if !ok {
		c.String(http.StatusNotFound, "Invalid page.")
		return
	}

	view := telemetryListView{
		Statuses:           models.HealthStatuses(),
		CurrentSatelliteID: c.Query("satelliteId"),
		CurrentStatus:      c.Query("status"),
	}

	result, err := h.service.List(ctx, repository.TelemetryFilter{
		SatelliteID: view.CurrentSatelliteID,
		Status:      view.CurrentStatus,
	}, page)
	if err != nil {
		if err == service.ErrInvalidPage {
			c.String(http.StatusNotFound, "Invalid page.")
			return
		}
		c.String(http.StatusInternalServerError, "failed to load telemetry: %v", err)
		return
	}

	ids, err := h.service.SatelliteIDs(ctx)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load satellite ids: %v", err)
		return
	}

	view.Entries = result.Results
	view.Count = result.Count
	view.PageNumber = result.Number
	view.NumPages = result.NumPages
	view.SatelliteIDs = ids
	if result.HasPrevious() {
		view.PrevURL = relativePageURL(c, result.Number-1)
	}
	if result.HasNext() {
		view.NextURL = relativePageURL(c, result.Number+1)
	}

	c.HTML(http.StatusOK, "telemetry_list.html", view)
}

func statusBadge(s models.HealthStatus) string {
	switch s {
	case models.StatusWarning:
		return "bg-warning text-dark"
	case models.StatusCritical:
		return "bg-danger"
	default:
		return "bg-success"
	}
}
