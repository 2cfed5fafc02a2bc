package handler

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/model"
	"swiftpost/internal/service"
	"swiftpost/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/sourcegraph/conc"
)

// Dashboard is the home screen: every widget plus the errors of those that failed to load
type Dashboard struct {
	Resumen        *model.ResumenAnalytics      `json:"resumen,omitempty"`
	PaquetesSerie  *model.SerieXY               `json:"paquetes_serie,omitempty"`
	SedesActivas   *model.TopItems              `json:"sedes_mas_activas,omitempty"`
	Estados        *model.TopItems              `json:"estados_paquetes,omitempty"`
	TiempoPromedio *model.TiempoPromedioEntrega `json:"tiempo_promedio_entrega,omitempty"`
	Errors         map[string]string            `json:"errors,omitempty"`
}

type AnalyticsHandler struct {
	analytics service.AnalyticsService
}

func NewAnalyticsHandler(analytics service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// RegisterHome mounts the dashboard at the given group (the guarded root)
func (h *AnalyticsHandler) RegisterHome(router *gin.RouterGroup) {
	router.GET("/inicio", h.Home)
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	a := router.Group("/analytics")
	{
		a.GET("/paquetes", h.PaquetesSerie)
		a.GET("/sedes-mas-activas", h.SedesMasActivas)
		a.GET("/estados-paquetes", h.EstadosPaquetes)
		a.GET("/tiempo-promedio-entrega", h.TiempoPromedio)
		a.GET("/resumen", h.Resumen)
		a.GET("/export-resumen", h.Export)
	}
}

func intQuery(c *gin.Context, key string, def int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil && v > 0 {
		return v
	}
	return def
}

// Home loads every dashboard widget concurrently. A failing widget does not fail the page.
// @Summary      Dashboard
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /inicio [get]
func (h *AnalyticsHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.dashboard(c.Request.Context())))
}

func (h *AnalyticsHandler) dashboard(ctx context.Context) Dashboard {
	var (
		d  Dashboard
		mu sync.Mutex
		wg conc.WaitGroup
	)
	record := func(widget string, err error) {
		if err == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if d.Errors == nil {
			d.Errors = map[string]string{}
		}
		if ne, ok := apiclient.AsNormalized(err); ok {
			d.Errors[widget] = ne.Message
			return
		}
		d.Errors[widget] = err.Error()
	}

	wg.Go(func() {
		var err error
		d.Resumen, err = h.analytics.Resumen(ctx)
		record("resumen", err)
	})
	wg.Go(func() {
		var err error
		d.PaquetesSerie, err = h.analytics.PaquetesUltimosDias(ctx, 30)
		record("paquetes_serie", err)
	})
	wg.Go(func() {
		var err error
		d.SedesActivas, err = h.analytics.SedesMasActivas(ctx, 5, 90)
		record("sedes_mas_activas", err)
	})
	wg.Go(func() {
		var err error
		d.Estados, err = h.analytics.EstadosPaquetes(ctx, 90)
		record("estados_paquetes", err)
	})
	wg.Go(func() {
		var err error
		d.TiempoPromedio, err = h.analytics.TiempoPromedioEntrega(ctx, 180)
		record("tiempo_promedio_entrega", err)
	})
	wg.Wait()
	return d
}

func (h *AnalyticsHandler) PaquetesSerie(c *gin.Context) {
	out, err := h.analytics.PaquetesUltimosDias(c.Request.Context(), intQuery(c, "days", 30))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, out))
}

func (h *AnalyticsHandler) SedesMasActivas(c *gin.Context) {
	out, err := h.analytics.SedesMasActivas(c.Request.Context(), intQuery(c, "limit", 5), intQuery(c, "days", 90))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, out))
}

func (h *AnalyticsHandler) EstadosPaquetes(c *gin.Context) {
	out, err := h.analytics.EstadosPaquetes(c.Request.Context(), intQuery(c, "days", 90))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, out))
}

func (h *AnalyticsHandler) TiempoPromedio(c *gin.Context) {
	out, err := h.analytics.TiempoPromedioEntrega(c.Request.Context(), intQuery(c, "days", 180))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, out))
}

func (h *AnalyticsHandler) Resumen(c *gin.Context) {
	out, err := h.analytics.Resumen(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, out))
}

// Export streams the PDF summary as a download
// @Summary      Export analytics summary
// @Tags         analytics
// @Produce      application/pdf
// @Param        days_line    query  int  false  "Window of the packages series (default 30)"
// @Param        days_states  query  int  false  "Window of the state breakdown (default 90)"
// @Param        days_top     query  int  false  "Window of the busiest sites (default 90)"
// @Param        top_limit    query  int  false  "Number of sites (default 5)"
// @Success      200
// @Failure      502  {object}  response.Response
// @Router       /api/analytics/export-resumen [get]
func (h *AnalyticsHandler) Export(c *gin.Context) {
	var opts service.ExportOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		badRequest(c, err)
		return
	}
	data, contentType, err := h.analytics.ExportResumen(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	c.Header("Content-Disposition", `attachment; filename="resumen-analytics.pdf"`)
	c.Data(http.StatusOK, contentType, data)
}
