package handler

import (
	"context"
	"net/http"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/draft"
	"swiftpost/internal/logger"
	"swiftpost/internal/service"
	"swiftpost/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// Deps are shared by every screen handler
type Deps struct {
	Sessions Sessions
	Drafts   *draft.Store
	Log      *logger.Logger
}

// ResourceHandler exposes a service.CRUD collection as JSON endpoints
type ResourceHandler[T any] struct {
	Deps
	svc  service.CRUD[T]
	path string
	form string
	// createParams are query keys passed through to the remote create call
	createParams []string
}

// NewResourceHandler mounts svc under /api/{path}. form names the creation form draft
// that is cleared after a successful create.
func NewResourceHandler[T any](deps Deps, svc service.CRUD[T], path, form string, createParams ...string) *ResourceHandler[T] {
	return &ResourceHandler[T]{Deps: deps, svc: svc, path: path, form: form, createParams: createParams}
}

// RegisterRoutes mounts the CRUD routes and returns the group for entity-specific extras
func (h *ResourceHandler[T]) RegisterRoutes(router *gin.RouterGroup) *gin.RouterGroup {
	g := router.Group("/" + h.path)
	{
		g.GET("", h.List)
		g.GET("/activos", h.ListActive)
		g.GET("/:id", h.Get)
		g.POST("", h.Create)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
		g.PATCH("/:id/reactivar", h.Reactivate)
	}
	return g
}

var pagingKeys = []string{"page", "skip", "limit"}

// List returns one page; every query key other than page/skip/limit is a filter
func (h *ResourceHandler[T]) List(c *gin.Context) {
	pg, p := page(c)
	filters := apiclient.Params{}
	for key := range c.Request.URL.Query() {
		if !lo.Contains(pagingKeys, key) {
			filters[key] = c.Query(key)
		}
	}

	items, err := h.svc.List(c.Request.Context(), pg, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, items, p)
}

func (h *ResourceHandler[T]) ListActive(c *gin.Context) {
	pg, p := page(c)
	items, err := h.svc.ListActive(c.Request.Context(), pg)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, items, p)
}

func (h *ResourceHandler[T]) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// Create forwards the entity with the operator as creator and drops the form draft
func (h *ResourceHandler[T]) Create(c *gin.Context) {
	var entity T
	if err := c.ShouldBindJSON(&entity); err != nil {
		badRequest(c, err)
		return
	}

	extra := apiclient.Params{}
	for _, key := range h.createParams {
		if v := c.Query(key); v != "" {
			extra[key] = v
		}
	}

	ctx := c.Request.Context()
	created, err := h.svc.Create(ctx, entity, actingUser(c, h.Sessions), extra)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.form != "" {
		if err := h.Drafts.Clear(ctx, h.form); err != nil {
			h.Log.Warnw("failed to clear form draft", "form", h.form, "error", err)
		}
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

// Update accepts a partial body; audit fields in it are not sent upstream
func (h *ResourceHandler[T]) Update(c *gin.Context) {
	var changes map[string]interface{}
	if err := c.ShouldBindJSON(&changes); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), changes, actingUser(c, h.Sessions))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, updated))
}

// Delete soft-deletes; the record can be brought back with Reactivate
func (h *ResourceHandler[T]) Delete(c *gin.Context) {
	res, err := h.svc.Delete(c.Request.Context(), c.Param("id"), actingUser(c, h.Sessions))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

func (h *ResourceHandler[T]) Reactivate(c *gin.Context) {
	res, err := h.svc.Reactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// listBy adapts a filtered list call keyed on one path parameter
func listBy[T any](fetch func(ctx context.Context, value string, pg apiclient.Page) ([]T, error), param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		pg, p := page(c)
		items, err := fetch(c.Request.Context(), c.Param(param), pg)
		if err != nil {
			respondError(c, err)
			return
		}
		respondList(c, items, p)
	}
}

// lookup adapts an unpaginated search keyed on one path parameter
func lookup[T any](fetch func(ctx context.Context, value string) ([]T, error), param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := fetch(c.Request.Context(), c.Param(param))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
	}
}

// single adapts a call returning one record
func single[T any](fetch func(ctx context.Context, value string) (*T, error), param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := fetch(c.Request.Context(), c.Param(param))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
	}
}

type estadoRequest struct {
	Estado string `json:"estado" binding:"required"`
}
