package handler

import (
	"net/http"

	"swiftpost/internal/middleware"
	"swiftpost/internal/model"
	"swiftpost/internal/service"
	"swiftpost/pkg/response"

	"github.com/gin-gonic/gin"
)

type UsuarioHandler struct {
	*ResourceHandler[model.Usuario]
	usuarios service.UsuarioService
}

func NewUsuarioHandler(deps Deps, svc service.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{
		ResourceHandler: NewResourceHandler[model.Usuario](deps, svc, "usuarios", FormUsuario),
		usuarios:        svc,
	}
}

// RegisterRoutes mounts account administration, restricted to administrators
func (h *UsuarioHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("", middleware.RequireRole(h.Sessions, AdminRole))
	g := h.ResourceHandler.RegisterRoutes(admin)
	g.GET("/rol/:id_rol", listBy(h.usuarios.ListByRol, "id_rol"))
	g.GET("/buscar/nombre/:nombre", lookup(h.usuarios.SearchByName, "nombre"))
	g.GET("/disponibilidad/:nombre", h.CheckAvailability)
	g.PATCH("/:id/restablecer-contrasena", h.ResetPassword)
	g.PATCH("/:id/cambiar-rol", h.ChangeRole)
}

// CheckAvailability reports whether a username is free
// @Summary      Check username availability
// @Tags         usuarios
// @Produce      json
// @Param        nombre  path  string  true  "Username"
// @Success      200  {object}  response.Response
// @Router       /api/usuarios/disponibilidad/{nombre} [get]
func (h *UsuarioHandler) CheckAvailability(c *gin.Context) {
	res, err := h.usuarios.CheckAvailability(c.Request.Context(), c.Param("nombre"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

type resetPasswordRequest struct {
	ContrasenaNueva string `json:"contraseña_nueva" binding:"required,min=6"`
}

// ResetPassword sets a new password without knowing the current one
// @Summary      Reset a user's password
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "User ID"
// @Param        payload  body  resetPasswordRequest  true  "New password"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/usuarios/{id}/restablecer-contrasena [patch]
func (h *UsuarioHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.usuarios.ResetPassword(c.Request.Context(), c.Param("id"), req.ContrasenaNueva)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

type changeRoleRequest struct {
	IDRol string `json:"id_rol" binding:"required"`
}

func (h *UsuarioHandler) ChangeRole(c *gin.Context) {
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.usuarios.ChangeRole(c.Request.Context(), c.Param("id"), req.IDRol)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, u))
}
