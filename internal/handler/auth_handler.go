package handler

import (
	"context"
	"net/http"
	"strings"

	"swiftpost/internal/middleware"
	"swiftpost/internal/model"
	"swiftpost/internal/service"
	"swiftpost/internal/session"
	"swiftpost/pkg/response"

	"github.com/gin-gonic/gin"
)

// Authenticator signs the operator in and out
type Authenticator interface {
	Login(ctx context.Context, creds session.Credentials) (*model.Usuario, error)
	Logout(ctx context.Context)
}

type AuthHandler struct {
	Deps
	auth     Authenticator
	authSvc  service.AuthService
	usuarios service.UsuarioService
}

func NewAuthHandler(deps Deps, auth Authenticator, authSvc service.AuthService, usuarios service.UsuarioService) *AuthHandler {
	return &AuthHandler{Deps: deps, auth: auth, authSvc: authSvc, usuarios: usuarios}
}

// RegisterPublicRoutes mounts the sign-in screens, which must stay reachable without a session
func (h *AuthHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	login := router.Group("/login", middleware.LoginGuard(h.Sessions))
	{
		login.GET("", h.LoginScreen)
		login.POST("", h.Login)
	}
	router.POST("/logout", h.Logout)
	router.POST("/auth/crear-admin", h.CreateAdmin)
}

// RegisterRoutes mounts the session endpoints behind the auth guard
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/me", h.Me)
	router.PATCH("/me/contrasena", h.ChangeOwnPassword)

	auth := router.Group("/auth")
	{
		auth.GET("/estado", h.Status)
		auth.GET("/verificar/:id", h.Verify)
	}
}

type loginResponse struct {
	User     *model.Usuario `json:"user"`
	Redirect string         `json:"redirect"`
}

// safeReturnURL accepts only local paths so returnUrl cannot send the operator off-site
func safeReturnURL(raw string) string {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, session.SignInPath) {
		return session.HomePath
	}
	return raw
}

// LoginScreen describes the sign-in form
// @Summary      Sign-in screen
// @Tags         auth
// @Produce      json
// @Param        returnUrl  query  string  false  "Where to go after signing in"
// @Success      200  {object}  response.Response
// @Router       /login [get]
func (h *AuthHandler) LoginScreen(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"form":      session.Credentials{},
		"returnUrl": safeReturnURL(c.Query("returnUrl")),
	}))
}

// Login signs the operator in. Inactive accounts are signed straight back out.
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        returnUrl  query  string               false  "Where to go after signing in"
// @Param        payload    body   session.Credentials  true   "Credentials"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var creds session.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.auth.Login(ctx, creds)
	if err != nil {
		respondError(c, err)
		return
	}
	if !user.Activo {
		h.Log.Warnw("inactive account tried to sign in", "user_id", user.IDUsuario)
		h.auth.Logout(ctx)
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "User account is inactive"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, loginResponse{
		User:     user,
		Redirect: safeReturnURL(c.Query("returnUrl")),
	}))
}

// Logout ends the session
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.auth.Logout(c.Request.Context())
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"redirect": session.SignInPath}))
}

// Me returns the signed-in operator
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := h.Sessions.CurrentUser(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "No active session"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

func (h *AuthHandler) ChangeOwnPassword(c *gin.Context) {
	var req model.CambioContrasena
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.ContrasenaNueva != req.ConfirmarContrasena {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "New password and confirmation do not match"))
		return
	}
	id := actingUser(c, h.Sessions)
	if id == "" {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "No active session"))
		return
	}
	res, err := h.usuarios.ChangePassword(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

func (h *AuthHandler) Status(c *gin.Context) {
	res, err := h.authSvc.Status(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

func (h *AuthHandler) Verify(c *gin.Context) {
	res, err := h.authSvc.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// CreateAdmin bootstraps the administrator account of a fresh installation
// @Summary      Create the first administrator
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/crear-admin [post]
func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	res, err := h.authSvc.CreateAdmin(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
