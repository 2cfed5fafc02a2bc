package handler

import (
	"net/http"

	"swiftpost/internal/middleware"
	"swiftpost/internal/model"
	"swiftpost/internal/service"
	"swiftpost/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminRole is the role allowed to manage accounts and roles
const AdminRole = "administrador"

type PaqueteHandler struct {
	*ResourceHandler[model.Paquete]
	paquetes service.PaqueteService
}

func NewPaqueteHandler(deps Deps, svc service.PaqueteService) *PaqueteHandler {
	return &PaqueteHandler{
		ResourceHandler: NewResourceHandler[model.Paquete](deps, svc, "paquetes", FormPaquete, "id_cliente"),
		paquetes:        svc,
	}
}

func (h *PaqueteHandler) RegisterRoutes(router *gin.RouterGroup) {
	g := h.ResourceHandler.RegisterRoutes(router)
	g.GET("/estado/:estado", listBy(h.paquetes.ListByEstado, "estado"))
	g.GET("/tipo/:tipo", listBy(h.paquetes.ListByTipo, "tipo"))
	g.GET("/fragilidad/:fragilidad", listBy(h.paquetes.ListByFragilidad, "fragilidad"))
	g.PATCH("/:id/estado", h.UpdateEstado)
}

// UpdateEstado moves a package to another delivery state
// @Summary      Change package state
// @Tags         paquetes
// @Accept       json
// @Produce      json
// @Param        id       path  string         true  "Package ID"
// @Param        payload  body  estadoRequest  true  "New state"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/paquetes/{id}/estado [patch]
func (h *PaqueteHandler) UpdateEstado(c *gin.Context) {
	var req estadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.paquetes.UpdateEstado(c.Request.Context(), c.Param("id"), req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, p))
}

type EmpleadoHandler struct {
	*ResourceHandler[model.Empleado]
	empleados service.EmpleadoService
}

func NewEmpleadoHandler(deps Deps, svc service.EmpleadoService) *EmpleadoHandler {
	return &EmpleadoHandler{
		ResourceHandler: NewResourceHandler[model.Empleado](deps, svc, "empleados", FormEmpleado),
		empleados:       svc,
	}
}

func (h *EmpleadoHandler) RegisterRoutes(router *gin.RouterGroup) {
	g := h.ResourceHandler.RegisterRoutes(router)
	g.GET("/sede/:id_sede", listBy(h.empleados.ListBySede, "id_sede"))
	g.GET("/tipo/:tipo", listBy(h.empleados.ListByTipo, "tipo"))
	g.GET("/documento/:documento", lookup(h.empleados.FindByDocumento, "documento"))
	g.GET("/buscar/nombre/:nombre", lookup(h.empleados.SearchByName, "nombre"))
}

type ClienteHandler struct {
	*ResourceHandler[model.Cliente]
	clientes service.ClienteService
}

func NewClienteHandler(deps Deps, svc service.ClienteService) *ClienteHandler {
	return &ClienteHandler{
		ResourceHandler: NewResourceHandler[model.Cliente](deps, svc, "clientes", FormCliente),
		clientes:        svc,
	}
}

func (h *ClienteHandler) RegisterRoutes(router *gin.RouterGroup) {
	g := h.ResourceHandler.RegisterRoutes(router)
	g.GET("/tipo/:tipo", listBy(h.clientes.ListByTipo, "tipo"))
	g.GET("/buscar/documento/:documento", lookup(h.clientes.FindByDocumento, "documento"))
	g.GET("/buscar/nombre/:nombre", lookup(h.clientes.SearchByName, "nombre"))
}

type SedeHandler struct {
	*ResourceHandler[model.Sede]
	sedes service.SedeService
}

func NewSedeHandler(deps Deps, svc service.SedeService) *SedeHandler {
	return &SedeHandler{
		ResourceHandler: NewResourceHandler[model.Sede](deps, svc, "sedes", FormSede),
		sedes:           svc,
	}
}

func (h *SedeHandler) RegisterRoutes(router *gin.RouterGroup) {
	g := h.ResourceHandler.RegisterRoutes(router)
	g.GET("/ciudad/:ciudad", listBy(h.sedes.ListByCiudad, "ciudad"))
}

type TransporteHandler struct {
	*ResourceHandler[model.Transporte]
	transportes service.TransporteService
}

func NewTransporteHandler(deps Deps, svc service.TransporteService) *TransporteHandler {
	return &TransporteHandler{
		ResourceHandler: NewResourceHandler[model.Transporte](deps, svc, "transportes", FormTransporte),
		transportes:     svc,
	}
}

func (h *TransporteHandler) RegisterRoutes(router *gin.RouterGroup) {
	g := h.ResourceHandler.RegisterRoutes(router)
	g.GET("/sede/:id_sede", listBy(h.transportes.ListBySede, "id_sede"))
	g.GET("/tipo/:tipo", listBy(h.transportes.ListByTipo, "tipo"))
	g.GET("/estado/:estado", listBy(h.transportes.ListByEstado, "estado"))
	g.GET("/placa/:placa", lookup(h.transportes.FindByPlaca, "placa"))
	g.PATCH("/:id/estado", h.UpdateEstado)
}

func (h *TransporteHandler) UpdateEstado(c *gin.Context) {
	var req estadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	t, err := h.transportes.UpdateEstado(c.Request.Context(), c.Param("id"), req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, t))
}

type DetalleEntregaHandler struct {
	*ResourceHandler[model.DetalleEntrega]
	detalles service.DetalleEntregaService
}

func NewDetalleEntregaHandler(deps Deps, svc service.DetalleEntregaService) *DetalleEntregaHandler {
	return &DetalleEntregaHandler{
		ResourceHandler: NewResourceHandler[model.DetalleEntrega](deps, svc, "detalles-entrega", FormDetalleEntrega),
		detalles:        svc,
	}
}

func (h *DetalleEntregaHandler) RegisterRoutes(router *gin.RouterGroup) {
	g := h.ResourceHandler.RegisterRoutes(router)
	g.GET("/pendientes", h.ListPendientes)
	g.GET("/estado/:estado", listBy(h.detalles.ListByEstado, "estado"))
	g.GET("/paquete/:id_paquete", single(h.detalles.GetByPaquete, "id_paquete"))
	g.GET("/cliente/:id_cliente", h.ListByCliente)
}

func (h *DetalleEntregaHandler) ListPendientes(c *gin.Context) {
	pg, p := page(c)
	items, err := h.detalles.ListPendientes(c.Request.Context(), pg)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, items, p)
}

// ListByCliente lists deliveries of a client; ?tipo=remitente|receptor picks the side
func (h *DetalleEntregaHandler) ListByCliente(c *gin.Context) {
	lado := c.DefaultQuery("tipo", service.LadoRemitente)
	if lado != service.LadoRemitente && lado != service.LadoReceptor {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "tipo must be remitente or receptor"))
		return
	}
	pg, p := page(c)
	items, err := h.detalles.ListByCliente(c.Request.Context(), c.Param("id_cliente"), lado, pg)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, items, p)
}

type RolHandler struct {
	*ResourceHandler[model.Rol]
	roles service.RolService
}

func NewRolHandler(deps Deps, svc service.RolService) *RolHandler {
	return &RolHandler{
		ResourceHandler: NewResourceHandler[model.Rol](deps, svc, "roles", FormRol),
		roles:           svc,
	}
}

// RegisterRoutes mounts the role catalogue; only administrators may use it
func (h *RolHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("", middleware.RequireRole(h.Sessions, AdminRole))
	g := h.ResourceHandler.RegisterRoutes(admin)
	g.GET("/buscar/nombre/:nombre", lookup(h.roles.SearchByName, "nombre"))
}

type TipoDocumentoHandler struct {
	*ResourceHandler[model.TipoDocumento]
	tipos service.TipoDocumentoService
}

func NewTipoDocumentoHandler(deps Deps, svc service.TipoDocumentoService) *TipoDocumentoHandler {
	return &TipoDocumentoHandler{
		ResourceHandler: NewResourceHandler[model.TipoDocumento](deps, svc, "tipos-documento", FormTipoDocumento),
		tipos:           svc,
	}
}

func (h *TipoDocumentoHandler) RegisterRoutes(router *gin.RouterGroup) {
	g := h.ResourceHandler.RegisterRoutes(router)
	g.GET("/codigo/:codigo", single(h.tipos.GetByCodigo, "codigo"))
	g.GET("/buscar/nombre/:nombre", lookup(h.tipos.SearchByName, "nombre"))
}
