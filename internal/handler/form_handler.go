package handler

import (
	"net/http"
	"time"

	"swiftpost/internal/model"
	"swiftpost/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Creation forms whose input survives a dismissed modal
const (
	FormPaquete        = "paquete"
	FormEmpleado       = "empleado"
	FormCliente        = "cliente"
	FormSede           = "sede"
	FormTransporte     = "transporte"
	FormDetalleEntrega = "detalle_entrega"
	FormRol            = "rol"
	FormTipoDocumento  = "tipo_documento"
	FormUsuario        = "usuario"
)

// blankForms build the values a creation form opens with when there is no draft
var blankForms = map[string]func(now time.Time) interface{}{
	FormPaquete: func(time.Time) interface{} {
		zero := decimal.Zero
		return model.Paquete{Peso: decimal.Zero, Fragilidad: "No", ValorDeclarado: &zero, Estado: "Registrado"}
	},
	FormEmpleado: func(now time.Time) interface{} {
		return model.Empleado{Salario: decimal.Zero, FechaIngreso: now.Format(time.DateOnly)}
	},
	FormCliente: func(time.Time) interface{} { return model.Cliente{} },
	FormSede:    func(time.Time) interface{} { return model.Sede{} },
	FormTransporte: func(now time.Time) interface{} {
		return model.Transporte{CapacidadCarga: decimal.Zero, Anio: now.Year()}
	},
	FormDetalleEntrega: func(now time.Time) interface{} {
		return model.DetalleEntrega{EstadoEnvio: "Pendiente", FechaEnvio: now.Format(time.DateOnly)}
	},
	FormRol:           func(time.Time) interface{} { return model.Rol{} },
	FormTipoDocumento: func(time.Time) interface{} { return model.TipoDocumento{} },
	FormUsuario:       func(time.Time) interface{} { return model.Usuario{Activo: true} },
}

// FormHandler serves creation forms, restoring a saved draft when one exists
type FormHandler struct {
	Deps
	now func() time.Time
}

func NewFormHandler(deps Deps) *FormHandler {
	return &FormHandler{Deps: deps, now: time.Now}
}

func (h *FormHandler) RegisterRoutes(router *gin.RouterGroup) {
	forms := router.Group("/forms/:form")
	{
		forms.GET("/new", h.Open)
		forms.PUT("/draft", h.SaveDraft)
		forms.DELETE("/draft", h.ClearDraft)
	}
}

type formState struct {
	Form   string      `json:"form"`
	Draft  bool        `json:"draft"`
	Values interface{} `json:"values"`
}

func (h *FormHandler) knownForm(c *gin.Context) (string, bool) {
	form := c.Param("form")
	if _, ok := blankForms[form]; !ok {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Unknown form: "+form))
		return "", false
	}
	return form, true
}

// Open returns the saved draft of a creation form, or its blank values
// @Summary      Open a creation form
// @Tags         forms
// @Produce      json
// @Param        form  path  string  true  "Form name (paquete, empleado, cliente, sede, transporte, detalle_entrega, rol, tipo_documento, usuario)"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/forms/{form}/new [get]
func (h *FormHandler) Open(c *gin.Context) {
	form, ok := h.knownForm(c)
	if !ok {
		return
	}

	var values map[string]interface{}
	found, err := h.Drafts.Load(c.Request.Context(), form, &values)
	if err != nil {
		h.Log.Errorw("failed to read form draft", "form", form, "error", err)
	}
	if found {
		c.JSON(http.StatusOK, response.Success(http.StatusOK, formState{Form: form, Draft: true, Values: values}))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, formState{Form: form, Values: blankForms[form](h.now())}))
}

// SaveDraft stores the current input of a creation form
// @Summary      Save a form draft
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        form     path  string  true  "Form name"
// @Param        payload  body  object  true  "Field values"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/forms/{form}/draft [put]
func (h *FormHandler) SaveDraft(c *gin.Context) {
	form, ok := h.knownForm(c)
	if !ok {
		return
	}
	var values map[string]interface{}
	if err := c.ShouldBindJSON(&values); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Drafts.Save(c.Request.Context(), form, values); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, formState{Form: form, Draft: true, Values: values}))
}

// ClearDraft discards a form draft
// @Summary      Discard a form draft
// @Tags         forms
// @Produce      json
// @Param        form  path  string  true  "Form name"
// @Success      200  {object}  response.Response
// @Router       /api/forms/{form}/draft [delete]
func (h *FormHandler) ClearDraft(c *gin.Context) {
	form, ok := h.knownForm(c)
	if !ok {
		return
	}
	if err := h.Drafts.Clear(c.Request.Context(), form); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Draft cleared"}))
}
