package handler

import (
	"context"
	"net/http"
	"strings"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/model"
	"swiftpost/internal/service"
	"swiftpost/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
)

// lookupPage bounds the lookup tables joined into the delivery table
var lookupPage = apiclient.Page{Skip: 0, Limit: 100}

const unknownName = "N/A"

// EntregaRow is a delivery with its references resolved for display
type EntregaRow struct {
	model.DetalleEntrega
	SedeRemitente    string `json:"sede_remitente"`
	SedeReceptora    string `json:"sede_receptora"`
	ClienteRemitente string `json:"cliente_remitente"`
	ClienteReceptor  string `json:"cliente_receptor"`
	Paquete          string `json:"paquete"`
}

type EntregaHandler struct {
	detalles service.DetalleEntregaService
	sedes    service.SedeService
	clientes service.ClienteService
	paquetes service.PaqueteService
}

func NewEntregaHandler(detalles service.DetalleEntregaService, sedes service.SedeService, clientes service.ClienteService, paquetes service.PaqueteService) *EntregaHandler {
	return &EntregaHandler{detalles: detalles, sedes: sedes, clientes: clientes, paquetes: paquetes}
}

func (h *EntregaHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/entregas/tabla", h.Tabla)
}

// Tabla returns the delivery table with site, client and package names joined in
// @Summary      Delivery table
// @Tags         entregas
// @Produce      json
// @Param        estado  query  string  false  "Delivery state; 'todos' or empty for all"
// @Param        q       query  string  false  "Search over site names, client names and state"
// @Success      200  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /api/entregas/tabla [get]
func (h *EntregaHandler) Tabla(c *gin.Context) {
	estado := c.Query("estado")
	if estado == "todos" {
		estado = ""
	}

	rows, err := h.build(c.Request.Context(), estado)
	if err != nil {
		respondError(c, err)
		return
	}
	rows = FilterEntregas(rows, c.Query("q"))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// build fetches the deliveries and the three lookup tables concurrently, then joins them
func (h *EntregaHandler) build(ctx context.Context, estado string) ([]EntregaRow, error) {
	var (
		detalles []model.DetalleEntrega
		sedes    []model.Sede
		clientes []model.Cliente
		paquetes []model.Paquete
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) (err error) {
		filters := apiclient.Params{}
		if estado != "" {
			filters["estado"] = estado
		}
		detalles, err = h.detalles.List(ctx, lookupPage, filters)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		sedes, err = h.sedes.List(ctx, lookupPage, nil)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		clientes, err = h.clientes.List(ctx, lookupPage, nil)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		paquetes, err = h.paquetes.List(ctx, lookupPage, nil)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return JoinEntregas(detalles, sedes, clientes, paquetes), nil
}

// JoinEntregas resolves ids to names and drops soft-deleted deliveries.
// Unresolvable references show as "N/A".
func JoinEntregas(detalles []model.DetalleEntrega, sedes []model.Sede, clientes []model.Cliente, paquetes []model.Paquete) []EntregaRow {
	sedeNames := lo.SliceToMap(sedes, func(s model.Sede) (string, string) { return s.IDSede, s.Nombre })
	clienteNames := lo.SliceToMap(clientes, func(c model.Cliente) (string, string) { return c.IDCliente, c.ShortName() })
	contenidos := lo.SliceToMap(paquetes, func(p model.Paquete) (string, string) { return p.IDPaquete, p.Contenido })

	name := func(m map[string]string, id string) string {
		if n, ok := m[id]; ok && n != "" {
			return n
		}
		return unknownName
	}

	active := lo.Filter(detalles, func(d model.DetalleEntrega, _ int) bool { return model.IsActive(d.Activo) })
	return lo.Map(active, func(d model.DetalleEntrega, _ int) EntregaRow {
		return EntregaRow{
			DetalleEntrega:   d,
			SedeRemitente:    name(sedeNames, d.IDSedeRemitente),
			SedeReceptora:    name(sedeNames, d.IDSedeReceptora),
			ClienteRemitente: name(clienteNames, d.IDClienteRemitente),
			ClienteReceptor:  name(clienteNames, d.IDClienteReceptor),
			Paquete:          name(contenidos, d.IDPaquete),
		}
	})
}

// FilterEntregas keeps rows whose site names, client names or state contain term, case-insensitively
func FilterEntregas(rows []EntregaRow, term string) []EntregaRow {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}
	return lo.Filter(rows, func(r EntregaRow, _ int) bool {
		return lo.SomeBy([]string{r.SedeRemitente, r.SedeReceptora, r.ClienteRemitente, r.ClienteReceptor, r.EstadoEnvio},
			func(s string) bool { return strings.Contains(strings.ToLower(s), term) })
	})
}
