package handler

import (
	"net/http"

	"github.com/HelloMeow10/project-root-sub000/internal/apierror"
	"github.com/HelloMeow10/project-root-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VuelosHandler struct{ svc service.VueloService }

func NewVuelosHandler(svc service.VueloService) *VuelosHandler { return &VuelosHandler{svc: svc} }

// ListarClases godoc
// @Summary      Listar clases de servicio
// @Tags         vuelos
// @Produce      json
// @Success      200 {array} dto.TipoAsientoResponse
// @Router       /api/vuelos/clases [get]
func (h *VuelosHandler) ListarClases(c *gin.Context) {
	resp, err := h.svc.ListarClases(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar clases"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MapaAsientos godoc
// @Summary      Mapa de asientos de un vuelo
// @Description  Asientos de la configuración del avión con disponibilidad (un asiento tomado por un pedido no cancelado figura ocupado).
// @Tags         vuelos
// @Produce      json
// @Param        id path string true "UUID del producto vuelo"
// @Success      200 {array} dto.AsientoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/vuelos/{id}/asientos [get]
func (h *VuelosHandler) MapaAsientos(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.MapaAsientos(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarOpcionesEquipaje godoc
// @Summary      Listar opciones de equipaje activas
// @Tags         vuelos
// @Produce      json
// @Success      200 {array} dto.OpcionEquipajeResponse
// @Router       /api/vuelos/equipaje [get]
func (h *VuelosHandler) ListarOpcionesEquipaje(c *gin.Context) {
	resp, err := h.svc.ListarOpcionesEquipaje(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar opciones de equipaje"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
