package handler

import (
	"errors"
	"net/http"

	"github.com/HelloMeow10/project-root-sub000/internal/apierror"
	"github.com/HelloMeow10/project-root-sub000/internal/dto"
	"github.com/HelloMeow10/project-root-sub000/internal/middleware"
	"github.com/HelloMeow10/project-root-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PagosHandler struct{ svc service.PagoService }

func NewPagosHandler(svc service.PagoService) *PagosHandler { return &PagosHandler{svc: svc} }

// PagarPedido godoc
// @Summary      Pagar un pedido pendiente
// @Description  Cobra el total del pedido vía Stripe, registra la venta y transiciona a PAGADO. Envía email de confirmación asíncrono.
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "UUID del pedido"
// @Param        body body dto.PagarPedidoRequest true "Método de pago"
// @Success      200 {object} dto.PagoResponse
// @Failure      400 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Failure      503 {object} apierror.APIError
// @Router       /api/pedidos/{id}/pagar [post]
func (h *PagosHandler) PagarPedido(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.PagarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	clienteID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}

	resp, err := h.svc.PagarPedido(c.Request.Context(), clienteID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPedidoNoEncontrado):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrPagoNoDisponible):
			c.JSON(http.StatusServiceUnavailable, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	middleware.PagosConfirmados.Inc()
	c.JSON(http.StatusOK, resp)
}
