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

type PedidosHandler struct {
	checkout service.CheckoutService
	svc      service.PedidoService
}

func NewPedidosHandler(checkout service.CheckoutService, svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{checkout: checkout, svc: svc}
}

// CrearPedido godoc
// @Summary      Crear pedido desde el carrito
// @Description  Convierte el carrito del cliente en un pedido: valida selecciones de vuelo, calcula precios con adicionales, descuenta stock y vacía el carrito en una única transacción.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearPedidoRequest true "Items y dirección de facturación"
// @Success      201  {object} dto.PedidoResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /api/pedidos [post]
func (h *PedidosHandler) CrearPedido(c *gin.Context) {
	var req dto.CrearPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	clienteID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}

	resp, err := h.checkout.CrearPedidoDesdeCarrito(c.Request.Context(), clienteID, req)
	if err != nil {
		if errors.Is(err, service.ErrAsientoNoDisponible) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	middleware.PedidosCreados.Inc()
	c.JSON(http.StatusCreated, resp)
}

// ObtenerPedido godoc
// @Summary      Detalle de un pedido
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del pedido"
// @Success      200 {object} dto.PedidoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/pedidos/{id} [get]
func (h *PedidosHandler) ObtenerPedido(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPedido(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	// Customers only see their own orders; back-office sees all.
	claims := middleware.GetClaims(c)
	if claims != nil && claims.Tipo == "cliente" && resp.ClienteID != claims.Subject {
		c.JSON(http.StatusNotFound, apierror.New(service.ErrPedidoNoEncontrado.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPedidos godoc
// @Summary      Listar pedidos
// @Description  Clientes ven sólo sus pedidos; usuarios internos ven todos.
// @Produce      json
// @Security     BearerAuth
// @Param        estado query string false "Filtrar por estado"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.PedidoListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/pedidos [get]
func (h *PedidosHandler) ListarPedidos(c *gin.Context) {
	var filter dto.PedidoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	var clienteID *uuid.UUID
	claims := middleware.GetClaims(c)
	if claims != nil && claims.Tipo == "cliente" {
		id, ok := middleware.SubjectID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}
		clienteID = &id
	}

	resp, err := h.svc.ListarPedidos(c.Request.Context(), clienteID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pedidos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarPedido godoc
// @Summary      Actualizar pedido (administración)
// @Description  Aplica una transición de estado o cambia la dirección de facturación. La transición a CANCELADO repone stock atómicamente.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                       true "UUID del pedido"
// @Param        body body dto.ActualizarPedidoRequest true "Campos a modificar"
// @Success      200  {object} dto.PedidoResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /api/pedidos/{id} [put]
func (h *PedidosHandler) ActualizarPedido(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPedido(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrPedidoNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		if errors.Is(err, service.ErrPedidoModificado) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CancelarPedido godoc
// @Summary      Cancelar un pedido propio
// @Description  Sólo pedidos en PENDIENTE_PAGO. Repone stock.
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del pedido"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /api/pedidos/{id}/cancelar [post]
func (h *PedidosHandler) CancelarPedido(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	clienteID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	if err := h.svc.CancelarComoCliente(c.Request.Context(), clienteID, id); err != nil {
		if errors.Is(err, service.ErrPedidoNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		if errors.Is(err, service.ErrPedidoModificado) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
