package handler

import (
	"net/http"

	"github.com/HelloMeow10/project-root-sub000/internal/apierror"
	"github.com/HelloMeow10/project-root-sub000/internal/dto"
	"github.com/HelloMeow10/project-root-sub000/internal/middleware"
	"github.com/HelloMeow10/project-root-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CarritoHandler struct{ svc service.CarritoService }

func NewCarritoHandler(svc service.CarritoService) *CarritoHandler { return &CarritoHandler{svc: svc} }

// Obtener godoc
// @Summary      Ver el carrito propio
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CarritoResponse
// @Router       /api/carrito [get]
func (h *CarritoHandler) Obtener(c *gin.Context) {
	clienteID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), clienteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al cargar el carrito"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarItem godoc
// @Summary      Agregar producto al carrito
// @Description  Si el producto ya está en el carrito, acumula la cantidad.
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AgregarItemCarritoRequest true "Producto y cantidad"
// @Success      201 {object} dto.CarritoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/carrito/items [post]
func (h *CarritoHandler) AgregarItem(c *gin.Context) {
	var req dto.AgregarItemCarritoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	clienteID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	resp, err := h.svc.AgregarItem(c.Request.Context(), clienteID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ActualizarItem godoc
// @Summary      Cambiar la cantidad de un item
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                            true "UUID del item"
// @Param        body body dto.ActualizarItemCarritoRequest true "Nueva cantidad"
// @Success      200 {object} dto.CarritoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/carrito/items/{id} [put]
func (h *CarritoHandler) ActualizarItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarItemCarritoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	clienteID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	resp, err := h.svc.ActualizarItem(c.Request.Context(), clienteID, itemID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QuitarItem godoc
// @Summary      Quitar un item del carrito
// @Security     BearerAuth
// @Param        id path string true "UUID del item"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /api/carrito/items/{id} [delete]
func (h *CarritoHandler) QuitarItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	clienteID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	if err := h.svc.QuitarItem(c.Request.Context(), clienteID, itemID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
