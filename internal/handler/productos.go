package handler

import (
	"net/http"

	"github.com/HelloMeow10/project-root-sub000/internal/apierror"
	"github.com/HelloMeow10/project-root-sub000/internal/dto"
	"github.com/HelloMeow10/project-root-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar catálogo
// @Produce      json
// @Param        tipo   query string false "vuelo | hotel | auto | paquete"
// @Param        nombre query string false "Búsqueda por nombre"
// @Param        activo query string false "false | all (default: sólo activos)"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.ProductoListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/productos [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar productos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary      Detalle de un producto
// @Produce      json
// @Param        id path string true "UUID del producto"
// @Success      200 {object} dto.ProductoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/productos/{id} [get]
func (h *ProductosHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary      Crear producto (administración)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearProductoRequest true "Datos del producto"
// @Success      201 {object} dto.ProductoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/productos [post]
func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary      Actualizar producto (administración)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                        true "UUID del producto"
// @Param        body body dto.ActualizarProductoRequest true "Campos a modificar"
// @Success      200 {object} dto.ProductoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/productos/{id} [put]
func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desactivar godoc
// @Summary      Desactivar producto (baja lógica)
// @Security     BearerAuth
// @Param        id path string true "UUID del producto"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /api/productos/{id} [delete]
func (h *ProductosHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Reactivar godoc
// @Summary      Reactivar producto
// @Security     BearerAuth
// @Param        id path string true "UUID del producto"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /api/productos/{id}/reactivar [post]
func (h *ProductosHandler) Reactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// AgregarComponente godoc
// @Summary      Agregar componente a un paquete
// @Accept       json
// @Security     BearerAuth
// @Param        id   path string                       true "UUID del paquete"
// @Param        body body dto.ComponentePaqueteRequest true "Componente"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /api/productos/{id}/componentes [post]
func (h *ProductosHandler) AgregarComponente(c *gin.Context) {
	paqueteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ComponentePaqueteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AgregarComponente(c.Request.Context(), paqueteID, req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// QuitarComponente godoc
// @Summary      Quitar componente de un paquete
// @Security     BearerAuth
// @Param        id         path string true "UUID del paquete"
// @Param        productoId path string true "UUID del componente"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /api/productos/{id}/componentes/{productoId} [delete]
func (h *ProductosHandler) QuitarComponente(c *gin.Context) {
	paqueteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	productoID, err := uuid.Parse(c.Param("productoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.QuitarComponente(c.Request.Context(), paqueteID, productoID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
