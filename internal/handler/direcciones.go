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

type DireccionesHandler struct{ svc service.DireccionService }

func NewDireccionesHandler(svc service.DireccionService) *DireccionesHandler {
	return &DireccionesHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar direcciones de facturación propias
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.DireccionResponse
// @Router       /api/direcciones [get]
func (h *DireccionesHandler) Listar(c *gin.Context) {
	clienteID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), clienteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar direcciones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary      Crear dirección de facturación
// @Description  Si principal=true, desmarca la principal anterior en la misma transacción.
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.DireccionRequest true "Dirección"
// @Success      201 {object} dto.DireccionResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/direcciones [post]
func (h *DireccionesHandler) Crear(c *gin.Context) {
	var req dto.DireccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	clienteID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), clienteID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary      Actualizar dirección de facturación
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string               true "UUID de la dirección"
// @Param        body body dto.DireccionRequest true "Dirección"
// @Success      200 {object} dto.DireccionResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/direcciones/{id} [put]
func (h *DireccionesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.DireccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	clienteID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), clienteID, id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar dirección de facturación
// @Security     BearerAuth
// @Param        id path string true "UUID de la dirección"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /api/direcciones/{id} [delete]
func (h *DireccionesHandler) Eliminar(c *gin.Context) {
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
	if err := h.svc.Eliminar(c.Request.Context(), clienteID, id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
