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

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// RegistrarCliente godoc
// @Summary      Registrar cuenta de cliente
// @Description  Crea la cuenta y envía el email de verificación. Checkout y pago requieren email verificado.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarClienteRequest true "Datos de registro"
// @Success      201 {object} dto.ClienteResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/auth/registro [post]
func (h *AuthHandler) RegistrarCliente(c *gin.Context) {
	var req dto.RegistrarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarCliente(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginCliente godoc
// @Summary      Login de cliente
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credenciales"
// @Success      200 {object} dto.LoginResponse
// @Failure      401 {object} apierror.APIError
// @Router       /api/auth/login [post]
func (h *AuthHandler) LoginCliente(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.LoginCliente(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerificarEmail godoc
// @Summary      Verificar email con token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.VerificarEmailRequest true "Token recibido por email"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /api/auth/verificar-email [post]
func (h *AuthHandler) VerificarEmail(c *gin.Context) {
	var req dto.VerificarEmailRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.VerificarEmail(c.Request.Context(), req.Token); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ReenviarVerificacion godoc
// @Summary      Reenviar email de verificación
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /api/auth/reenviar-verificacion [post]
func (h *AuthHandler) ReenviarVerificacion(c *gin.Context) {
	clienteID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	if err := h.svc.ReenviarVerificacion(c.Request.Context(), clienteID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Perfil godoc
// @Summary      Perfil del cliente autenticado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ClienteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/auth/perfil [get]
func (h *AuthHandler) Perfil(c *gin.Context) {
	clienteID, ok := middleware.SubjectID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	resp, err := h.svc.PerfilCliente(c.Request.Context(), clienteID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary      Renovar tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.RefreshRequest true "Refresh token"
// @Success      200 {object} dto.LoginResponse
// @Failure      401 {object} apierror.APIError
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ─── Back-office ─────────────────────────────────────────────────────────────

// LoginUsuario godoc
// @Summary      Login de usuario interno
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credenciales"
// @Success      200 {object} dto.LoginResponse
// @Failure      401 {object} apierror.APIError
// @Router       /api/admin/login [post]
func (h *AuthHandler) LoginUsuario(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.LoginUsuario(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearUsuario godoc
// @Summary      Crear usuario interno
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearUsuarioRequest true "Datos del usuario"
// @Success      201 {object} dto.UsuarioResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/admin/usuarios [post]
func (h *AuthHandler) CrearUsuario(c *gin.Context) {
	var req dto.CrearUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearUsuario(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarUsuarios godoc
// @Summary      Listar usuarios internos
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        incluir_inactivos query bool false "Incluir cuentas desactivadas"
// @Success      200 {array} dto.UsuarioResponse
// @Router       /api/admin/usuarios [get]
func (h *AuthHandler) ListarUsuarios(c *gin.Context) {
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.ListarUsuarios(c.Request.Context(), incluirInactivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar usuarios"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarUsuario godoc
// @Summary      Actualizar usuario interno
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                       true "UUID del usuario"
// @Param        body body dto.ActualizarUsuarioRequest true "Campos a modificar"
// @Success      200 {object} dto.UsuarioResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/admin/usuarios/{id} [put]
func (h *AuthHandler) ActualizarUsuario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarUsuario(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DesactivarUsuario godoc
// @Summary      Desactivar usuario interno
// @Tags         admin
// @Security     BearerAuth
// @Param        id path string true "UUID del usuario"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /api/admin/usuarios/{id} [delete]
func (h *AuthHandler) DesactivarUsuario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.DesactivarUsuario(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ReactivarUsuario godoc
// @Summary      Reactivar usuario interno
// @Tags         admin
// @Security     BearerAuth
// @Param        id path string true "UUID del usuario"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /api/admin/usuarios/{id}/reactivar [post]
func (h *AuthHandler) ReactivarUsuario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.ReactivarUsuario(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarRoles godoc
// @Summary      Listar roles
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.RolResponse
// @Router       /api/admin/roles [get]
func (h *AuthHandler) ListarRoles(c *gin.Context) {
	resp, err := h.svc.ListarRoles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar roles"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
