package dto

type RegistrarClienteRequest struct {
	Email    string  `json:"email"    validate:"required,email"`
	Nombre   string  `json:"nombre"   validate:"required"`
	Apellido *string `json:"apellido"`
	Password string  `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type VerificarEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type ClienteResponse struct {
	ID              string  `json:"id"`
	Email           string  `json:"email"`
	Nombre          string  `json:"nombre"`
	Apellido        *string `json:"apellido,omitempty"`
	EmailVerificado bool    `json:"email_verificado"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// ─── Internal users (admin) ──────────────────────────────────────────────────

type CrearUsuarioRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Nombre   string `json:"nombre"   validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	RolID    string `json:"id_rol"   validate:"required,uuid"`
}

type ActualizarUsuarioRequest struct {
	Nombre   string  `json:"nombre"`
	Password string  `json:"password" validate:"omitempty,min=8"`
	RolID    *string `json:"id_rol"   validate:"omitempty,uuid"`
}

type UsuarioResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
	Activo bool   `json:"activo"`
}

type RolResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}
