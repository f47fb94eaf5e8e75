package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/HelloMeow10/project-root-sub000/internal/config"
	"github.com/HelloMeow10/project-root-sub000/internal/dto"
	"github.com/HelloMeow10/project-root-sub000/internal/model"
	"github.com/HelloMeow10/project-root-sub000/internal/repository"
	"github.com/HelloMeow10/project-root-sub000/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles customer sign-up and login, email verification, and the
// internal back-office user accounts. Customers and internal users live in
// separate tables and carry a "tipo" claim so middleware can tell them apart.
type AuthService interface {
	// Customer-facing
	RegistrarCliente(ctx context.Context, req dto.RegistrarClienteRequest) (*dto.ClienteResponse, error)
	LoginCliente(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	VerificarEmail(ctx context.Context, token string) error
	ReenviarVerificacion(ctx context.Context, clienteID uuid.UUID) error
	PerfilCliente(ctx context.Context, clienteID uuid.UUID) (*dto.ClienteResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)

	// Back-office
	LoginUsuario(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	DesactivarUsuario(ctx context.Context, id uuid.UUID) error
	ReactivarUsuario(ctx context.Context, id uuid.UUID) error
	ListarRoles(ctx context.Context) ([]dto.RolResponse, error)
}

type authService struct {
	clientes   repository.ClienteRepository
	usuarios   repository.UsuarioRepository
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewAuthService(
	clientes repository.ClienteRepository,
	usuarios repository.UsuarioRepository,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) AuthService {
	return &authService{clientes: clientes, usuarios: usuarios, dispatcher: dispatcher, cfg: cfg}
}

// ─── Customers ───────────────────────────────────────────────────────────────

func (s *authService) RegistrarCliente(ctx context.Context, req dto.RegistrarClienteRequest) (*dto.ClienteResponse, error) {
	if _, err := s.clientes.FindByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("el email ya está registrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	token, err := nuevoTokenVerificacion()
	if err != nil {
		return nil, err
	}

	cliente := &model.Cliente{
		Email:             req.Email,
		Nombre:            req.Nombre,
		Apellido:          req.Apellido,
		PasswordHash:      string(hash),
		EmailVerificado:   false,
		TokenVerificacion: &token,
		Activo:            true,
	}
	if err := s.clientes.Create(ctx, cliente); err != nil {
		return nil, err
	}

	s.enqueueVerificacion(ctx, cliente, token)

	return clienteToResponse(cliente), nil
}

func (s *authService) LoginCliente(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	cliente, err := s.clientes.FindByEmail(ctx, req.Email)
	if err != nil || !cliente.Activo {
		return nil, errors.New("credenciales invalidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cliente.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciales invalidas")
	}
	return s.buildLoginResponse(clienteClaims(cliente))
}

// VerificarEmail consumes a single-use verification token. Tokens are cleared
// on success so a second redemption fails.
func (s *authService) VerificarEmail(ctx context.Context, token string) error {
	cliente, err := s.clientes.FindByTokenVerificacion(ctx, token)
	if err != nil {
		return errors.New("token de verificación inválido o ya usado")
	}
	cliente.EmailVerificado = true
	cliente.TokenVerificacion = nil
	return s.clientes.Update(ctx, cliente)
}

func (s *authService) ReenviarVerificacion(ctx context.Context, clienteID uuid.UUID) error {
	cliente, err := s.clientes.FindByID(ctx, clienteID)
	if err != nil {
		return errors.New("cliente no encontrado")
	}
	if cliente.EmailVerificado {
		return errors.New("el email ya está verificado")
	}
	token, err := nuevoTokenVerificacion()
	if err != nil {
		return err
	}
	cliente.TokenVerificacion = &token
	if err := s.clientes.Update(ctx, cliente); err != nil {
		return err
	}
	s.enqueueVerificacion(ctx, cliente, token)
	return nil
}

func (s *authService) PerfilCliente(ctx context.Context, clienteID uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.clientes.FindByID(ctx, clienteID)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	return clienteToResponse(cliente), nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	subStr, _ := claims["sub"].(string)
	uid, err := uuid.Parse(subStr)
	if err != nil {
		return nil, errors.New("token mal formado")
	}

	switch claims["tipo"] {
	case "cliente":
		cliente, err := s.clientes.FindByID(ctx, uid)
		if err != nil || !cliente.Activo {
			return nil, errors.New("cliente no encontrado o inactivo")
		}
		return s.buildLoginResponse(clienteClaims(cliente))
	case "usuario":
		usuario, err := s.usuarios.FindByID(ctx, uid)
		if err != nil || !usuario.Activo {
			return nil, errors.New("usuario no encontrado o inactivo")
		}
		return s.buildLoginResponse(usuarioClaims(usuario))
	default:
		return nil, errors.New("token mal formado")
	}
}

// ─── Internal users ──────────────────────────────────────────────────────────

func (s *authService) LoginUsuario(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := s.usuarios.FindByEmail(ctx, req.Email)
	if err != nil || !usuario.Activo {
		return nil, errors.New("credenciales invalidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciales invalidas")
	}
	return s.buildLoginResponse(usuarioClaims(usuario))
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	rolID, err := uuid.Parse(req.RolID)
	if err != nil {
		return nil, errors.New("rol inválido")
	}
	rol, err := s.usuarios.FindRol(ctx, rolID)
	if err != nil {
		return nil, errors.New("rol inválido")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	usuario := &model.Usuario{
		Email:        req.Email,
		Nombre:       req.Nombre,
		PasswordHash: string(hash),
		RolID:        rol.ID,
		Activo:       true,
	}
	if err := s.usuarios.Create(ctx, usuario); err != nil {
		return nil, err
	}
	usuario.Rol = rol
	return usuarioToResponse(usuario), nil
}

func (s *authService) ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.usuarios.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(usuarios))
	for i := range usuarios {
		resp[i] = *usuarioToResponse(&usuarios[i])
	}
	return resp, nil
}

func (s *authService) ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("usuario no encontrado")
	}
	if req.Nombre != "" {
		usuario.Nombre = req.Nombre
	}
	if req.RolID != nil {
		rolID, err := uuid.Parse(*req.RolID)
		if err != nil {
			return nil, errors.New("rol inválido")
		}
		rol, err := s.usuarios.FindRol(ctx, rolID)
		if err != nil {
			return nil, errors.New("rol inválido")
		}
		usuario.RolID = rol.ID
		usuario.Rol = rol
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		usuario.PasswordHash = string(hash)
	}
	if err := s.usuarios.Update(ctx, usuario); err != nil {
		return nil, err
	}
	return usuarioToResponse(usuario), nil
}

func (s *authService) DesactivarUsuario(ctx context.Context, id uuid.UUID) error {
	return s.usuarios.SoftDelete(ctx, id)
}

func (s *authService) ReactivarUsuario(ctx context.Context, id uuid.UUID) error {
	return s.usuarios.Reactivar(ctx, id)
}

func (s *authService) ListarRoles(ctx context.Context) ([]dto.RolResponse, error) {
	roles, err := s.usuarios.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RolResponse, len(roles))
	for i, r := range roles {
		resp[i] = dto.RolResponse{ID: r.ID.String(), Nombre: r.Nombre}
	}
	return resp, nil
}

// ─── Tokens ──────────────────────────────────────────────────────────────────

func (s *authService) buildLoginResponse(claims jwt.MapClaims) (*dto.LoginResponse, error) {
	access, err := s.signToken(claims, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(claims, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
	}, nil
}

func (s *authService) signToken(base jwt.MapClaims, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{}
	for k, v := range base {
		claims[k] = v
	}
	claims["exp"] = time.Now().Add(duration).Unix()
	claims["iat"] = time.Now().Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func clienteClaims(c *model.Cliente) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":              c.ID.String(),
		"tipo":             "cliente",
		"email":            c.Email,
		"email_verificado": c.EmailVerificado,
	}
}

func usuarioClaims(u *model.Usuario) jwt.MapClaims {
	rol := ""
	if u.Rol != nil {
		rol = u.Rol.Nombre
	}
	return jwt.MapClaims{
		"sub":   u.ID.String(),
		"tipo":  "usuario",
		"email": u.Email,
		"rol":   rol,
	}
}

func nuevoTokenVerificacion() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *authService) enqueueVerificacion(ctx context.Context, cliente *model.Cliente, token string) {
	if s.dispatcher == nil {
		return
	}
	link := fmt.Sprintf("%s/verificar-email?token=%s", s.cfg.FrontendURL, token)
	// Best-effort: a Redis hiccup must not fail registration.
	_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail: cliente.Email,
		Subject: "Verificá tu cuenta",
		Body: fmt.Sprintf(
			"Hola %s,\n\nPara completar tu registro verificá tu email entrando a:\n%s\n\nSi no creaste esta cuenta, ignorá este mensaje.",
			cliente.Nombre, link),
	})
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:              c.ID.String(),
		Email:           c.Email,
		Nombre:          c.Nombre,
		Apellido:        c.Apellido,
		EmailVerificado: c.EmailVerificado,
	}
}

func usuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	rol := ""
	if u.Rol != nil {
		rol = u.Rol.Nombre
	}
	return &dto.UsuarioResponse{
		ID:     u.ID.String(),
		Email:  u.Email,
		Nombre: u.Nombre,
		Rol:    rol,
		Activo: u.Activo,
	}
}
