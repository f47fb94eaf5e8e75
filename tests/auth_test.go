package tests

import (
	"context"
	"testing"

	"github.com/HelloMeow10/project-root-sub000/internal/config"
	"github.com/HelloMeow10/project-root-sub000/internal/dto"
	"github.com/HelloMeow10/project-root-sub000/internal/model"
	"github.com/HelloMeow10/project-root-sub000/internal/repository"
	"github.com/HelloMeow10/project-root-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubClienteRepo is an in-memory ClienteRepository.
type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) FindByEmail(_ context.Context, email string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) FindByTokenVerificacion(_ context.Context, token string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.TokenVerificacion != nil && *c.TokenVerificacion == token {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// stubUsuarioRepo is an in-memory UsuarioRepository with its role catalog.
type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
	roles    map[uuid.UUID]*model.Rol
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{
		usuarios: make(map[uuid.UUID]*model.Usuario),
		roles:    make(map[uuid.UUID]*model.Rol),
	}
}

func (r *stubUsuarioRepo) conRol(nombre string) *model.Rol {
	rol := &model.Rol{ID: uuid.New(), Nombre: nombre}
	r.roles[rol.ID] = rol
	return rol
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u.Rol = r.roles[u.RolID]
	return u, nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email {
			u.Rol = r.roles[u.RolID]
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if !incluirInactivos && !u.Activo {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = false
	}
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = true
	}
	return nil
}

func (r *stubUsuarioRepo) FindRol(_ context.Context, id uuid.UUID) (*model.Rol, error) {
	rol, ok := r.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rol, nil
}

func (r *stubUsuarioRepo) ListRoles(_ context.Context) ([]model.Rol, error) {
	out := make([]model.Rol, 0, len(r.roles))
	for _, rol := range r.roles {
		out = append(out, *rol)
	}
	return out, nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

type authEnv struct {
	svc      service.AuthService
	clientes *stubClienteRepo
	usuarios *stubUsuarioRepo
}

func nuevoAuthEnv(t *testing.T) *authEnv {
	t.Helper()
	clientes := newStubClienteRepo()
	usuarios := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "clave-de-prueba",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
		FrontendURL:        "http://localhost:3000",
	}
	return &authEnv{
		svc:      service.NewAuthService(clientes, usuarios, nil, cfg),
		clientes: clientes,
		usuarios: usuarios,
	}
}

func (e *authEnv) registrar(t *testing.T, email string) *model.Cliente {
	t.Helper()
	resp, err := e.svc.RegistrarCliente(context.Background(), dto.RegistrarClienteRequest{
		Email:    email,
		Nombre:   "Ana",
		Password: "superSecreta1",
	})
	require.NoError(t, err)
	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	return e.clientes.clientes[id]
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRegistrarYLoginCliente(t *testing.T) {
	env := nuevoAuthEnv(t)
	cliente := env.registrar(t, "ana@example.com")

	assert.False(t, cliente.EmailVerificado, "la cuenta nace sin verificar")
	require.NotNil(t, cliente.TokenVerificacion)
	assert.Len(t, *cliente.TokenVerificacion, 64)
	assert.NotEqual(t, "superSecreta1", cliente.PasswordHash, "la contraseña nunca se guarda en claro")

	login, err := env.svc.LoginCliente(context.Background(), dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "superSecreta1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)
	assert.Equal(t, "bearer", login.TokenType)
	assert.Equal(t, 3600, login.ExpiresIn)

	_, err = env.svc.LoginCliente(context.Background(), dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "otraCosa",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciales invalidas")
}

func TestRegistrarEmailDuplicado(t *testing.T) {
	env := nuevoAuthEnv(t)
	env.registrar(t, "ana@example.com")

	_, err := env.svc.RegistrarCliente(context.Background(), dto.RegistrarClienteRequest{
		Email:    "ana@example.com",
		Nombre:   "Otra Ana",
		Password: "superSecreta1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ya está registrado")
}

// El token de verificación es de un solo uso: se limpia al consumirse.
func TestVerificarEmailTokenUnicoUso(t *testing.T) {
	env := nuevoAuthEnv(t)
	cliente := env.registrar(t, "ana@example.com")
	token := *cliente.TokenVerificacion

	require.NoError(t, env.svc.VerificarEmail(context.Background(), token))
	assert.True(t, cliente.EmailVerificado)
	assert.Nil(t, cliente.TokenVerificacion)

	err := env.svc.VerificarEmail(context.Background(), token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inválido o ya usado")
}

func TestReenviarVerificacion(t *testing.T) {
	env := nuevoAuthEnv(t)
	cliente := env.registrar(t, "ana@example.com")
	original := *cliente.TokenVerificacion

	require.NoError(t, env.svc.ReenviarVerificacion(context.Background(), cliente.ID))
	require.NotNil(t, cliente.TokenVerificacion)
	assert.NotEqual(t, original, *cliente.TokenVerificacion, "cada reenvío rota el token")

	// El token viejo queda invalidado.
	err := env.svc.VerificarEmail(context.Background(), original)
	require.Error(t, err)

	// Una cuenta ya verificada no reenvía.
	require.NoError(t, env.svc.VerificarEmail(context.Background(), *cliente.TokenVerificacion))
	err = env.svc.ReenviarVerificacion(context.Background(), cliente.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ya está verificado")
}

func TestRefreshToken(t *testing.T) {
	env := nuevoAuthEnv(t)
	env.registrar(t, "ana@example.com")

	login, err := env.svc.LoginCliente(context.Background(), dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "superSecreta1",
	})
	require.NoError(t, err)

	renovado, err := env.svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)

	_, err = env.svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
}

func TestLoginClienteInactivo(t *testing.T) {
	env := nuevoAuthEnv(t)
	cliente := env.registrar(t, "ana@example.com")
	cliente.Activo = false

	_, err := env.svc.LoginCliente(context.Background(), dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "superSecreta1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciales invalidas")
}

func TestCrearYLoginUsuario(t *testing.T) {
	env := nuevoAuthEnv(t)
	rol := env.usuarios.conRol("administrador")

	creado, err := env.svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Email:    "admin@example.com",
		Nombre:   "Admin",
		Password: "claveDeAdmin1",
		RolID:    rol.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "administrador", creado.Rol)
	assert.True(t, creado.Activo)

	login, err := env.svc.LoginUsuario(context.Background(), dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "claveDeAdmin1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
}

func TestCrearUsuarioRolInvalido(t *testing.T) {
	env := nuevoAuthEnv(t)

	_, err := env.svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Email:    "admin@example.com",
		Nombre:   "Admin",
		Password: "claveDeAdmin1",
		RolID:    uuid.New().String(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rol inválido")
}

func TestDesactivarUsuarioBloqueaLogin(t *testing.T) {
	env := nuevoAuthEnv(t)
	rol := env.usuarios.conRol("operador")

	creado, err := env.svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Email:    "op@example.com",
		Nombre:   "Operador",
		Password: "claveDeOp123",
		RolID:    rol.ID.String(),
	})
	require.NoError(t, err)
	id, err := uuid.Parse(creado.ID)
	require.NoError(t, err)

	require.NoError(t, env.svc.DesactivarUsuario(context.Background(), id))
	_, err = env.svc.LoginUsuario(context.Background(), dto.LoginRequest{
		Email:    "op@example.com",
		Password: "claveDeOp123",
	})
	require.Error(t, err)

	// Reactivado vuelve a entrar.
	require.NoError(t, env.svc.ReactivarUsuario(context.Background(), id))
	_, err = env.svc.LoginUsuario(context.Background(), dto.LoginRequest{
		Email:    "op@example.com",
		Password: "claveDeOp123",
	})
	assert.NoError(t, err)
}
