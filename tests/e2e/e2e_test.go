//go:build integration

package e2e

// End-to-end tests over real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/HelloMeow10/project-root-sub000/internal/config"
	"github.com/HelloMeow10/project-root-sub000/internal/infra"
	"github.com/HelloMeow10/project-root-sub000/internal/model"
	"github.com/HelloMeow10/project-root-sub000/internal/router"
	"github.com/HelloMeow10/project-root-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

// catalogo holds the seeded flight fixture: base price 500, stock 10, business
// class ×1.5, seat 12A (+50), checked bag (+30).
type catalogo struct {
	vueloID    uuid.UUID
	claseID    uuid.UUID
	asientoID  uuid.UUID
	equipajeID uuid.UUID
}

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	cat    catalogo
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("turismo_test"),
		tcPostgres.WithUsername("turismo"),
		tcPostgres.WithPassword("turismo"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:                    8000,
		Env:                     "test",
		JWTSecret:               "clave-e2e",
		JWTExpirationHours:      8,
		JWTRefreshHours:         24,
		DatabaseURL:             pgURL,
		RedisURL:                rdURL,
		StripeCurrency:          "usd",
		FrontendURL:             "http://localhost:3000",
		WorkerPoolSize:          1,
		PedidoPendienteTTLHoras: 48,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	dispatcher := worker.NewDispatcher(rdb)
	pagosCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	r := router.New(cfg, db, rdb, dispatcher, pagosCB)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, db: db, cat: sembrarCatalogo(t, db)}
}

func sembrarCatalogo(t *testing.T, db *gorm.DB) catalogo {
	t.Helper()

	tipoVuelo := model.TipoProducto{Nombre: "vuelo"}
	require.NoError(t, db.Create(&tipoVuelo).Error)

	mult := decimal.RequireFromString("1.5")
	clase := model.TipoAsiento{Nombre: "ejecutiva", Multiplicador: &mult}
	require.NoError(t, db.Create(&clase).Error)

	configAvion := model.ConfiguracionAvion{Nombre: "A320 estándar", TotalAsientos: 1}
	require.NoError(t, db.Create(&configAvion).Error)

	asiento := model.AsientoFisico{
		ConfiguracionAvionID: configAvion.ID,
		Fila:                 12,
		Columna:              "A",
		TipoAsientoID:        clase.ID,
		PrecioAdicional:      decimal.RequireFromString("50"),
	}
	require.NoError(t, db.Create(&asiento).Error)

	equipaje := model.OpcionEquipaje{
		Nombre:          "Valija 23kg",
		PrecioAdicional: decimal.RequireFromString("30"),
		Activo:          true,
	}
	require.NoError(t, db.Create(&equipaje).Error)

	stock := 10
	vuelo := model.Producto{
		Nombre:         "Vuelo BUE-MAD",
		Precio:         decimal.RequireFromString("500"),
		Stock:          &stock,
		Activo:         true,
		TipoProductoID: tipoVuelo.ID,
	}
	require.NoError(t, db.Create(&vuelo).Error)

	pasaje := model.Pasaje{
		ProductoID:           vuelo.ID,
		Origen:               "Buenos Aires",
		Destino:              "Madrid",
		FechaSalida:          time.Now().Add(30 * 24 * time.Hour),
		Aerolinea:            "Aerolíneas del Sur",
		ConfiguracionAvionID: configAvion.ID,
	}
	require.NoError(t, db.Create(&pasaje).Error)

	return catalogo{
		vueloID:    vuelo.ID,
		claseID:    clase.ID,
		asientoID:  asiento.ID,
		equipajeID: equipaje.ID,
	}
}

// registrarYVerificar signs a customer up, redeems the verification token read
// from the database (the email only carries a link to it), and logs in.
func registrarYVerificar(t *testing.T, env *testEnv, email string) string {
	t.Helper()

	resp := do(t, env.server, "POST", "/api/auth/registro",
		jsonBody(t, map[string]string{
			"email":    email,
			"nombre":   "Cliente E2E",
			"password": "superSecreta1",
		}), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var tokens []string
	require.NoError(t, env.db.Model(&model.Cliente{}).
		Where("email = ?", email).
		Pluck("token_verificacion", &tokens).Error)
	require.Len(t, tokens, 1)
	token := tokens[0]
	require.NotEmpty(t, token)

	verResp := do(t, env.server, "POST", "/api/auth/verificar-email",
		jsonBody(t, map[string]string{"token": token}), "")
	require.Equal(t, http.StatusOK, verResp.StatusCode)
	verResp.Body.Close()

	return login(t, env, email)
}

func login(t *testing.T, env *testEnv, email string) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/api/auth/login",
		jsonBody(t, map[string]string{"email": email, "password": "superSecreta1"}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func agregarAlCarrito(t *testing.T, env *testEnv, token string, productoID uuid.UUID) {
	t.Helper()
	resp := do(t, env.server, "POST", "/api/carrito/items",
		jsonBody(t, map[string]any{"id_producto": productoID.String(), "cantidad": 1}), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func lineaVuelo(env *testEnv) map[string]any {
	return map[string]any{
		"id_producto":                 env.cat.vueloID.String(),
		"cantidad":                    1,
		"seleccion_clase_servicio_id": env.cat.claseID.String(),
		"seleccion_asiento_fisico_id": env.cat.asientoID.String(),
		"selecciones_equipaje": []map[string]any{
			{"id_opcion_equipaje": env.cat.equipajeID.String(), "cantidad": 1},
		},
	}
}

func stockDeVuelo(t *testing.T, env *testEnv) int {
	t.Helper()
	resp := do(t, env.server, "GET", "/api/productos/"+env.cat.vueloID.String(), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prod struct {
		Stock *int `json:"stock"`
	}
	decodeJSON(t, resp, &prod)
	require.NotNil(t, prod.Stock)
	return *prod.Stock
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Registro → verificación → carrito → checkout con adicionales de vuelo →
// cancelación. El total debe ser 500 × 1.5 + 50 + 30 = 830 y la cancelación
// devuelve el stock.
func TestE2E_FlujoDeCompraCompleto(t *testing.T) {
	env := setupTestEnv(t)
	token := registrarYVerificar(t, env, "cliente@e2e.test")

	agregarAlCarrito(t, env, token, env.cat.vueloID)

	checkoutResp := do(t, env.server, "POST", "/api/pedidos",
		jsonBody(t, map[string]any{"items": []map[string]any{lineaVuelo(env)}}), token)
	require.Equal(t, http.StatusCreated, checkoutResp.StatusCode)
	var pedido struct {
		ID     string `json:"id"`
		Estado string `json:"estado"`
		Total  string `json:"total"`
	}
	decodeJSON(t, checkoutResp, &pedido)
	assert.Equal(t, "PENDIENTE_PAGO", pedido.Estado)
	assert.Equal(t, "830", pedido.Total)

	// El stock bajó y el carrito quedó vacío.
	assert.Equal(t, 9, stockDeVuelo(t, env))
	carritoResp := do(t, env.server, "GET", "/api/carrito", nil, token)
	require.Equal(t, http.StatusOK, carritoResp.StatusCode)
	var carrito struct {
		Items []any `json:"items"`
	}
	decodeJSON(t, carritoResp, &carrito)
	assert.Empty(t, carrito.Items)

	// El mismo asiento para el mismo vuelo queda bloqueado para otro cliente.
	otroToken := registrarYVerificar(t, env, "otro@e2e.test")
	agregarAlCarrito(t, env, otroToken, env.cat.vueloID)
	conflicto := do(t, env.server, "POST", "/api/pedidos",
		jsonBody(t, map[string]any{"items": []map[string]any{lineaVuelo(env)}}), otroToken)
	assert.Equal(t, http.StatusConflict, conflicto.StatusCode)
	conflicto.Body.Close()

	// Cancelar devuelve stock y libera el asiento.
	cancelResp := do(t, env.server, "POST", "/api/pedidos/"+pedido.ID+"/cancelar", nil, token)
	require.Equal(t, http.StatusNoContent, cancelResp.StatusCode)
	cancelResp.Body.Close()
	assert.Equal(t, 10, stockDeVuelo(t, env))

	detalle := do(t, env.server, "GET", "/api/pedidos/"+pedido.ID, nil, token)
	require.Equal(t, http.StatusOK, detalle.StatusCode)
	var cancelado struct {
		Estado string `json:"estado"`
	}
	decodeJSON(t, detalle, &cancelado)
	assert.Equal(t, "CANCELADO", cancelado.Estado)

	reintento := do(t, env.server, "POST", "/api/pedidos",
		jsonBody(t, map[string]any{"items": []map[string]any{lineaVuelo(env)}}), otroToken)
	assert.Equal(t, http.StatusCreated, reintento.StatusCode)
	reintento.Body.Close()
}

// Sin verificar el email, el checkout está vedado.
func TestE2E_CheckoutRequiereEmailVerificado(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "POST", "/api/auth/registro",
		jsonBody(t, map[string]string{
			"email":    "noverificado@e2e.test",
			"nombre":   "Sin Verificar",
			"password": "superSecreta1",
		}), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	token := login(t, env, "noverificado@e2e.test")
	agregarAlCarrito(t, env, token, env.cat.vueloID)

	checkoutResp := do(t, env.server, "POST", "/api/pedidos",
		jsonBody(t, map[string]any{
			"items": []map[string]any{{"id_producto": env.cat.vueloID.String(), "cantidad": 1}},
		}), token)
	assert.Equal(t, http.StatusForbidden, checkoutResp.StatusCode)
	checkoutResp.Body.Close()
}
