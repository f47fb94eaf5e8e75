package tests

import (
	"context"
	"testing"

	"github.com/HelloMeow10/project-root-sub000/internal/dto"
	"github.com/HelloMeow10/project-root-sub000/internal/model"
	"github.com/HelloMeow10/project-root-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type carritoEnv struct {
	svc          service.CarritoService
	carritoRepo  *stubCarritoRepo
	productoRepo *stubProductoRepo

	clienteID uuid.UUID
	producto  *model.Producto // stock 5, precio 100
}

func nuevoCarritoEnv(t *testing.T) *carritoEnv {
	t.Helper()

	productoRepo := newStubProductoRepo()
	carritoRepo := newStubCarritoRepo(productoRepo)

	tipo := &model.TipoProducto{ID: uuid.New(), Nombre: "hospedaje"}
	productoRepo.tipos[tipo.ID] = tipo

	producto := productoRepo.agregar(&model.Producto{
		Nombre:         "Cabaña en Bariloche",
		Precio:         dec("100"),
		Stock:          intPtr(5),
		Activo:         true,
		TipoProductoID: tipo.ID,
		TipoProducto:   tipo,
	})

	return &carritoEnv{
		svc:          service.NewCarritoService(carritoRepo, productoRepo),
		carritoRepo:  carritoRepo,
		productoRepo: productoRepo,
		clienteID:    uuid.New(),
		producto:     producto,
	}
}

// Sin carrito todavía: la respuesta es un carrito vacío, sin crear la fila.
func TestObtenerCarritoInexistente(t *testing.T) {
	env := nuevoCarritoEnv(t)

	resp, err := env.svc.Obtener(context.Background(), env.clienteID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Total.IsZero())
	assert.Empty(t, env.carritoRepo.carritos)
}

func TestAgregarItemCreaCarrito(t *testing.T) {
	env := nuevoCarritoEnv(t)

	resp, err := env.svc.AgregarItem(context.Background(), env.clienteID, dto.AgregarItemCarritoRequest{
		ProductoID: env.producto.ID.String(),
		Cantidad:   2,
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Cantidad)
	assert.True(t, resp.Items[0].Subtotal.Equal(dec("200")))
	assert.True(t, resp.Total.Equal(dec("200")))
	assert.Equal(t, "hospedaje", resp.Items[0].Tipo)
}

// Agregar el mismo producto otra vez acumula cantidad en el item existente.
func TestAgregarItemAcumulaCantidad(t *testing.T) {
	env := nuevoCarritoEnv(t)

	_, err := env.svc.AgregarItem(context.Background(), env.clienteID, dto.AgregarItemCarritoRequest{
		ProductoID: env.producto.ID.String(),
		Cantidad:   2,
	})
	require.NoError(t, err)

	resp, err := env.svc.AgregarItem(context.Background(), env.clienteID, dto.AgregarItemCarritoRequest{
		ProductoID: env.producto.ID.String(),
		Cantidad:   1,
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1, "no se duplica el item")
	assert.Equal(t, 3, resp.Items[0].Cantidad)
	assert.True(t, resp.Total.Equal(dec("300")))
}

// La acumulación también respeta el stock: 3 + 3 > 5.
func TestAgregarItemAcumuladoSuperaStock(t *testing.T) {
	env := nuevoCarritoEnv(t)

	_, err := env.svc.AgregarItem(context.Background(), env.clienteID, dto.AgregarItemCarritoRequest{
		ProductoID: env.producto.ID.String(),
		Cantidad:   3,
	})
	require.NoError(t, err)

	_, err = env.svc.AgregarItem(context.Background(), env.clienteID, dto.AgregarItemCarritoRequest{
		ProductoID: env.producto.ID.String(),
		Cantidad:   3,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Stock insuficiente")
}

func TestAgregarItemStockInsuficiente(t *testing.T) {
	env := nuevoCarritoEnv(t)

	_, err := env.svc.AgregarItem(context.Background(), env.clienteID, dto.AgregarItemCarritoRequest{
		ProductoID: env.producto.ID.String(),
		Cantidad:   6,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Stock insuficiente")
}

func TestAgregarProductoInactivo(t *testing.T) {
	env := nuevoCarritoEnv(t)
	env.producto.Activo = false

	_, err := env.svc.AgregarItem(context.Background(), env.clienteID, dto.AgregarItemCarritoRequest{
		ProductoID: env.producto.ID.String(),
		Cantidad:   1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactivo")
}

func TestAgregarProductoInexistente(t *testing.T) {
	env := nuevoCarritoEnv(t)

	_, err := env.svc.AgregarItem(context.Background(), env.clienteID, dto.AgregarItemCarritoRequest{
		ProductoID: uuid.New().String(),
		Cantidad:   1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Producto no encontrado")
}

func TestActualizarItemCantidad(t *testing.T) {
	env := nuevoCarritoEnv(t)

	agregado, err := env.svc.AgregarItem(context.Background(), env.clienteID, dto.AgregarItemCarritoRequest{
		ProductoID: env.producto.ID.String(),
		Cantidad:   1,
	})
	require.NoError(t, err)
	itemID, err := uuid.Parse(agregado.Items[0].ID)
	require.NoError(t, err)

	resp, err := env.svc.ActualizarItem(context.Background(), env.clienteID, itemID, dto.ActualizarItemCarritoRequest{
		Cantidad: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Items[0].Cantidad)

	// Subir por encima del stock disponible falla.
	_, err = env.svc.ActualizarItem(context.Background(), env.clienteID, itemID, dto.ActualizarItemCarritoRequest{
		Cantidad: 9,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Stock insuficiente")
}

func TestQuitarItem(t *testing.T) {
	env := nuevoCarritoEnv(t)

	agregado, err := env.svc.AgregarItem(context.Background(), env.clienteID, dto.AgregarItemCarritoRequest{
		ProductoID: env.producto.ID.String(),
		Cantidad:   1,
	})
	require.NoError(t, err)
	itemID, err := uuid.Parse(agregado.Items[0].ID)
	require.NoError(t, err)

	require.NoError(t, env.svc.QuitarItem(context.Background(), env.clienteID, itemID))

	resp, err := env.svc.Obtener(context.Background(), env.clienteID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestQuitarItemAjeno(t *testing.T) {
	env := nuevoCarritoEnv(t)

	agregado, err := env.svc.AgregarItem(context.Background(), env.clienteID, dto.AgregarItemCarritoRequest{
		ProductoID: env.producto.ID.String(),
		Cantidad:   1,
	})
	require.NoError(t, err)
	itemID, err := uuid.Parse(agregado.Items[0].ID)
	require.NoError(t, err)

	// Otro cliente sin carrito.
	err = env.svc.QuitarItem(context.Background(), uuid.New(), itemID)
	assert.ErrorIs(t, err, service.ErrCarritoVacio)
}
