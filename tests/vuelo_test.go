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

// El mapa de asientos marca ocupados los tomados por pedidos no cancelados
// del mismo vuelo.
func TestMapaAsientosConOcupacion(t *testing.T) {
	env := nuevoCheckoutEnv(t)
	env.conCarrito(t, env.clienteID, env.vuelo)

	vueloSvc := service.NewVueloService(env.vueloRepo, env.productoRepo, env.pedidoRepo)

	mapa, err := vueloSvc.MapaAsientos(context.Background(), env.vuelo.ID)
	require.NoError(t, err)
	require.Len(t, mapa, 1)
	assert.False(t, mapa[0].Ocupado)
	assert.Equal(t, "ejecutiva", mapa[0].Tipo)

	_, err = env.svc.CrearPedidoDesdeCarrito(context.Background(), env.clienteID, dto.CrearPedidoRequest{
		Items: []dto.ItemPedidoRequest{env.lineaVueloCompleta(1)},
	})
	require.NoError(t, err)

	mapa, err = vueloSvc.MapaAsientos(context.Background(), env.vuelo.ID)
	require.NoError(t, err)
	require.Len(t, mapa, 1)
	assert.True(t, mapa[0].Ocupado)
}

func TestMapaAsientosDeProductoNoVuelo(t *testing.T) {
	env := nuevoCheckoutEnv(t)
	vueloSvc := service.NewVueloService(env.vueloRepo, env.productoRepo, env.pedidoRepo)

	_, err := vueloSvc.MapaAsientos(context.Background(), env.hotel.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no es un vuelo")

	_, err = vueloSvc.MapaAsientos(context.Background(), uuid.New())
	require.Error(t, err)
}

func TestCatalogoDeAdicionales(t *testing.T) {
	env := nuevoCheckoutEnv(t)
	vueloSvc := service.NewVueloService(env.vueloRepo, env.productoRepo, env.pedidoRepo)

	clases, err := vueloSvc.ListarClases(context.Background())
	require.NoError(t, err)
	require.Len(t, clases, 1)
	require.NotNil(t, clases[0].Multiplicador)
	assert.True(t, clases[0].Multiplicador.Equal(dec("1.5")))

	// Sólo opciones activas.
	inactiva := &model.OpcionEquipaje{ID: uuid.New(), Nombre: "Promo vieja", PrecioAdicional: dec("5")}
	env.vueloRepo.opciones[inactiva.ID] = inactiva
	opciones, err := vueloSvc.ListarOpcionesEquipaje(context.Background())
	require.NoError(t, err)
	require.Len(t, opciones, 1)
	assert.Equal(t, "Valija 23kg", opciones[0].Nombre)
}
