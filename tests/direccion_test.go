package tests

import (
	"context"
	"testing"

	"github.com/HelloMeow10/project-root-sub000/internal/dto"
	"github.com/HelloMeow10/project-root-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevaDireccion(principal bool) dto.DireccionRequest {
	return dto.DireccionRequest{
		Calle:        "Av. Santa Fe",
		Numero:       "2500",
		Ciudad:       "Buenos Aires",
		CodigoPostal: "C1425",
		Pais:         "Argentina",
		Principal:    principal,
	}
}

// A lo sumo una dirección principal por cliente: marcar una nueva desmarca
// las anteriores.
func TestDireccionPrincipalUnica(t *testing.T) {
	repo := newStubDireccionRepo()
	svc := service.NewDireccionService(repo)
	clienteID := uuid.New()

	primera, err := svc.Crear(context.Background(), clienteID, nuevaDireccion(true))
	require.NoError(t, err)
	assert.True(t, primera.Principal)

	segunda, err := svc.Crear(context.Background(), clienteID, nuevaDireccion(true))
	require.NoError(t, err)
	assert.True(t, segunda.Principal)

	lista, err := svc.Listar(context.Background(), clienteID)
	require.NoError(t, err)
	require.Len(t, lista, 2)

	principales := 0
	for _, d := range lista {
		if d.Principal {
			principales++
			assert.Equal(t, segunda.ID, d.ID)
		}
	}
	assert.Equal(t, 1, principales)
}

// El flag principal de un cliente no toca las direcciones de otro.
func TestDireccionPrincipalPorCliente(t *testing.T) {
	repo := newStubDireccionRepo()
	svc := service.NewDireccionService(repo)

	clienteA := uuid.New()
	clienteB := uuid.New()

	_, err := svc.Crear(context.Background(), clienteA, nuevaDireccion(true))
	require.NoError(t, err)
	_, err = svc.Crear(context.Background(), clienteB, nuevaDireccion(true))
	require.NoError(t, err)

	listaA, err := svc.Listar(context.Background(), clienteA)
	require.NoError(t, err)
	require.Len(t, listaA, 1)
	assert.True(t, listaA[0].Principal)
}

func TestActualizarDireccionMarcaPrincipal(t *testing.T) {
	repo := newStubDireccionRepo()
	svc := service.NewDireccionService(repo)
	clienteID := uuid.New()

	principal, err := svc.Crear(context.Background(), clienteID, nuevaDireccion(true))
	require.NoError(t, err)
	secundaria, err := svc.Crear(context.Background(), clienteID, nuevaDireccion(false))
	require.NoError(t, err)

	secundariaID, err := uuid.Parse(secundaria.ID)
	require.NoError(t, err)

	req := nuevaDireccion(true)
	req.Ciudad = "Córdoba"
	actualizada, err := svc.Actualizar(context.Background(), clienteID, secundariaID, req)
	require.NoError(t, err)
	assert.True(t, actualizada.Principal)
	assert.Equal(t, "Córdoba", actualizada.Ciudad)

	principalID, err := uuid.Parse(principal.ID)
	require.NoError(t, err)
	vieja, err := repo.FindByID(context.Background(), principalID)
	require.NoError(t, err)
	assert.False(t, vieja.Principal)
}

func TestActualizarDireccionAjena(t *testing.T) {
	repo := newStubDireccionRepo()
	svc := service.NewDireccionService(repo)

	duenio := uuid.New()
	creada, err := svc.Crear(context.Background(), duenio, nuevaDireccion(false))
	require.NoError(t, err)
	id, err := uuid.Parse(creada.ID)
	require.NoError(t, err)

	_, err = svc.Actualizar(context.Background(), uuid.New(), id, nuevaDireccion(false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Dirección no encontrada")
}

func TestEliminarDireccion(t *testing.T) {
	repo := newStubDireccionRepo()
	svc := service.NewDireccionService(repo)
	clienteID := uuid.New()

	creada, err := svc.Crear(context.Background(), clienteID, nuevaDireccion(false))
	require.NoError(t, err)
	id, err := uuid.Parse(creada.ID)
	require.NoError(t, err)

	// Un tercero no puede borrarla.
	err = svc.Eliminar(context.Background(), uuid.New(), id)
	require.Error(t, err)

	require.NoError(t, svc.Eliminar(context.Background(), clienteID, id))
	lista, err := svc.Listar(context.Background(), clienteID)
	require.NoError(t, err)
	assert.Empty(t, lista)
}
