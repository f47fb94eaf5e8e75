package service

import (
	"context"
	"errors"

	"github.com/HelloMeow10/project-root-sub000/internal/dto"
	"github.com/HelloMeow10/project-root-sub000/internal/repository"

	"github.com/google/uuid"
)

// VueloService exposes the flight add-on catalog so checkout clients can
// build their class / seat / baggage selections.
type VueloService interface {
	ListarClases(ctx context.Context) ([]dto.TipoAsientoResponse, error)
	// MapaAsientos returns the seat map of a flight product with per-seat
	// occupancy (seats held by any non-cancelled order show ocupado=true).
	MapaAsientos(ctx context.Context, productoID uuid.UUID) ([]dto.AsientoResponse, error)
	ListarOpcionesEquipaje(ctx context.Context) ([]dto.OpcionEquipajeResponse, error)
}

type vueloService struct {
	repo         repository.VueloRepository
	productoRepo repository.ProductoRepository
	pedidoRepo   repository.PedidoRepository
}

func NewVueloService(
	repo repository.VueloRepository,
	productoRepo repository.ProductoRepository,
	pedidoRepo repository.PedidoRepository,
) VueloService {
	return &vueloService{repo: repo, productoRepo: productoRepo, pedidoRepo: pedidoRepo}
}

func (s *vueloService) ListarClases(ctx context.Context) ([]dto.TipoAsientoResponse, error) {
	tipos, err := s.repo.ListTiposAsiento(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TipoAsientoResponse, len(tipos))
	for i, t := range tipos {
		resp[i] = dto.TipoAsientoResponse{
			ID:            t.ID.String(),
			Nombre:        t.Nombre,
			Multiplicador: t.Multiplicador,
		}
	}
	return resp, nil
}

func (s *vueloService) MapaAsientos(ctx context.Context, productoID uuid.UUID) ([]dto.AsientoResponse, error) {
	producto, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil || producto.Pasaje == nil {
		return nil, errors.New("El producto no es un vuelo")
	}

	asientos, err := s.repo.ListAsientosPorConfiguracion(ctx, producto.Pasaje.ConfiguracionAvionID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.AsientoResponse, 0, len(asientos))
	for i := range asientos {
		a := &asientos[i]
		ocupado, err := s.pedidoRepo.AsientoOcupado(ctx, nil, a.ID, productoID)
		if err != nil {
			return nil, err
		}
		tipo := ""
		if a.TipoAsiento != nil {
			tipo = a.TipoAsiento.Nombre
		}
		resp = append(resp, dto.AsientoResponse{
			ID:              a.ID.String(),
			Fila:            a.Fila,
			Columna:         a.Columna,
			Tipo:            tipo,
			PrecioAdicional: a.PrecioAdicional,
			Ocupado:         ocupado,
		})
	}
	return resp, nil
}

func (s *vueloService) ListarOpcionesEquipaje(ctx context.Context) ([]dto.OpcionEquipajeResponse, error) {
	opciones, err := s.repo.ListOpcionesEquipaje(ctx, true)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OpcionEquipajeResponse, len(opciones))
	for i, o := range opciones {
		resp[i] = dto.OpcionEquipajeResponse{
			ID:              o.ID.String(),
			Nombre:          o.Nombre,
			Descripcion:     o.Descripcion,
			PrecioAdicional: o.PrecioAdicional,
		}
	}
	return resp, nil
}
