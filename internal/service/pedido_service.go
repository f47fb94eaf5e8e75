package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/HelloMeow10/project-root-sub000/internal/dto"
	"github.com/HelloMeow10/project-root-sub000/internal/model"
	"github.com/HelloMeow10/project-root-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PedidoService manages the order lifecycle after checkout.
type PedidoService interface {
	ObtenerPedido(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	ListarPedidos(ctx context.Context, clienteID *uuid.UUID, filter dto.PedidoFilter) (*dto.PedidoListResponse, error)
	// ActualizarPedido applies an administrative patch. A transition to
	// CANCELADO replenishes stock in the same transaction as the state write.
	ActualizarPedido(ctx context.Context, id uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error)
	// CancelarComoCliente cancels the customer's own order, permitted only
	// while it is still unpaid.
	CancelarComoCliente(ctx context.Context, clienteID, pedidoID uuid.UUID) error
	// MarcarPagado transitions to PAGADO and records the Venta, one tx.
	MarcarPagado(ctx context.Context, pedidoID uuid.UUID, venta *model.Venta) error
	// CancelarVencidos cancels unpaid orders created before the cutoff,
	// replenishing stock. Returns how many orders were cancelled.
	CancelarVencidos(ctx context.Context, antesDe time.Time) (int, error)
}

// transiciones is the order state machine. Cancellation is the only
// transition carrying a side effect (stock replenishment); keeping the table
// explicit prevents a future state from silently skipping the compensation.
var transiciones = map[model.EstadoPedido][]model.EstadoPedido{
	model.EstadoPendientePago: {model.EstadoPagado, model.EstadoCancelado},
	model.EstadoPagado:        {model.EstadoEnProceso, model.EstadoCancelado},
	model.EstadoEnProceso:     {model.EstadoEnviado, model.EstadoCancelado},
	model.EstadoEnviado:       {model.EstadoEntregado, model.EstadoCancelado},
	model.EstadoEntregado:     {model.EstadoCompletado, model.EstadoCancelado},
	model.EstadoCompletado:    {},
	model.EstadoCancelado:     {},
}

func transicionPermitida(desde, hacia model.EstadoPedido) bool {
	for _, e := range transiciones[desde] {
		if e == hacia {
			return true
		}
	}
	return false
}

type pedidoService struct {
	repo         repository.PedidoRepository
	productoRepo repository.ProductoRepository
	ventaRepo    repository.VentaRepository
}

func NewPedidoService(
	repo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	ventaRepo repository.VentaRepository,
) PedidoService {
	return &pedidoService{repo: repo, productoRepo: productoRepo, ventaRepo: ventaRepo}
}

func (s *pedidoService) ObtenerPedido(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrPedidoNoEncontrado
	}
	return pedidoToResponse(pedido), nil
}

func (s *pedidoService) ListarPedidos(ctx context.Context, clienteID *uuid.UUID, filter dto.PedidoFilter) (*dto.PedidoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	pedidos, total, err := s.repo.List(ctx, clienteID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		data = append(data, *pedidoToResponse(&pedidos[i]))
	}
	return &dto.PedidoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *pedidoService) ActualizarPedido(ctx context.Context, id uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrPedidoNoEncontrado
	}

	if req.Estado != nil {
		nuevo := model.EstadoPedido(*req.Estado)
		if nuevo != pedido.Estado {
			if !transicionPermitida(pedido.Estado, nuevo) {
				return nil, fmt.Errorf("%w: %s → %s", ErrTransicionInvalida, pedido.Estado, nuevo)
			}
			if nuevo == model.EstadoCancelado {
				if err := s.cancelar(ctx, pedido); err != nil {
					return nil, err
				}
			} else {
				if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
					filas, err := s.repo.UpdateEstadoTx(tx, pedido.ID, pedido.Estado, nuevo)
					if err != nil {
						return err
					}
					if filas == 0 {
						return ErrPedidoModificado
					}
					return nil
				}); err != nil {
					return nil, err
				}
			}
			pedido.Estado = nuevo
		}
	}

	if req.DireccionFacturacionID != nil {
		dirID, err := uuid.Parse(*req.DireccionFacturacionID)
		if err != nil {
			return nil, fmt.Errorf("id_direccion_facturacion inválido: %w", err)
		}
		if err := s.repo.UpdateDireccion(ctx, pedido.ID, &dirID); err != nil {
			return nil, err
		}
		pedido.DireccionFacturacionID = &dirID
	}

	return pedidoToResponse(pedido), nil
}

// cancelar runs the compensating transaction. The state write goes first and
// is conditional on the state the caller read: if a concurrent payment (or any
// other transition) landed in between, zero rows match and the cancellation
// aborts before touching stock. Then every item over a finite-stock product
// returns its quantity; a failed replenishment rolls back the state write too.
func (s *pedidoService) cancelar(ctx context.Context, pedido *model.Pedido) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		filas, err := s.repo.UpdateEstadoTx(tx, pedido.ID, pedido.Estado, model.EstadoCancelado)
		if err != nil {
			return err
		}
		if filas == 0 {
			return ErrPedidoModificado
		}
		for _, item := range pedido.Items {
			if item.Producto != nil && item.Producto.Stock == nil {
				continue
			}
			if err := s.productoRepo.ReponerStockTx(tx, item.ProductoID, item.Cantidad); err != nil {
				return fmt.Errorf("error reponiendo stock del producto %s: %w", item.ProductoID, err)
			}
		}
		return nil
	})
}

func (s *pedidoService) CancelarComoCliente(ctx context.Context, clienteID, pedidoID uuid.UUID) error {
	pedido, err := s.repo.FindByID(ctx, pedidoID)
	if err != nil || pedido.ClienteID != clienteID {
		return ErrPedidoNoEncontrado
	}
	if pedido.Estado != model.EstadoPendientePago {
		return errors.New("Sólo se pueden cancelar pedidos pendientes de pago")
	}
	return s.cancelar(ctx, pedido)
}

func (s *pedidoService) MarcarPagado(ctx context.Context, pedidoID uuid.UUID, venta *model.Venta) error {
	pedido, err := s.repo.FindByID(ctx, pedidoID)
	if err != nil {
		return ErrPedidoNoEncontrado
	}
	if !transicionPermitida(pedido.Estado, model.EstadoPagado) {
		return fmt.Errorf("%w: %s → %s", ErrTransicionInvalida, pedido.Estado, model.EstadoPagado)
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		filas, err := s.repo.UpdateEstadoTx(tx, pedidoID, pedido.Estado, model.EstadoPagado)
		if err != nil {
			return err
		}
		if filas == 0 {
			return ErrPedidoModificado
		}
		return s.ventaRepo.CreateTx(tx, venta)
	})
}

func (s *pedidoService) CancelarVencidos(ctx context.Context, antesDe time.Time) (int, error) {
	pedidos, err := s.repo.ListPendientesVencidos(ctx, antesDe, 50)
	if err != nil {
		return 0, err
	}
	cancelados := 0
	for i := range pedidos {
		// Each order is its own transaction so one failure does not hold
		// back the rest of the batch.
		if err := s.cancelar(ctx, &pedidos[i]); err != nil {
			if errors.Is(err, ErrPedidoModificado) {
				// Paid (or otherwise transitioned) between the listing and
				// the cancellation; leave it alone.
				continue
			}
			log.Error().
				Err(err).
				Str("pedido_id", pedidos[i].ID.String()).
				Msg("no se pudo cancelar el pedido vencido")
			continue
		}
		cancelados++
	}
	return cancelados, nil
}
