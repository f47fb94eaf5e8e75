package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/HelloMeow10/project-root-sub000/internal/config"
	"github.com/HelloMeow10/project-root-sub000/internal/dto"
	"github.com/HelloMeow10/project-root-sub000/internal/infra"
	"github.com/HelloMeow10/project-root-sub000/internal/model"
	"github.com/HelloMeow10/project-root-sub000/internal/repository"
	"github.com/HelloMeow10/project-root-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v79"
)

// ErrPagoNoDisponible is returned while the gateway circuit breaker is open.
var ErrPagoNoDisponible = errors.New("El servicio de pagos no está disponible, intentá más tarde")

// PagoService charges unpaid orders through the payment gateway and records
// the resulting Venta.
type PagoService interface {
	PagarPedido(ctx context.Context, clienteID, pedidoID uuid.UUID, req dto.PagarPedidoRequest) (*dto.PagoResponse, error)
}

type pagoService struct {
	pedidos    repository.PedidoRepository
	clientes   repository.ClienteRepository
	pedidoSvc  PedidoService
	pasarela   infra.PasarelaPago
	cb         *infra.CircuitBreaker
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewPagoService(
	pedidos repository.PedidoRepository,
	clientes repository.ClienteRepository,
	pedidoSvc PedidoService,
	pasarela infra.PasarelaPago,
	cb *infra.CircuitBreaker,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) PagoService {
	return &pagoService{
		pedidos:    pedidos,
		clientes:   clientes,
		pedidoSvc:  pedidoSvc,
		pasarela:   pasarela,
		cb:         cb,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// PagarPedido charges the order total. Only the owner can pay, only while the
// order is PENDIENTE_PAGO. The gateway call goes through the circuit breaker;
// on success the state write and the Venta insert commit in one transaction.
func (s *pagoService) PagarPedido(ctx context.Context, clienteID, pedidoID uuid.UUID, req dto.PagarPedidoRequest) (*dto.PagoResponse, error) {
	pedido, err := s.pedidos.FindByID(ctx, pedidoID)
	if err != nil || pedido.ClienteID != clienteID {
		return nil, ErrPedidoNoEncontrado
	}
	if pedido.Estado != model.EstadoPendientePago {
		return nil, fmt.Errorf("El pedido no está pendiente de pago (estado actual: %s)", pedido.Estado)
	}

	// The gateway sends its receipt to the customer's address, so the charge
	// needs the Cliente loaded up front.
	cliente, err := s.clientes.FindByID(ctx, pedido.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("no se pudo cargar el cliente del pedido: %w", err)
	}

	var resultado *infra.PagoResult
	cbErr := s.cb.Execute(func() error {
		r, err := s.pasarela.CobrarPedido(ctx, pedido.ID.String(), pedido.Total, s.cfg.StripeCurrency, req.MetodoPago, cliente.Email)
		if err != nil {
			return err
		}
		resultado = r
		return nil
	})
	if cbErr != nil {
		if errors.Is(cbErr, infra.ErrCircuitOpen) {
			return nil, ErrPagoNoDisponible
		}
		return nil, fmt.Errorf("El pago fue rechazado: %w", cbErr)
	}
	if resultado.Estado != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("El pago no se completó (estado: %s)", resultado.Estado)
	}

	venta := &model.Venta{
		PedidoID:        pedido.ID,
		ClienteID:       clienteID,
		Monto:           pedido.Total,
		Moneda:          s.cfg.StripeCurrency,
		PaymentIntentID: resultado.PaymentIntentID,
	}
	if err := s.pedidoSvc.MarcarPagado(ctx, pedido.ID, venta); err != nil {
		// Charged but not recorded: log loudly, the payment id is the
		// reconciliation handle.
		log.Error().
			Err(err).
			Str("pedido_id", pedido.ID.String()).
			Str("payment_intent_id", resultado.PaymentIntentID).
			Msg("pago cobrado pero no registrado")
		return nil, err
	}

	s.enviarConfirmacion(ctx, pedido, venta, cliente)

	return &dto.PagoResponse{
		PedidoID:        pedido.ID.String(),
		Estado:          string(model.EstadoPagado),
		Monto:           venta.Monto,
		Moneda:          venta.Moneda,
		PaymentIntentID: venta.PaymentIntentID,
	}, nil
}

func (s *pagoService) enviarConfirmacion(ctx context.Context, pedido *model.Pedido, venta *model.Venta, cliente *model.Cliente) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail: cliente.Email,
		Subject: fmt.Sprintf("Confirmación de compra — pedido %s", pedido.ID),
		Body: fmt.Sprintf(
			"Hola %s,\n\nRecibimos tu pago de %s %s por el pedido %s.\n¡Gracias por tu compra!",
			cliente.Nombre, venta.Monto.StringFixed(2), venta.Moneda, pedido.ID),
	})
}
