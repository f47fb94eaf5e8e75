package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/HelloMeow10/project-root-sub000/internal/config"
	"github.com/HelloMeow10/project-root-sub000/internal/dto"
	"github.com/HelloMeow10/project-root-sub000/internal/infra"
	"github.com/HelloMeow10/project-root-sub000/internal/model"
	"github.com/HelloMeow10/project-root-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
)

// stubPasarela is a scriptable PasarelaPago. fallar makes every charge error;
// estado overrides the PaymentIntent status of successful charges.
type stubPasarela struct {
	fallar      bool
	estado      stripe.PaymentIntentStatus
	cobros      int
	ultimo      decimal.Decimal
	emailRecibo string
}

func (p *stubPasarela) CobrarPedido(_ context.Context, pedidoID string, monto decimal.Decimal, moneda, metodoPagoID, emailRecibo string) (*infra.PagoResult, error) {
	p.cobros++
	p.ultimo = monto
	p.emailRecibo = emailRecibo
	if p.fallar {
		return nil, errors.New("stripe: gateway timeout")
	}
	estado := p.estado
	if estado == "" {
		estado = stripe.PaymentIntentStatusSucceeded
	}
	return &infra.PagoResult{PaymentIntentID: "pi_" + pedidoID[:8], Estado: estado}, nil
}

var _ infra.PasarelaPago = (*stubPasarela)(nil)

type pagoEnv struct {
	svc      service.PagoService
	pasarela *stubPasarela
	cb       *infra.CircuitBreaker

	pedidoEnv *pedidoEnv
	clientes  *stubClienteRepo
}

func nuevoPagoEnv(t *testing.T) *pagoEnv {
	t.Helper()

	pe := nuevoPedidoEnv(t)
	clientes := newStubClienteRepo()
	clientes.clientes[pe.clienteID] = &model.Cliente{
		ID:              pe.clienteID,
		Nombre:          "Ana",
		Email:           "ana@viajera.test",
		EmailVerificado: true,
		Activo:          true,
	}
	pasarela := &stubPasarela{}
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{FailureThreshold: 2})
	cfg := &config.Config{StripeCurrency: "usd"}

	return &pagoEnv{
		svc:       service.NewPagoService(pe.pedidoRepo, clientes, pe.svc, pasarela, cb, nil, cfg),
		pasarela:  pasarela,
		cb:        cb,
		pedidoEnv: pe,
		clientes:  clientes,
	}
}

func TestPagarPedido(t *testing.T) {
	env := nuevoPagoEnv(t)
	pedido := env.pedidoEnv.sembrarPedido(t, model.EstadoPendientePago, itemDe(env.pedidoEnv.ilimitado, 1))

	resp, err := env.svc.PagarPedido(context.Background(), env.pedidoEnv.clienteID, pedido.ID, dto.PagarPedidoRequest{
		MetodoPago: "pm_card_visa",
	})
	require.NoError(t, err)

	assert.Equal(t, "PAGADO", resp.Estado)
	assert.True(t, resp.Monto.Equal(pedido.Total))
	assert.NotEmpty(t, resp.PaymentIntentID)
	assert.True(t, env.pasarela.ultimo.Equal(pedido.Total), "se cobra el total del pedido")
	assert.Equal(t, "ana@viajera.test", env.pasarela.emailRecibo, "el recibo de la pasarela va al email del cliente")

	// El pedido quedó PAGADO y la venta registrada.
	assert.Equal(t, model.EstadoPagado, pedido.Estado)
	venta, err := env.pedidoEnv.ventaRepo.FindByPedidoID(context.Background(), pedido.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.PaymentIntentID, venta.PaymentIntentID)
}

func TestPagarPedidoAjeno(t *testing.T) {
	env := nuevoPagoEnv(t)
	pedido := env.pedidoEnv.sembrarPedido(t, model.EstadoPendientePago, itemDe(env.pedidoEnv.ilimitado, 1))

	_, err := env.svc.PagarPedido(context.Background(), uuid.New(), pedido.ID, dto.PagarPedidoRequest{
		MetodoPago: "pm_card_visa",
	})
	assert.ErrorIs(t, err, service.ErrPedidoNoEncontrado)
	assert.Zero(t, env.pasarela.cobros, "no se toca la pasarela")
}

func TestPagarPedidoYaPagado(t *testing.T) {
	env := nuevoPagoEnv(t)
	pedido := env.pedidoEnv.sembrarPedido(t, model.EstadoPagado, itemDe(env.pedidoEnv.ilimitado, 1))

	_, err := env.svc.PagarPedido(context.Background(), env.pedidoEnv.clienteID, pedido.ID, dto.PagarPedidoRequest{
		MetodoPago: "pm_card_visa",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no está pendiente de pago")
	assert.Zero(t, env.pasarela.cobros)
}

func TestPagoRechazadoPorPasarela(t *testing.T) {
	env := nuevoPagoEnv(t)
	pedido := env.pedidoEnv.sembrarPedido(t, model.EstadoPendientePago, itemDe(env.pedidoEnv.ilimitado, 1))
	env.pasarela.fallar = true

	_, err := env.svc.PagarPedido(context.Background(), env.pedidoEnv.clienteID, pedido.ID, dto.PagarPedidoRequest{
		MetodoPago: "pm_card_visa",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rechazado")
	assert.Equal(t, model.EstadoPendientePago, pedido.Estado, "el pedido sigue pagable")
}

// Un PaymentIntent que no llegó a succeeded no marca el pedido como pagado.
func TestPagoIncompleto(t *testing.T) {
	env := nuevoPagoEnv(t)
	pedido := env.pedidoEnv.sembrarPedido(t, model.EstadoPendientePago, itemDe(env.pedidoEnv.ilimitado, 1))
	env.pasarela.estado = stripe.PaymentIntentStatusRequiresAction

	_, err := env.svc.PagarPedido(context.Background(), env.pedidoEnv.clienteID, pedido.ID, dto.PagarPedidoRequest{
		MetodoPago: "pm_card_visa",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no se completó")
	assert.Equal(t, model.EstadoPendientePago, pedido.Estado)
}

// Tras fallas consecutivas el breaker abre y los pagos fast-failean sin tocar
// la pasarela.
func TestPagoConCircuitoAbierto(t *testing.T) {
	env := nuevoPagoEnv(t)
	pedido := env.pedidoEnv.sembrarPedido(t, model.EstadoPendientePago, itemDe(env.pedidoEnv.ilimitado, 1))
	env.pasarela.fallar = true

	for i := 0; i < 2; i++ {
		_, err := env.svc.PagarPedido(context.Background(), env.pedidoEnv.clienteID, pedido.ID, dto.PagarPedidoRequest{
			MetodoPago: "pm_card_visa",
		})
		require.Error(t, err)
	}
	require.Equal(t, infra.CBOpen, env.cb.State())

	cobrosPrevios := env.pasarela.cobros
	_, err := env.svc.PagarPedido(context.Background(), env.pedidoEnv.clienteID, pedido.ID, dto.PagarPedidoRequest{
		MetodoPago: "pm_card_visa",
	})
	assert.ErrorIs(t, err, service.ErrPagoNoDisponible)
	assert.Equal(t, cobrosPrevios, env.pasarela.cobros)
}
