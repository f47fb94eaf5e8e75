package dto

import "github.com/shopspring/decimal"

type PagarPedidoRequest struct {
	// MetodoPago is the Stripe payment-method id obtained client-side.
	MetodoPago string `json:"metodo_pago" validate:"required"`
}

type PagoResponse struct {
	PedidoID        string          `json:"id_pedido"`
	Estado          string          `json:"estado"`
	Monto           decimal.Decimal `json:"monto"`
	Moneda          string          `json:"moneda"`
	PaymentIntentID string          `json:"payment_intent_id"`
}
