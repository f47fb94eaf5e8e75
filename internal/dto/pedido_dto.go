package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SeleccionEquipajeRequest is one baggage add-on for a flight line.
type SeleccionEquipajeRequest struct {
	OpcionEquipajeID string `json:"id_opcion_equipaje" validate:"required,uuid"`
	Cantidad         int    `json:"cantidad"           validate:"required,min=1"`
}

// ItemPedidoRequest identifies one cart line at checkout time. The quantity
// here is authoritative, not the one stored in the cart. The three selection
// fields apply to flight products only.
type ItemPedidoRequest struct {
	ProductoID         string                     `json:"id_producto" validate:"required,uuid"`
	Cantidad           int                        `json:"cantidad"    validate:"required,min=1"`
	ClaseServicioID    *string                    `json:"seleccion_clase_servicio_id" validate:"omitempty,uuid"`
	AsientoFisicoID    *string                    `json:"seleccion_asiento_fisico_id" validate:"omitempty,uuid"`
	SeleccionesEquipaje []SeleccionEquipajeRequest `json:"selecciones_equipaje"        validate:"omitempty,dive"`
}

type CrearPedidoRequest struct {
	Items                  []ItemPedidoRequest `json:"items" validate:"required,min=1,dive"`
	DireccionFacturacionID *string             `json:"id_direccion_facturacion" validate:"omitempty,uuid"`
}

// ActualizarPedidoRequest is the admin-side patch for PUT /api/pedidos/:id.
type ActualizarPedidoRequest struct {
	Estado                 *string `json:"estado" validate:"omitempty,oneof=PENDIENTE_PAGO PAGADO EN_PROCESO ENVIADO ENTREGADO COMPLETADO CANCELADO"`
	DireccionFacturacionID *string `json:"id_direccion_facturacion" validate:"omitempty,uuid"`
}

type PedidoFilter struct {
	Estado string `form:"estado"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SeleccionAsientoResponse struct {
	AsientoFisicoID string          `json:"id_asiento_fisico"`
	Fila            int             `json:"fila"`
	Columna         string          `json:"columna"`
	PrecioAdicional decimal.Decimal `json:"precio_adicional"`
}

type SeleccionEquipajeResponse struct {
	OpcionEquipajeID string          `json:"id_opcion_equipaje"`
	Nombre           string          `json:"nombre"`
	Cantidad         int             `json:"cantidad"`
	PrecioAdicional  decimal.Decimal `json:"precio_adicional"`
}

type ItemPedidoResponse struct {
	ID                  string                      `json:"id"`
	ProductoID          string                      `json:"id_producto"`
	Producto            string                      `json:"producto"`
	Cantidad            int                         `json:"cantidad"`
	PrecioUnitario      decimal.Decimal             `json:"precio_unitario"`
	PrecioTotal         decimal.Decimal             `json:"precio_total"`
	ClaseServicio       *string                     `json:"clase_servicio,omitempty"`
	SeleccionAsiento    *SeleccionAsientoResponse   `json:"seleccion_asiento,omitempty"`
	SeleccionesEquipaje []SeleccionEquipajeResponse `json:"selecciones_equipaje,omitempty"`
}

type PedidoResponse struct {
	ID                     string               `json:"id"`
	ClienteID              string               `json:"id_cliente"`
	Estado                 string               `json:"estado"`
	Total                  decimal.Decimal      `json:"total"`
	DireccionFacturacionID *string              `json:"id_direccion_facturacion,omitempty"`
	Items                  []ItemPedidoResponse `json:"items"`
	CreatedAt              string               `json:"created_at"`
}

type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
