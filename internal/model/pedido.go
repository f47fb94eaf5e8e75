package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstadoPedido is the lifecycle state of an order.
type EstadoPedido string

const (
	EstadoPendientePago EstadoPedido = "PENDIENTE_PAGO"
	EstadoPagado        EstadoPedido = "PAGADO"
	EstadoEnProceso     EstadoPedido = "EN_PROCESO"
	EstadoEnviado       EstadoPedido = "ENVIADO"
	EstadoEntregado     EstadoPedido = "ENTREGADO"
	EstadoCompletado    EstadoPedido = "COMPLETADO"
	EstadoCancelado     EstadoPedido = "CANCELADO"
)

// Pedido is a confirmed purchase materialized atomically from a Carrito.
// Total always equals the sum of its items' PrecioTotal.
type Pedido struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	Total                  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado                 EstadoPedido    `gorm:"type:varchar(20);not null;default:'PENDIENTE_PAGO';index"`
	DireccionFacturacionID *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt              time.Time
	UpdatedAt              time.Time

	Items                []ItemPedido          `gorm:"foreignKey:PedidoID"`
	DireccionFacturacion *DireccionFacturacion `gorm:"foreignKey:DireccionFacturacionID"`
}

func (Pedido) TableName() string { return "pedidos" }

// ItemPedido snapshots the product's base unit price at order time.
// PrecioTotal includes flight add-ons (class multiplier, seat, baggage).
// Non-flight items never carry a seat, class, or baggage selection.
type ItemPedido struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TipoAsientoID  *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt      time.Time

	Producto            *Producto           `gorm:"foreignKey:ProductoID"`
	TipoAsiento         *TipoAsiento        `gorm:"foreignKey:TipoAsientoID"`
	SeleccionAsiento    *SeleccionAsiento   `gorm:"foreignKey:ItemPedidoID"`
	SeleccionesEquipaje []SeleccionEquipaje `gorm:"foreignKey:ItemPedidoID"`
}

func (ItemPedido) TableName() string { return "items_pedido" }

// SeleccionAsiento binds an order item to a physical seat. For a given flight
// product a seat may be held by at most one non-cancelled order; the checkout
// transaction enforces this, not the database.
type SeleccionAsiento struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemPedidoID    uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	AsientoFisicoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PrecioAdicional decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt       time.Time

	AsientoFisico *AsientoFisico `gorm:"foreignKey:AsientoFisicoID"`
}

func (SeleccionAsiento) TableName() string { return "selecciones_asiento" }

// SeleccionEquipaje records one baggage option purchased for an order item.
// PrecioAdicional is the computed total: per-unit price × Cantidad.
type SeleccionEquipaje struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemPedidoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	OpcionEquipajeID uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad         int             `gorm:"not null"`
	PrecioAdicional  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt        time.Time

	OpcionEquipaje *OpcionEquipaje `gorm:"foreignKey:OpcionEquipajeID"`
}

func (SeleccionEquipaje) TableName() string { return "selecciones_equipaje" }
