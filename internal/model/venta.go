package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta records a confirmed payment against a Pedido. Rows are immutable;
// one Venta per successfully paid order.
type Venta struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID        uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	ClienteID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Monto           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Moneda          string          `gorm:"type:varchar(3);not null"`
	PaymentIntentID string          `gorm:"uniqueIndex;not null"`
	CreatedAt       time.Time
}

func (Venta) TableName() string { return "ventas" }
