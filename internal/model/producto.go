package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TipoProducto is the product category: "vuelo", "hospedaje", "auto", "paquete".
type TipoProducto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TipoProducto) TableName() string { return "tipos_producto" }

// Producto is any sellable item of the catalog. Stock nil means unlimited
// availability (the product is never decremented at checkout).
type Producto struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre         string    `gorm:"index;not null"`
	Descripcion    *string
	Precio         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock          *int
	Activo         bool      `gorm:"not null;default:true"`
	TipoProductoID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	TipoProducto *TipoProducto `gorm:"foreignKey:TipoProductoID"`
	// Pasaje is populated only for products of type "vuelo".
	Pasaje      *Pasaje          `gorm:"foreignKey:ProductoID"`
	Componentes []PaqueteDetalle `gorm:"foreignKey:PaqueteID"`
}

// PaqueteDetalle links a package product to one of its component products.
type PaqueteDetalle struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PaqueteID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_paquete_componente;not null"`
	ProductoID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_paquete_componente;not null"`
	Cantidad   int       `gorm:"not null;default:1"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (PaqueteDetalle) TableName() string { return "paquete_detalles" }
