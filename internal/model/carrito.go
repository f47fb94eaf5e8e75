package model

import (
	"time"

	"github.com/google/uuid"
)

// Carrito is the in-progress selection of a customer. One active cart per
// customer; created lazily on the first add and kept (emptied) after checkout.
type Carrito struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []ItemCarrito `gorm:"foreignKey:CarritoID"`
}

func (Carrito) TableName() string { return "carritos" }

// ItemCarrito references a product and a tentative quantity. Flight add-on
// selections are NOT stored here — they arrive with the checkout request.
type ItemCarrito struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CarritoID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_carrito_producto;not null"`
	ProductoID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_carrito_producto;not null"`
	Cantidad   int       `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (ItemCarrito) TableName() string { return "items_carrito" }
