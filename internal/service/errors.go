package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Sentinel domain errors the handlers map to specific HTTP statuses. All other
// service errors carry a human-readable Spanish message and map to 400.
var (
	ErrCarritoVacio        = errors.New("El carrito está vacío")
	ErrAsientoNoDisponible = errors.New("El asiento seleccionado ya no está disponible")
	ErrPedidoNoEncontrado  = errors.New("Pedido no encontrado")
	ErrTransicionInvalida  = errors.New("Transición de estado no permitida")
	ErrPedidoModificado    = errors.New("El pedido fue modificado por otra operación, reintentá")
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
