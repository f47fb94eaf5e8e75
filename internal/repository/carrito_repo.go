package repository

import (
	"context"
	"errors"

	"github.com/HelloMeow10/project-root-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CarritoRepository interface {
	// FindByClienteID loads the customer's cart with items, products, and the
	// flight detail needed for checkout pricing. gorm.ErrRecordNotFound when
	// the customer has no cart yet.
	FindByClienteID(ctx context.Context, clienteID uuid.UUID) (*model.Carrito, error)
	// FindOrCreate returns the customer's cart, creating the row lazily.
	FindOrCreate(ctx context.Context, clienteID uuid.UUID) (*model.Carrito, error)
	AddItem(ctx context.Context, item *model.ItemCarrito) error
	FindItem(ctx context.Context, carritoID, itemID uuid.UUID) (*model.ItemCarrito, error)
	FindItemPorProducto(ctx context.Context, carritoID, productoID uuid.UUID) (*model.ItemCarrito, error)
	UpdateItemCantidad(ctx context.Context, itemID uuid.UUID, cantidad int) error
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	// VaciarTx deletes every item of the cart inside the caller's transaction.
	// The Carrito row itself is retained for reuse.
	VaciarTx(tx *gorm.DB, carritoID uuid.UUID) error
	DB() *gorm.DB
}

type carritoRepo struct{ db *gorm.DB }

func NewCarritoRepository(db *gorm.DB) CarritoRepository { return &carritoRepo{db: db} }

func (r *carritoRepo) FindByClienteID(ctx context.Context, clienteID uuid.UUID) (*model.Carrito, error) {
	var c model.Carrito
	err := r.db.WithContext(ctx).
		Preload("Items.Producto.TipoProducto").
		Preload("Items.Producto.Pasaje").
		Where("cliente_id = ?", clienteID).
		First(&c).Error
	return &c, err
}

func (r *carritoRepo) FindOrCreate(ctx context.Context, clienteID uuid.UUID) (*model.Carrito, error) {
	var c model.Carrito
	err := r.db.WithContext(ctx).Where("cliente_id = ?", clienteID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = model.Carrito{ClienteID: clienteID}
		err = r.db.WithContext(ctx).Create(&c).Error
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *carritoRepo) AddItem(ctx context.Context, item *model.ItemCarrito) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *carritoRepo) FindItem(ctx context.Context, carritoID, itemID uuid.UUID) (*model.ItemCarrito, error) {
	var item model.ItemCarrito
	err := r.db.WithContext(ctx).
		Where("id = ? AND carrito_id = ?", itemID, carritoID).
		First(&item).Error
	return &item, err
}

func (r *carritoRepo) FindItemPorProducto(ctx context.Context, carritoID, productoID uuid.UUID) (*model.ItemCarrito, error) {
	var item model.ItemCarrito
	err := r.db.WithContext(ctx).
		Where("carrito_id = ? AND producto_id = ?", carritoID, productoID).
		First(&item).Error
	return &item, err
}

func (r *carritoRepo) UpdateItemCantidad(ctx context.Context, itemID uuid.UUID, cantidad int) error {
	return r.db.WithContext(ctx).Model(&model.ItemCarrito{}).
		Where("id = ?", itemID).
		Update("cantidad", cantidad).Error
}

func (r *carritoRepo) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ItemCarrito{}, itemID).Error
}

func (r *carritoRepo) VaciarTx(tx *gorm.DB, carritoID uuid.UUID) error {
	return tx.Where("carrito_id = ?", carritoID).Delete(&model.ItemCarrito{}).Error
}

func (r *carritoRepo) DB() *gorm.DB { return r.db }
