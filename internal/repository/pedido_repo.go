package repository

import (
	"context"
	"time"

	"github.com/HelloMeow10/project-root-sub000/internal/dto"
	"github.com/HelloMeow10/project-root-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PedidoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	List(ctx context.Context, clienteID *uuid.UUID, filter dto.PedidoFilter) ([]model.Pedido, int64, error)
	// UpdateEstadoTx writes the new state only if the order is still in the
	// state the caller read. Returns the affected row count: 0 means a
	// concurrent writer got there first and the caller must not proceed.
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, desde, hacia model.EstadoPedido) (int64, error)
	UpdateDireccion(ctx context.Context, id uuid.UUID, direccionID *uuid.UUID) error

	// AsientoOcupado reports whether the physical seat is already held by a
	// non-cancelled order for the given flight product. The db argument lets
	// the checkout transaction run the authoritative recheck on its own tx;
	// pass nil to query outside a transaction.
	AsientoOcupado(ctx context.Context, db *gorm.DB, asientoID, productoID uuid.UUID) (bool, error)

	// ListPendientesVencidos returns orders stuck in PENDIENTE_PAGO created
	// before the cutoff, for the expiry cron.
	ListPendientesVencidos(ctx context.Context, antesDe time.Time, limit int) ([]model.Pedido, error)

	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	// Nested create persists items, seat selections and baggage selections
	// in the same statement batch.
	return tx.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Items.Producto.TipoProducto").
		Preload("Items.TipoAsiento").
		Preload("Items.SeleccionAsiento.AsientoFisico").
		Preload("Items.SeleccionesEquipaje.OpcionEquipaje").
		First(&p, id).Error
	return &p, err
}

func (r *pedidoRepo) List(ctx context.Context, clienteID *uuid.UUID, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var pedidos []model.Pedido
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Pedido{})
	if clienteID != nil {
		q = q.Where("cliente_id = ?", *clienteID)
	}
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Producto").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&pedidos).Error
	return pedidos, total, err
}

func (r *pedidoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, desde, hacia model.EstadoPedido) (int64, error) {
	res := tx.Model(&model.Pedido{}).
		Where("id = ? AND estado = ?", id, desde).
		Update("estado", hacia)
	return res.RowsAffected, res.Error
}

func (r *pedidoRepo) UpdateDireccion(ctx context.Context, id uuid.UUID, direccionID *uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Pedido{}).
		Where("id = ?", id).
		Update("direccion_facturacion_id", direccionID).Error
}

func (r *pedidoRepo) AsientoOcupado(ctx context.Context, db *gorm.DB, asientoID, productoID uuid.UUID) (bool, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.SeleccionAsiento{}).
		Joins("JOIN items_pedido ip ON ip.id = selecciones_asiento.item_pedido_id").
		Joins("JOIN pedidos p ON p.id = ip.pedido_id").
		Where("selecciones_asiento.asiento_fisico_id = ?", asientoID).
		Where("ip.producto_id = ?", productoID).
		Where("p.estado <> ?", model.EstadoCancelado).
		Count(&count).Error
	return count > 0, err
}

func (r *pedidoRepo) ListPendientesVencidos(ctx context.Context, antesDe time.Time, limit int) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	// Cancellation replenishes stock per item, so the items and their product
	// (for the unlimited-stock skip) must come loaded.
	err := r.db.WithContext(ctx).
		Preload("Items.Producto").
		Where("estado = ? AND created_at < ?", model.EstadoPendientePago, antesDe).
		Order("created_at ASC").
		Limit(limit).
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) DB() *gorm.DB { return r.db }
