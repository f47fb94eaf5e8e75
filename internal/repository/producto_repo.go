package repository

import (
	"context"

	"github.com/HelloMeow10/project-root-sub000/internal/dto"
	"github.com/HelloMeow10/project-root-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for catalog products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	FindTipoPorNombre(ctx context.Context, nombre string) (*model.TipoProducto, error)
	ListTipos(ctx context.Context) ([]model.TipoProducto, error)

	// Package composition
	AgregarComponente(ctx context.Context, det *model.PaqueteDetalle) error
	QuitarComponente(ctx context.Context, paqueteID, productoID uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance.
	// DescontarStockTx decrements only when stock is finite and sufficient;
	// returns the number of rows touched so callers can detect races.
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int64, error)
	ReponerStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("TipoProducto").
		Preload("Pasaje.ConfiguracionAvion").
		Preload("Componentes.Producto").
		First(&p, id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	// Activo filter: "false" = inactivos, "all" = todos, anything else = activos (default)
	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}

	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.Tipo != "" {
		q = q.Joins("JOIN tipos_producto tp ON tp.id = productos.tipo_producto_id").
			Where("tp.nombre = ?", filter.Tipo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("TipoProducto").
		Order("nombre ASC").Limit(filter.Limit).Offset(offset).
		Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *productoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *productoRepo) FindTipoPorNombre(ctx context.Context, nombre string) (*model.TipoProducto, error) {
	var t model.TipoProducto
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&t).Error
	return &t, err
}

func (r *productoRepo) ListTipos(ctx context.Context) ([]model.TipoProducto, error) {
	var tipos []model.TipoProducto
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&tipos).Error
	return tipos, err
}

func (r *productoRepo) AgregarComponente(ctx context.Context, det *model.PaqueteDetalle) error {
	return r.db.WithContext(ctx).Create(det).Error
}

func (r *productoRepo) QuitarComponente(ctx context.Context, paqueteID, productoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("paquete_id = ? AND producto_id = ?", paqueteID, productoID).
		Delete(&model.PaqueteDetalle{}).Error
}

func (r *productoRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int64, error) {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND stock IS NOT NULL AND stock >= ?", id, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	return res.RowsAffected, res.Error
}

func (r *productoRepo) ReponerStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	return tx.Model(&model.Producto{}).
		Where("id = ? AND stock IS NOT NULL", id).
		Update("stock", gorm.Expr("stock + ?", cantidad)).Error
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
