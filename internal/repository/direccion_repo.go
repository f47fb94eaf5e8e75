package repository

import (
	"context"

	"github.com/HelloMeow10/project-root-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DireccionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.DireccionFacturacion, error)
	ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.DireccionFacturacion, error)
	// CreateTx / UpdateTx run inside the caller's transaction so the principal
	// flag swap commits atomically with the write.
	CreateTx(tx *gorm.DB, d *model.DireccionFacturacion) error
	UpdateTx(tx *gorm.DB, d *model.DireccionFacturacion) error
	// DesmarcarPrincipalTx clears Principal on every address of the customer
	// except the one being written.
	DesmarcarPrincipalTx(tx *gorm.DB, clienteID uuid.UUID, exceptoID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB
}

type direccionRepo struct{ db *gorm.DB }

func NewDireccionRepository(db *gorm.DB) DireccionRepository { return &direccionRepo{db: db} }

func (r *direccionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DireccionFacturacion, error) {
	var d model.DireccionFacturacion
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *direccionRepo) ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.DireccionFacturacion, error) {
	var direcciones []model.DireccionFacturacion
	err := r.db.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Order("principal DESC, created_at ASC").
		Find(&direcciones).Error
	return direcciones, err
}

func (r *direccionRepo) CreateTx(tx *gorm.DB, d *model.DireccionFacturacion) error {
	return tx.Create(d).Error
}

func (r *direccionRepo) UpdateTx(tx *gorm.DB, d *model.DireccionFacturacion) error {
	return tx.Save(d).Error
}

func (r *direccionRepo) DesmarcarPrincipalTx(tx *gorm.DB, clienteID uuid.UUID, exceptoID uuid.UUID) error {
	return tx.Model(&model.DireccionFacturacion{}).
		Where("cliente_id = ? AND id <> ?", clienteID, exceptoID).
		Update("principal", false).Error
}

func (r *direccionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.DireccionFacturacion{}, id).Error
}

func (r *direccionRepo) DB() *gorm.DB { return r.db }
