package repository

import (
	"context"

	"github.com/HelloMeow10/project-root-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VueloRepository resolves the flight add-on catalog: service classes,
// physical seats, and baggage options.
type VueloRepository interface {
	FindTipoAsiento(ctx context.Context, id uuid.UUID) (*model.TipoAsiento, error)
	ListTiposAsiento(ctx context.Context) ([]model.TipoAsiento, error)
	FindAsiento(ctx context.Context, id uuid.UUID) (*model.AsientoFisico, error)
	ListAsientosPorConfiguracion(ctx context.Context, configID uuid.UUID) ([]model.AsientoFisico, error)
	FindOpcionEquipaje(ctx context.Context, id uuid.UUID) (*model.OpcionEquipaje, error)
	ListOpcionesEquipaje(ctx context.Context, soloActivas bool) ([]model.OpcionEquipaje, error)
}

type vueloRepo struct{ db *gorm.DB }

func NewVueloRepository(db *gorm.DB) VueloRepository { return &vueloRepo{db: db} }

func (r *vueloRepo) FindTipoAsiento(ctx context.Context, id uuid.UUID) (*model.TipoAsiento, error) {
	var t model.TipoAsiento
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *vueloRepo) ListTiposAsiento(ctx context.Context) ([]model.TipoAsiento, error) {
	var tipos []model.TipoAsiento
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&tipos).Error
	return tipos, err
}

func (r *vueloRepo) FindAsiento(ctx context.Context, id uuid.UUID) (*model.AsientoFisico, error) {
	var a model.AsientoFisico
	err := r.db.WithContext(ctx).Preload("TipoAsiento").First(&a, id).Error
	return &a, err
}

func (r *vueloRepo) ListAsientosPorConfiguracion(ctx context.Context, configID uuid.UUID) ([]model.AsientoFisico, error) {
	var asientos []model.AsientoFisico
	err := r.db.WithContext(ctx).
		Preload("TipoAsiento").
		Where("configuracion_avion_id = ?", configID).
		Order("fila ASC, columna ASC").
		Find(&asientos).Error
	return asientos, err
}

func (r *vueloRepo) FindOpcionEquipaje(ctx context.Context, id uuid.UUID) (*model.OpcionEquipaje, error) {
	var o model.OpcionEquipaje
	err := r.db.WithContext(ctx).First(&o, id).Error
	return &o, err
}

func (r *vueloRepo) ListOpcionesEquipaje(ctx context.Context, soloActivas bool) ([]model.OpcionEquipaje, error) {
	q := r.db.WithContext(ctx)
	if soloActivas {
		q = q.Where("activo = true")
	}
	var opciones []model.OpcionEquipaje
	err := q.Order("nombre ASC").Find(&opciones).Error
	return opciones, err
}
