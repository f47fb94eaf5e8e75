package model

import (
	"time"

	"github.com/google/uuid"
)

// Rol is an administrative role ("administrador", "operador", …).
type Rol struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	CreatedAt   time.Time
}

func (Rol) TableName() string { return "roles" }

// Usuario is an internal (back-office) user.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	RolID        uuid.UUID `gorm:"type:uuid;not null"`
	Activo       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Rol *Rol `gorm:"foreignKey:RolID"`
}

func (Usuario) TableName() string { return "usuarios" }
