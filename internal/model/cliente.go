package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is an end customer. Checkout and payment require EmailVerificado.
type Cliente struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email             string    `gorm:"uniqueIndex;not null"`
	Nombre            string    `gorm:"not null"`
	Apellido          *string
	Telefono          *string
	PasswordHash      string `gorm:"not null"`
	EmailVerificado   bool   `gorm:"not null;default:false"`
	TokenVerificacion *string `gorm:"type:varchar(64);index"`
	Activo            bool    `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Direcciones []DireccionFacturacion `gorm:"foreignKey:ClienteID"`
}

func (Cliente) TableName() string { return "clientes" }

// DireccionFacturacion is a customer-owned billing address. At most one per
// customer may have Principal=true; writes clear the flag on the others.
type DireccionFacturacion struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Calle        string    `gorm:"not null"`
	Numero       string    `gorm:"not null"`
	Ciudad       string    `gorm:"not null"`
	Provincia    *string
	CodigoPostal string `gorm:"not null"`
	Pais         string `gorm:"not null"`
	Principal    bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (DireccionFacturacion) TableName() string { return "direcciones_facturacion" }
