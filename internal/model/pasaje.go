package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pasaje holds the flight detail of a "vuelo" product (1:1 with Producto).
type Pasaje struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Origen               string    `gorm:"not null"`
	Destino              string    `gorm:"not null"`
	FechaSalida          time.Time `gorm:"not null"`
	FechaRegreso         *time.Time
	Aerolinea            string    `gorm:"not null"`
	ClaseBaseID          *uuid.UUID `gorm:"type:uuid"`
	ConfiguracionAvionID uuid.UUID  `gorm:"type:uuid;not null;index"`

	ClaseBase          *TipoAsiento        `gorm:"foreignKey:ClaseBaseID"`
	ConfiguracionAvion *ConfiguracionAvion `gorm:"foreignKey:ConfiguracionAvionID"`
}

func (Pasaje) TableName() string { return "pasajes" }

// ConfiguracionAvion is a cabin layout; every physical seat belongs to
// exactly one configuration.
type ConfiguracionAvion struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string    `gorm:"uniqueIndex;not null"`
	TotalAsientos int       `gorm:"not null"`
	CreatedAt     time.Time

	Asientos []AsientoFisico `gorm:"foreignKey:ConfiguracionAvionID"`
}

func (ConfiguracionAvion) TableName() string { return "configuraciones_avion" }

// AsientoFisico is one seat inside a configuration, identified uniquely by
// (configuración, fila, columna). PrecioAdicional is the flat add-on charged
// when a passenger picks this exact seat.
type AsientoFisico struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConfiguracionAvionID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_config_fila_columna;not null"`
	Fila                 int             `gorm:"uniqueIndex:idx_config_fila_columna;not null"`
	Columna              string          `gorm:"uniqueIndex:idx_config_fila_columna;not null"`
	TipoAsientoID        uuid.UUID       `gorm:"type:uuid;not null"`
	PrecioAdicional      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	TipoAsiento *TipoAsiento `gorm:"foreignKey:TipoAsientoID"`
}

func (AsientoFisico) TableName() string { return "asientos_fisicos" }

// TipoAsiento is a service class (economy, business, …) whose Multiplicador
// scales the flight base price. A nil Multiplicador means the class is not
// priceable and must be rejected at checkout.
type TipoAsiento struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string    `gorm:"uniqueIndex;not null"`
	Descripcion   *string
	Multiplicador *decimal.Decimal `gorm:"type:decimal(5,2)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (TipoAsiento) TableName() string { return "tipos_asiento" }

// OpcionEquipaje is a purchasable baggage add-on with a flat per-unit price.
type OpcionEquipaje struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre          string          `gorm:"not null"`
	Descripcion     *string
	PrecioAdicional decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Activo          bool            `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (OpcionEquipaje) TableName() string { return "opciones_equipaje" }
