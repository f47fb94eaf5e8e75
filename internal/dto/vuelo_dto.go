package dto

import "github.com/shopspring/decimal"

type TipoAsientoResponse struct {
	ID            string           `json:"id"`
	Nombre        string           `json:"nombre"`
	Multiplicador *decimal.Decimal `json:"multiplicador,omitempty"`
}

type AsientoResponse struct {
	ID              string          `json:"id"`
	Fila            int             `json:"fila"`
	Columna         string          `json:"columna"`
	Tipo            string          `json:"tipo"`
	PrecioAdicional decimal.Decimal `json:"precio_adicional"`
	Ocupado         bool            `json:"ocupado"`
}

type OpcionEquipajeResponse struct {
	ID              string          `json:"id"`
	Nombre          string          `json:"nombre"`
	Descripcion     *string         `json:"descripcion,omitempty"`
	PrecioAdicional decimal.Decimal `json:"precio_adicional"`
}
