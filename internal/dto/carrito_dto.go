package dto

import "github.com/shopspring/decimal"

type AgregarItemCarritoRequest struct {
	ProductoID string `json:"id_producto" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type ActualizarItemCarritoRequest struct {
	Cantidad int `json:"cantidad" validate:"required,min=1"`
}

type ItemCarritoResponse struct {
	ID         string          `json:"id"`
	ProductoID string          `json:"id_producto"`
	Producto   string          `json:"producto"`
	Tipo       string          `json:"tipo"`
	Precio     decimal.Decimal `json:"precio"`
	Cantidad   int             `json:"cantidad"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type CarritoResponse struct {
	ID    string                `json:"id"`
	Items []ItemCarritoResponse `json:"items"`
	Total decimal.Decimal       `json:"total"`
}
