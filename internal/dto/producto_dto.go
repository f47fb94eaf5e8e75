package dto

import "github.com/shopspring/decimal"

type ProductoFilter struct {
	Tipo   string `form:"tipo"`
	Nombre string `form:"nombre"`
	Activo string `form:"activo"` // "false" | "all" | default activos
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CrearProductoRequest struct {
	Nombre         string          `json:"nombre"      validate:"required"`
	Descripcion    *string         `json:"descripcion"`
	Precio         decimal.Decimal `json:"precio"      validate:"min=0"`
	Stock          *int            `json:"stock"       validate:"omitempty,min=0"`
	TipoProductoID string          `json:"id_tipo_producto" validate:"required,uuid"`
}

type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"`
	Descripcion *string          `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio" validate:"omitempty,min=0"`
	Stock       *int             `json:"stock"  validate:"omitempty,min=0"`
}

type ComponentePaqueteRequest struct {
	ProductoID string `json:"id_producto" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type ComponenteResponse struct {
	ProductoID string `json:"id_producto"`
	Producto   string `json:"producto"`
	Cantidad   int    `json:"cantidad"`
}

type ProductoResponse struct {
	ID          string               `json:"id"`
	Nombre      string               `json:"nombre"`
	Descripcion *string              `json:"descripcion,omitempty"`
	Precio      decimal.Decimal      `json:"precio"`
	Stock       *int                 `json:"stock,omitempty"`
	Activo      bool                 `json:"activo"`
	Tipo        string               `json:"tipo"`
	Componentes []ComponenteResponse `json:"componentes,omitempty"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
