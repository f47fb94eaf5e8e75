package dto

type DireccionRequest struct {
	Calle        string  `json:"calle"         validate:"required"`
	Numero       string  `json:"numero"        validate:"required"`
	Ciudad       string  `json:"ciudad"        validate:"required"`
	Provincia    *string `json:"provincia"`
	CodigoPostal string  `json:"codigo_postal" validate:"required"`
	Pais         string  `json:"pais"          validate:"required"`
	Principal    bool    `json:"principal"`
}

type DireccionResponse struct {
	ID           string  `json:"id"`
	Calle        string  `json:"calle"`
	Numero       string  `json:"numero"`
	Ciudad       string  `json:"ciudad"`
	Provincia    *string `json:"provincia,omitempty"`
	CodigoPostal string  `json:"codigo_postal"`
	Pais         string  `json:"pais"`
	Principal    bool    `json:"principal"`
}
