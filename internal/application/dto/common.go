package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// PageResponse página efectivamente aplicada (tras valores por defecto y tope).
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ListResponse sobre genérico de listados. Page se omite en listados sin paginar.
type ListResponse[T any] struct {
	Data []T           `json:"data"`
	Page *PageResponse `json:"page,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    *int   `json:"line,omitempty"` // línea (base 1) del error de cálculo, si aplica
}
