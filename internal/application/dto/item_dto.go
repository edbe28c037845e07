package dto

import "time"

// ItemRequest entrada para crear o actualizar un item (update es reemplazo completo,
// los mismos campos requeridos aplican en ambos casos).
// Qty es puntero para distinguir "ausente" de 0, igual que QuantitySold.
// RemainingQty no se acepta del cliente: siempre se deriva en el servidor.
type ItemRequest struct {
	ItemNo       string  `json:"item_no"`
	CompanyName  string  `json:"company_name" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	PieceType    string  `json:"piece_type" validate:"required"`
	Office       string  `json:"office" validate:"required"`
	Qty          *int    `json:"qty" validate:"required,min=0"`
	QuantitySold *int    `json:"quantity_sold" validate:"omitempty,min=0"`
	ExitDate     *string `json:"exit_date"` // "2006-01-02" o RFC3339; vacío = sin salida
	ImagePath    string  `json:"image_path"`
}

// ItemResponse salida de un item.
type ItemResponse struct {
	ID           string    `json:"id"`
	ItemNo       string    `json:"item_no,omitempty"`
	CompanyName  string    `json:"company_name"`
	Name         string    `json:"name"`
	PieceType    string    `json:"piece_type"`
	Office       string    `json:"office"`
	Qty          int       `json:"qty"`
	QuantitySold int       `json:"quantity_sold"`
	RemainingQty int       `json:"remaining_qty"`
	ExitDate     *string   `json:"exit_date"`
	ImagePath    string    `json:"image_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
