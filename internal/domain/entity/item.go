package entity

import "time"

// Item representa una pieza del inventario de una oficina.
// RemainingQty es derivado (Qty - QuantitySold): se recalcula en el servidor en cada
// create/update y nunca se confía del input del cliente.
type Item struct {
	ID           string
	ItemNo       string // texto libre opcional
	CompanyName  string
	Name         string
	PieceType    string // texto tipo-enum desde un set fijo de opciones en el cliente
	Office       string
	Qty          int
	QuantitySold int
	RemainingQty int
	ExitDate     *time.Time // fecha de salida/venta, opcional
	ImagePath    string     // referencia opcional a la imagen
	CreatedAt    time.Time
}

// ComputeRemaining recalcula RemainingQty a partir de Qty y QuantitySold.
// Puede quedar negativo si QuantitySold > Qty; la política que lo permite o no
// vive en el use case, no aquí.
func (i *Item) ComputeRemaining() {
	i.RemainingQty = i.Qty - i.QuantitySold
}
