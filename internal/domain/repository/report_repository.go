package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// SummaryResult totales del inventario. La DB sustituye 0 cuando no hay filas
// (COALESCE), así el payload nunca lleva nulls.
type SummaryResult struct {
	TotalItems     int
	TotalQuantity  int
	TotalSold      int
	TotalRemaining int
}

// ReportRepository define las consultas de lectura para reportes de inventario.
// Las implementaciones son read-only (no modifican datos).
type ReportRepository interface {
	// GetSummary devuelve los totales de items, cantidad, vendido y restante.
	GetSummary(ctx context.Context) (SummaryResult, error)

	// GetLowStock devuelve los items con remaining_qty bajo el umbral (estricto),
	// ordenados ascendente por remaining_qty (los más urgentes primero).
	GetLowStock(ctx context.Context, threshold int) ([]*entity.Item, error)

	// GetRecentExits devuelve los items con exit_date dentro de los últimos `days`
	// días (inclusive), ordenados descendente por exit_date.
	GetRecentExits(ctx context.Context, days int) ([]*entity.Item, error)
}
