package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes de inventario.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// GetSummary devuelve los totales del inventario.
// Usa COALESCE para devolver cero si no hay filas (inventario vacío).
func (r *ReportRepo) GetSummary(ctx context.Context) (repository.SummaryResult, error) {
	const query = `
	SELECT
	    COUNT(*)                          AS total_items,
	    COALESCE(SUM(qty),           0)   AS total_quantity,
	    COALESCE(SUM(quantity_sold), 0)   AS total_sold,
	    COALESCE(SUM(remaining_qty), 0)   AS total_remaining
	FROM items`

	var s repository.SummaryResult
	err := r.pool.QueryRow(ctx, query).
		Scan(&s.TotalItems, &s.TotalQuantity, &s.TotalSold, &s.TotalRemaining)
	if err != nil {
		return repository.SummaryResult{}, fmt.Errorf("reports.GetSummary: %w", err)
	}
	return s, nil
}

// GetLowStock devuelve los items con remaining_qty < threshold (estricto),
// ascendente por remaining_qty. Un item con remaining_qty == threshold queda fuera.
func (r *ReportRepo) GetLowStock(ctx context.Context, threshold int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + `
	FROM items WHERE remaining_qty < $1
	ORDER BY remaining_qty ASC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("reports.GetLowStock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("reports.GetLowStock scan: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// GetRecentExits devuelve los items con exit_date dentro de los últimos `days`
// días (inclusive), descendente por exit_date.
func (r *ReportRepo) GetRecentExits(ctx context.Context, days int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + `
	FROM items
	WHERE exit_date IS NOT NULL
	  AND exit_date >= CURRENT_DATE - $1 * INTERVAL '1 day'
	ORDER BY exit_date DESC`

	rows, err := r.pool.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("reports.GetRecentExits: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("reports.GetRecentExits scan: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
