package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, item_no, company_name, name, piece_type, office,
	qty, quantity_sold, remaining_qty, exit_date, image_path, created_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	pool *pgxpool.Pool
}

// NewItemRepository construye el adaptador de persistencia para items.
func NewItemRepository(pool *pgxpool.Pool) *ItemRepo {
	return &ItemRepo{pool: pool}
}

// Create persiste un nuevo item. remaining_qty llega ya calculado por el use case.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, item_no, company_name, name, piece_type, office,
			qty, quantity_sold, remaining_qty, exit_date, image_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(ctx, query,
		item.ID, nullIfEmpty(item.ItemNo), item.CompanyName, item.Name, item.PieceType, item.Office,
		item.Qty, item.QuantitySold, item.RemainingQty, item.ExitDate, nullIfEmpty(item.ImagePath),
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by id: %w", err)
	}
	return item, nil
}

// List devuelve todos los items, más recientes primero.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at DESC, id`
	return r.queryItems(ctx, query)
}

// Update reemplaza todos los campos editables del item (semántica de reemplazo
// completo, no patch parcial).
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET item_no = $2, company_name = $3, name = $4, piece_type = $5,
			office = $6, qty = $7, quantity_sold = $8, remaining_qty = $9,
			exit_date = $10, image_path = $11
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		item.ID, nullIfEmpty(item.ItemNo), item.CompanyName, item.Name, item.PieceType,
		item.Office, item.Qty, item.QuantitySold, item.RemainingQty,
		item.ExitDate, nullIfEmpty(item.ImagePath),
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete elimina un item por ID. Idempotente: un id inexistente no es error.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *ItemRepo) queryItems(ctx context.Context, query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// rowScanner abstrae pgx.Row y pgx.Rows para compartir el scan.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*entity.Item, error) {
	var it entity.Item
	var itemNo, imagePath *string
	if err := row.Scan(
		&it.ID, &itemNo, &it.CompanyName, &it.Name, &it.PieceType, &it.Office,
		&it.Qty, &it.QuantitySold, &it.RemainingQty, &it.ExitDate, &imagePath, &it.CreatedAt,
	); err != nil {
		return nil, err
	}
	if itemNo != nil {
		it.ItemNo = *itemNo
	}
	if imagePath != nil {
		it.ImagePath = *imagePath
	}
	return &it, nil
}

// nullIfEmpty mapea string vacío a NULL en columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
