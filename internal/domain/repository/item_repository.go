package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item.
// Las implementaciones devuelven (nil, nil) cuando el item no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// List devuelve todos los items, más recientes primero (sin scoping por oficina:
	// el inventario es visible completo para cualquier rol con permiso de lectura).
	List(ctx context.Context) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	// Delete es idempotente a nivel de storage: borrar un id inexistente no se
	// distingue de un borrado exitoso.
	Delete(ctx context.Context, id string) error
}
