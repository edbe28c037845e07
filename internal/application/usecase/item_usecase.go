package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ItemsXMLExporter puerto para exportar el inventario como documento XML.
// Lo implementa export.ItemsXMLExporter; la interfaz evita acoplar el use case
// a la librería de XML.
type ItemsXMLExporter interface {
	Export(items []*entity.Item) ([]byte, error)
}

// ItemPolicy políticas configurables del inventario.
type ItemPolicy struct {
	// AllowNegativeRemaining permite quantity_sold > qty. El sistema histórico
	// lo permite (ej. devoluciones registradas como ventas extra).
	AllowNegativeRemaining bool
}

// ItemUseCase CRUD de items. remaining_qty se deriva SIEMPRE en el servidor:
// el valor que mande el cliente se ignora.
type ItemUseCase struct {
	repo     repository.ItemRepository
	exporter ItemsXMLExporter
	policy   ItemPolicy
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, exporter ItemsXMLExporter, policy ItemPolicy) *ItemUseCase {
	return &ItemUseCase{repo: repo, exporter: exporter, policy: policy}
}

// List lista todos los items, más recientes primero.
func (uc *ItemUseCase) List(ctx context.Context) ([]dto.ItemResponse, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *ItemToResponse(it))
	}
	return out, nil
}

// Create valida, deriva remaining_qty y persiste un nuevo item.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.ItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.buildItem(in)
	if err != nil {
		return nil, err
	}
	item.ID = uuid.New().String()
	item.CreatedAt = time.Now()
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return ItemToResponse(item), nil
}

// Update reemplaza todos los campos editables del item (mismas reglas de campos
// requeridos y derivación que Create).
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.buildItem(in)
	if err != nil {
		return nil, err
	}
	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return ItemToResponse(item), nil
}

// Delete elimina un item. Idempotente: borrar un id inexistente no es error.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ExportXML serializa el inventario completo como XML.
func (uc *ItemUseCase) ExportXML(ctx context.Context) ([]byte, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return uc.exporter.Export(items)
}

// buildItem valida el request y construye la entidad con remaining_qty derivado.
// No asigna ID ni CreatedAt; eso lo decide el caller (create vs update).
func (uc *ItemUseCase) buildItem(in dto.ItemRequest) (*entity.Item, error) {
	if in.CompanyName == "" || in.Name == "" || in.PieceType == "" || in.Office == "" || in.Qty == nil {
		return nil, domain.ErrInvalidInput
	}
	qty := *in.Qty
	sold := 0
	if in.QuantitySold != nil {
		sold = *in.QuantitySold
	}
	if qty < 0 || sold < 0 {
		return nil, domain.ErrInvalidInput
	}
	if !uc.policy.AllowNegativeRemaining && sold > qty {
		return nil, domain.ErrNegativeRemaining
	}
	exitDate, err := parseExitDate(in.ExitDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	item := &entity.Item{
		ItemNo:       in.ItemNo,
		CompanyName:  in.CompanyName,
		Name:         in.Name,
		PieceType:    in.PieceType,
		Office:       in.Office,
		Qty:          qty,
		QuantitySold: sold,
		ExitDate:     exitDate,
		ImagePath:    in.ImagePath,
	}
	item.ComputeRemaining()
	return item, nil
}

// parseExitDate acepta "2006-01-02" (formulario del cliente) o RFC3339.
func parseExitDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", *s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ItemToResponse mapea la entidad al DTO de salida.
func ItemToResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	var exitDate *string
	if it.ExitDate != nil {
		s := it.ExitDate.Format("2006-01-02")
		exitDate = &s
	}
	return &dto.ItemResponse{
		ID:           it.ID,
		ItemNo:       it.ItemNo,
		CompanyName:  it.CompanyName,
		Name:         it.Name,
		PieceType:    it.PieceType,
		Office:       it.Office,
		Qty:          it.Qty,
		QuantitySold: it.QuantitySold,
		RemainingQty: it.RemainingQty,
		ExitDate:     exitDate,
		ImagePath:    it.ImagePath,
		CreatedAt:    it.CreatedAt,
	}
}
