package usecase

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Constantes de política del reporte.
const (
	// LowStockThreshold umbral fijo de stock bajo (remaining_qty < 10, estricto).
	LowStockThreshold = 10
	// RecentExitDays ventana de salidas recientes (últimos 30 días, inclusive).
	RecentExitDays = 30
)

// ReportPDFGenerator puerto para la representación PDF del reporte.
// Lo implementa export.MarotoReportGenerator.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, report *dto.ReportResponse) ([]byte, error)
}

// ReportUseCase compone el reporte de inventario: totales + stock bajo + salidas recientes.
type ReportUseCase struct {
	repo repository.ReportRepository
	pdf  ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository, pdf ReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, pdf: pdf}
}

// Generate arma el payload del reporte. Las tres sub-consultas son independientes
// y se ejecutan secuencialmente dentro del request.
func (uc *ReportUseCase) Generate(ctx context.Context) (*dto.ReportResponse, error) {
	summary, err := uc.repo.GetSummary(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.repo.GetLowStock(ctx, LowStockThreshold)
	if err != nil {
		return nil, err
	}
	recentExits, err := uc.repo.GetRecentExits(ctx, RecentExitDays)
	if err != nil {
		return nil, err
	}

	report := &dto.ReportResponse{
		TotalItems:     summary.TotalItems,
		TotalQuantity:  summary.TotalQuantity,
		TotalSold:      summary.TotalSold,
		TotalRemaining: summary.TotalRemaining,
		LowStockItems:  make([]dto.ItemResponse, 0, len(lowStock)),
		RecentExits:    make([]dto.ItemResponse, 0, len(recentExits)),
	}
	for _, it := range lowStock {
		report.LowStockItems = append(report.LowStockItems, *ItemToResponse(it))
	}
	for _, it := range recentExits {
		report.RecentExits = append(report.RecentExits, *ItemToResponse(it))
	}
	return report, nil
}

// GeneratePDF arma el reporte y lo renderiza como PDF.
func (uc *ReportUseCase) GeneratePDF(ctx context.Context) ([]byte, error) {
	report, err := uc.Generate(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateReportPDF(ctx, report)
}
