// Package export implementa las representaciones descargables del inventario:
// el reporte en PDF (Maroto v2) y el volcado XML del inventario (etree).
//
// Layout de la página A4 del reporte:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Inventario + fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Items | Cantidad | Vendido | Restante             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Stock bajo (remaining < umbral, ascendente)         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Salidas recientes (últimos 30 días, descendente)    │
//	└─────────────────────────────────────────────────────────────┘
package export

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa usecase.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	appName string
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator(appName string) *MarotoReportGenerator {
	return &MarotoReportGenerator{appName: appName}
}

// GenerateReportPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(_ context.Context, report *dto.ReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("Stock bajo (restante < " + strconv.Itoa(lowStockLabelThreshold) + ")"))
	m.AddRows(itemTableHeaderRow())
	for _, r := range itemTableRows(report.LowStockItems) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitleRow("Salidas recientes (últimos 30 días)"))
	m.AddRows(itemTableHeaderRow())
	for _, r := range itemTableRows(report.RecentExits) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// Umbral fijo de stock bajo; solo para la etiqueta, el filtro vive en el use case.
const lowStockLabelThreshold = 10

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del reporte + fecha de generación.
func headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 5, Color: colorGray,
			}),
		),
	)
}

// summaryRow: los cuatro totales en una línea.
func summaryRow(report *dto.ReportResponse) core.Row {
	cell := func(label string, value int) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(strconv.Itoa(value), props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 6, Align: align.Center, Color: colorPrimary,
			}),
		)
	}
	return row.New(14).Add(
		cell("Items", report.TotalItems),
		cell("Cantidad total", report.TotalQuantity),
		cell("Vendido", report.TotalSold),
		cell("Restante", report.TotalRemaining),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2}),
		),
	)
}

func itemTableHeaderRow() core.Row {
	header := func(size int, label string) core.Col {
		return col.New(size).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
		)
	}
	return row.New(6).Add(
		header(3, "Nombre"),
		header(2, "Empresa"),
		header(2, "Oficina"),
		header(2, "Tipo"),
		header(1, "Cant."),
		header(1, "Vend."),
		header(1, "Rest."),
	)
}

func itemTableRows(items []dto.ItemResponse) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(6).Add(
			col.New(12).Add(text.New("— sin registros —", props.Text{Size: 8, Color: colorGray, Top: 1})),
		)}
	}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		cell := func(size int, value string) core.Col {
			return col.New(size).Add(text.New(value, props.Text{Size: 8, Top: 1}))
		}
		rows = append(rows, row.New(5).Add(
			cell(3, it.Name),
			cell(2, it.CompanyName),
			cell(2, it.Office),
			cell(2, it.PieceType),
			cell(1, strconv.Itoa(it.Qty)),
			cell(1, strconv.Itoa(it.QuantitySold)),
			cell(1, strconv.Itoa(it.RemainingQty)),
		))
	}
	return rows
}
