package dto

// ReportResponse payload del reporte: totales + vistas filtradas.
// Las tres sub-consultas son independientes entre sí.
type ReportResponse struct {
	TotalItems     int            `json:"totalItems"`
	TotalQuantity  int            `json:"totalQuantity"`
	TotalSold      int            `json:"totalSold"`
	TotalRemaining int            `json:"totalRemaining"`
	LowStockItems  []ItemResponse `json:"lowStockItems"`
	RecentExits    []ItemResponse `json:"recentExits"`
}
