package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
// Los montos van completos y además formateados en rupias con agrupación india.
type DashboardStatsDTO struct {
	TotalSales       decimal.Decimal   `json:"total_sales"`
	TotalPurchases   decimal.Decimal   `json:"total_purchases"`
	PendingAmount    decimal.Decimal   `json:"pending_amount"`
	Receivables      decimal.Decimal   `json:"receivables"`
	PaymentsReceived decimal.Decimal   `json:"payments_received"`
	Formatted        map[string]string `json:"formatted"`

	LowStockCount     int `json:"low_stock_count"`
	TotalPartiesCount int `json:"total_parties_count"`
	CustomersCount    int `json:"customers_count"`
	SuppliersCount    int `json:"suppliers_count"`
	TotalItemsCount   int `json:"total_items_count"`
	InvoicesCount     int `json:"invoices_count"`
	PaidInvoicesCount int `json:"paid_invoices_count"`

	Source      string `json:"source"` // postgres | bff
	GeneratedAt string `json:"generated_at"`
}
