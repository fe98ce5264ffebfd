package dto

import "time"

type RegisterStats struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	ShiftStatus      *string    `json:"shift_status"`
	OpenedAt         *time.Time `json:"opened_at"`
	OpeningCashCents *int64     `json:"opening_cash_cents"`
	CountSales       int64      `json:"count_sales"`
	TotalSalesCents  int64      `json:"total_sales_cents"`
}

type ProductStats struct {
	Name              string `json:"name"`
	Category          string `json:"category"`
	TotalQty          int64  `json:"total_qty"`
	TotalRevenueCents int64  `json:"total_revenue_cents"`
}

type HourlySales struct {
	HourBlock  int   `json:"hour_block"`
	TotalCents int64 `json:"total_cents"`
}

type CategorySales struct {
	Category   string `json:"category"`
	TotalCents int64  `json:"total_cents"`
}

type AdminStats struct {
	GlobalTotalCents int64           `json:"global_total_cents"`
	Registers        []RegisterStats `json:"registers"`
	ProductsReport   []ProductStats  `json:"products_report"`
	SalesByHour      []HourlySales   `json:"sales_by_hour"`
	SalesByCategory  []CategorySales `json:"sales_by_cat"`
}

type ShiftHistoryEntry struct {
	ID               string     `json:"id"`
	Status           string     `json:"status"`
	RegisterName     string     `json:"register_name"`
	OpenedAt         time.Time  `json:"opened_at"`
	ClosedAt         *time.Time `json:"closed_at"`
	OpeningCashCents int64      `json:"opening_cash_cents"`
	SalesCents       int64      `json:"sales_cents"`
}
