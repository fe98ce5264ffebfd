package models

import "time"

type Register struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceCents int64  `json:"price_cents"`
	SortOrder  int    `json:"sort_order"`
}

type Shift struct {
	ID               string      `json:"id"`
	RegisterID       string      `json:"register_id"`
	Status           ShiftStatus `json:"status"`
	OpenedAt         time.Time   `json:"opened_at"`
	ClosedAt         *time.Time  `json:"closed_at,omitempty"`
	OpeningCashCents int64       `json:"opening_cash_cents"`
	ClosingCashCents *int64      `json:"closing_cash_cents,omitempty"`
	Notes            string      `json:"notes"`
}

type Order struct {
	ID                string      `json:"id"`
	RegisterID        string      `json:"register_id"`
	ShiftID           string      `json:"shift_id"`
	Status            OrderStatus `json:"status"`
	Folio             int64       `json:"folio"`
	TotalCents        int64       `json:"total_cents"`
	CashReceivedCents int64       `json:"cash_received_cents"`
	ChangeCents       int64       `json:"change_cents"`
	CreatedAt         time.Time   `json:"created_at"`
}

type OrderItem struct {
	OrderID        string `json:"order_id"`
	ProductID      string `json:"product_id"`
	Qty            int    `json:"qty"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
}
