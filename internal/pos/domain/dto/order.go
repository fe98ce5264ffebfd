package dto

import (
	"encoding/json"
	"time"
)

type CreateOrderRequest struct {
	RegisterID string `json:"register_id"`
}

type ItemRequest struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type ReplaceItemsRequest struct {
	Items []ItemRequest `json:"items"`
}

type ReplaceItemsResponse struct {
	OK         bool  `json:"ok"`
	TotalCents int64 `json:"total_cents"`
}

type PayOrderRequest struct {
	CashReceived json.Number `json:"cash_received"`
}

type PayOrderResponse struct {
	OK          bool  `json:"ok"`
	ChangeCents int64 `json:"change_cents"`
}

type RecentOrder struct {
	Folio      int64     `json:"folio"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
}
