package dto

import (
	"encoding/json"

	"sembrador-pos/internal/pos/domain/models"
)

type OpenShiftRequest struct {
	RegisterID  string      `json:"register_id"`
	OpeningCash json.Number `json:"opening_cash"`
}

type CloseShiftRequest struct {
	ClosingCash json.Number `json:"closing_cash,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

type PaidTotals struct {
	CashReceived int64 `json:"cash_received"`
	ChangeSum    int64 `json:"change_sum"`
}

type ShiftSummary struct {
	Shift models.Shift `json:"shift"`
	Paid  PaidTotals   `json:"paid"`
}
