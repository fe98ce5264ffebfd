package core

import (
	"context"
	"time"

	"sembrador-pos/internal/pos/domain/dto"
	"sembrador-pos/internal/pos/domain/models"
)

type IShiftRepo interface {
	// Open force-closes any open shift on the register and inserts a new
	// open one, as a single transaction.
	Open(ctx context.Context, registerID string, openingCashCents int64) (models.Shift, error)
	Current(ctx context.Context, registerID string) (*models.Shift, error)
	Close(ctx context.Context, shiftID string, closingCashCents *int64, notes string) (models.Shift, error)
	Summary(ctx context.Context, shiftID string) (dto.ShiftSummary, error)
}

type IOrderRepo interface {
	Create(ctx context.Context, registerID string) (models.Order, error)
	ReplaceItems(ctx context.Context, orderID string, items []dto.ItemRequest) (int64, error)
	Pay(ctx context.Context, orderID string, cashReceivedCents int64) (models.Order, error)
	Cancel(ctx context.Context, orderID string) (models.Order, error)
	RecentPaid(ctx context.Context, registerID string, limit int) ([]dto.RecentOrder, error)
}

type ICatalogRepo interface {
	Registers(ctx context.Context) ([]models.Register, error)
	Products(ctx context.Context) ([]models.Product, error)
}

type IReportRepo interface {
	Stats(ctx context.Context, loc *time.Location) (dto.AdminStats, error)
	History(ctx context.Context) ([]dto.ShiftHistoryEntry, error)
}

type IBroker interface {
	Enabled() bool
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}
