package services

import (
	"context"

	"sembrador-pos/internal/pos/domain/dto"
	"sembrador-pos/internal/pos/domain/models"
	"sembrador-pos/internal/xpkg/logger"
)

func testLogger() logger.Logger {
	mylog, err := logger.New("ERROR")
	if err != nil {
		panic(err)
	}
	return mylog
}

type mockShiftRepo struct {
	openFn    func(ctx context.Context, registerID string, openingCashCents int64) (models.Shift, error)
	currentFn func(ctx context.Context, registerID string) (*models.Shift, error)
	closeFn   func(ctx context.Context, shiftID string, closingCashCents *int64, notes string) (models.Shift, error)
	summaryFn func(ctx context.Context, shiftID string) (dto.ShiftSummary, error)
}

func (m *mockShiftRepo) Open(ctx context.Context, registerID string, openingCashCents int64) (models.Shift, error) {
	return m.openFn(ctx, registerID, openingCashCents)
}

func (m *mockShiftRepo) Current(ctx context.Context, registerID string) (*models.Shift, error) {
	return m.currentFn(ctx, registerID)
}

func (m *mockShiftRepo) Close(ctx context.Context, shiftID string, closingCashCents *int64, notes string) (models.Shift, error) {
	return m.closeFn(ctx, shiftID, closingCashCents, notes)
}

func (m *mockShiftRepo) Summary(ctx context.Context, shiftID string) (dto.ShiftSummary, error) {
	return m.summaryFn(ctx, shiftID)
}

type mockOrderRepo struct {
	createFn       func(ctx context.Context, registerID string) (models.Order, error)
	replaceItemsFn func(ctx context.Context, orderID string, items []dto.ItemRequest) (int64, error)
	payFn          func(ctx context.Context, orderID string, cashReceivedCents int64) (models.Order, error)
	cancelFn       func(ctx context.Context, orderID string) (models.Order, error)
	recentPaidFn   func(ctx context.Context, registerID string, limit int) ([]dto.RecentOrder, error)
}

func (m *mockOrderRepo) Create(ctx context.Context, registerID string) (models.Order, error) {
	return m.createFn(ctx, registerID)
}

func (m *mockOrderRepo) ReplaceItems(ctx context.Context, orderID string, items []dto.ItemRequest) (int64, error) {
	return m.replaceItemsFn(ctx, orderID, items)
}

func (m *mockOrderRepo) Pay(ctx context.Context, orderID string, cashReceivedCents int64) (models.Order, error) {
	return m.payFn(ctx, orderID, cashReceivedCents)
}

func (m *mockOrderRepo) Cancel(ctx context.Context, orderID string) (models.Order, error) {
	return m.cancelFn(ctx, orderID)
}

func (m *mockOrderRepo) RecentPaid(ctx context.Context, registerID string, limit int) ([]dto.RecentOrder, error) {
	return m.recentPaidFn(ctx, registerID, limit)
}

// mockBroker records published events in order.
type mockBroker struct {
	enabled    bool
	publishErr error
	published  []publishedEvent
}

type publishedEvent struct {
	routingKey string
	payload    any
}

func (m *mockBroker) Enabled() bool { return m.enabled }

func (m *mockBroker) Publish(_ context.Context, routingKey string, payload any) error {
	m.published = append(m.published, publishedEvent{routingKey: routingKey, payload: payload})
	return m.publishErr
}

func (m *mockBroker) Close() error { return nil }
