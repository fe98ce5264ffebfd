package services

import (
	"context"
	"fmt"

	"sembrador-pos/internal/pos/app/core"
	"sembrador-pos/internal/pos/domain/dto"
	"sembrador-pos/internal/pos/domain/models"
	"sembrador-pos/internal/xpkg/logger"
	"sembrador-pos/pkg/money"
)

type OrderService struct {
	orderRepo     core.IOrderRepo
	messageBroker core.IBroker
	mylog         logger.Logger
}

func NewOrderService(orderRepo core.IOrderRepo, messageBroker core.IBroker, mylog logger.Logger) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		messageBroker: messageBroker,
		mylog:         mylog,
	}
}

// Create opens a new order against the register's open shift.
func (s *OrderService) Create(ctx context.Context, req dto.CreateOrderRequest) (models.Order, error) {
	mylog := s.mylog.Action("create_order")

	if req.RegisterID == "" {
		return models.Order{}, fmt.Errorf("register_id: %w", core.ErrFieldIsEmpty)
	}

	order, err := s.orderRepo.Create(ctx, req.RegisterID)
	if err != nil {
		mylog.Error("Failed to create order", err, "register_id", req.RegisterID)
		return models.Order{}, err
	}

	mylog.Info("Order created", "order_id", order.ID, "folio", order.Folio, "shift_id", order.ShiftID)
	return order, nil
}

// ReplaceItems swaps the full item set of an open order. The client always
// resubmits the complete desired list; an empty list clears the order.
// Returns the recomputed total.
func (s *OrderService) ReplaceItems(ctx context.Context, orderID string, req dto.ReplaceItemsRequest) (int64, error) {
	mylog := s.mylog.Action("replace_items")

	if orderID == "" {
		return 0, fmt.Errorf("order_id: %w", core.ErrFieldIsEmpty)
	}
	if err := validateItems(req.Items); err != nil {
		return 0, err
	}

	total, err := s.orderRepo.ReplaceItems(ctx, orderID, req.Items)
	if err != nil {
		mylog.Error("Failed to replace items", err, "order_id", orderID)
		return 0, err
	}

	mylog.Debug("Items replaced", "order_id", orderID, "items", len(req.Items), "total_cents", total)
	return total, nil
}

// Pay finalizes an open order. The cash amount is parsed strictly before the
// transaction starts; the repo layer serializes concurrent attempts.
func (s *OrderService) Pay(ctx context.Context, orderID string, req dto.PayOrderRequest) (models.Order, error) {
	mylog := s.mylog.Action("pay_order")

	if orderID == "" {
		return models.Order{}, fmt.Errorf("order_id: %w", core.ErrFieldIsEmpty)
	}
	cashCents, err := money.ParseCents(req.CashReceived.String())
	if err != nil {
		return models.Order{}, fmt.Errorf("cash_received: %w", err)
	}

	order, err := s.orderRepo.Pay(ctx, orderID, cashCents)
	if err != nil {
		mylog.Error("Failed to pay order", err, "order_id", orderID)
		return models.Order{}, err
	}

	s.publish(ctx, core.EventOrderPaid, order)
	mylog.Info("Order paid", "order_id", order.ID, "folio", order.Folio,
		"total_cents", order.TotalCents, "change_cents", order.ChangeCents)
	return order, nil
}

// Cancel voids an open order. Already-canceled orders are left as they are;
// paid orders cannot be canceled.
func (s *OrderService) Cancel(ctx context.Context, orderID string) (models.Order, error) {
	mylog := s.mylog.Action("cancel_order")

	if orderID == "" {
		return models.Order{}, fmt.Errorf("order_id: %w", core.ErrFieldIsEmpty)
	}

	order, err := s.orderRepo.Cancel(ctx, orderID)
	if err != nil {
		mylog.Error("Failed to cancel order", err, "order_id", orderID)
		return models.Order{}, err
	}

	s.publish(ctx, core.EventOrderCanceled, order)
	mylog.Info("Order canceled", "order_id", order.ID, "folio", order.Folio)
	return order, nil
}

// Recent lists the latest paid orders on a register.
func (s *OrderService) Recent(ctx context.Context, registerID string, limit int) ([]dto.RecentOrder, error) {
	if registerID == "" {
		return nil, fmt.Errorf("register_id: %w", core.ErrFieldIsEmpty)
	}
	if limit <= 0 {
		limit = core.RecentOrdersDefault
	}
	if limit > core.RecentOrdersMax {
		limit = core.RecentOrdersMax
	}
	return s.orderRepo.RecentPaid(ctx, registerID, limit)
}

func validateItems(items []dto.ItemRequest) error {
	for i, item := range items {
		if item.ProductID == "" {
			return fmt.Errorf("item %d: product_id: %w", i+1, core.ErrFieldIsEmpty)
		}
		if item.Qty < 1 {
			return fmt.Errorf("item %d: qty must be positive: %d", i+1, item.Qty)
		}
	}
	return nil
}

func (s *OrderService) publish(ctx context.Context, key string, order models.Order) {
	if !s.messageBroker.Enabled() {
		return
	}
	if err := s.messageBroker.Publish(ctx, key, order); err != nil {
		s.mylog.Action("publish_failed").Error("Failed to publish order event", err,
			"routing_key", key, "order_id", order.ID)
	}
}
