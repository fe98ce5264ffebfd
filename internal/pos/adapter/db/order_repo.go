package db

import (
	"context"
	"errors"
	"fmt"

	"sembrador-pos/internal/pos/app/core"
	"sembrador-pos/internal/pos/domain/dto"
	"sembrador-pos/internal/pos/domain/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

const orderColumns = `id, register_id, status, folio, total_cents, cash_received_cents, change_cents, created_at`

// Create inserts a new OPEN order bound to the register's open shift. The
// shift row is locked FOR SHARE so a concurrent shift close cannot slip
// between the lookup and the insert. The folio comes from the table's
// sequence inside the same transaction, so folios are unique across all
// registers even under concurrent creates.
func (r *OrderRepo) Create(ctx context.Context, registerID string) (models.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: begin: %v", core.ErrTxFailed, err)
	}
	defer tx.Rollback(ctx)

	var shiftID string
	err = tx.QueryRow(ctx, `
		SELECT id FROM shifts
		WHERE register_id = $1 AND status = $2
		LIMIT 1 FOR SHARE
	`, registerID, models.ShiftOpen).Scan(&shiftID)
	if errors.Is(err, pgx.ErrNoRows) {
		var regID string
		err = tx.QueryRow(ctx, `SELECT id FROM registers WHERE id = $1`, registerID).Scan(&regID)
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, fmt.Errorf("register %q: %w", registerID, core.ErrUnknownEntity)
		}
		if err != nil {
			return models.Order{}, fmt.Errorf("query register: %w", err)
		}
		return models.Order{}, fmt.Errorf("register %q: %w", registerID, core.ErrNoOpenShift)
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("query open shift: %w", err)
	}

	order := models.Order{
		ID:         uuid.NewString(),
		RegisterID: registerID,
		ShiftID:    shiftID,
		Status:     models.OrderOpen,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (id, register_id, shift_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING folio, created_at
	`, order.ID, order.RegisterID, order.ShiftID, order.Status).Scan(&order.Folio, &order.CreatedAt)
	if err != nil {
		return models.Order{}, fmt.Errorf("insert order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Order{}, fmt.Errorf("%w: commit: %v", core.ErrTxFailed, err)
	}
	return order, nil
}

// ReplaceItems swaps the order's full item set in one transaction: delete all
// lines, re-insert the requested ones priced from the current catalog, update
// the order total. Unknown product ids are skipped, not errors. The order row
// stays locked throughout, so the items and total a reader observes always
// match. Returns the new total.
func (r *OrderRepo) ReplaceItems(ctx context.Context, orderID string, items []dto.ItemRequest) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %v", core.ErrTxFailed, err)
	}
	defer tx.Rollback(ctx)

	var status models.OrderStatus
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("order %q: %w", orderID, core.ErrUnknownEntity)
	}
	if err != nil {
		return 0, fmt.Errorf("lock order: %w", err)
	}
	if status != models.OrderOpen {
		return 0, fmt.Errorf("order %q is %s: %w", orderID, status, core.ErrOrderNotOpen)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return 0, fmt.Errorf("delete items: %w", err)
	}

	var total int64
	batch := &pgx.Batch{}
	inserted := 0
	for _, item := range items {
		var priceCents int64
		err = tx.QueryRow(ctx, `SELECT price_cents FROM products WHERE id = $1`, item.ProductID).Scan(&priceCents)
		if errors.Is(err, pgx.ErrNoRows) {
			// Stale client catalogs send unknown ids; drop the line.
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("query product %q: %w", item.ProductID, err)
		}

		line := priceCents * int64(item.Qty)
		total += line
		batch.Queue(`
			INSERT INTO order_items (order_id, product_id, qty, unit_price_cents, line_total_cents)
			VALUES ($1, $2, $3, $4, $5)
		`, orderID, item.ProductID, item.Qty, priceCents, line)
		inserted++
	}

	if inserted > 0 {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < inserted; i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return 0, fmt.Errorf("insert item: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return 0, fmt.Errorf("close batch: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE orders SET total_cents = $1 WHERE id = $2`, total, orderID); err != nil {
		return 0, fmt.Errorf("update total: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", core.ErrTxFailed, err)
	}
	return total, nil
}

// Pay finalizes the order under an exclusive row lock. A concurrent pay or
// cancel blocks on the lock, then re-reads the status and fails with
// ErrOrderNotOpen instead of double-charging. created_at is refreshed to the
// payment instant: reporting buckets sales by when money changed hands.
func (r *OrderRepo) Pay(ctx context.Context, orderID string, cashReceivedCents int64) (models.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: begin: %v", core.ErrTxFailed, err)
	}
	defer tx.Rollback(ctx)

	var (
		status     models.OrderStatus
		totalCents int64
	)
	err = tx.QueryRow(ctx, `SELECT status, total_cents FROM orders WHERE id = $1 FOR UPDATE`, orderID).
		Scan(&status, &totalCents)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Order{}, fmt.Errorf("order %q: %w", orderID, core.ErrUnknownEntity)
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("lock order: %w", err)
	}
	if !status.CanTransition(models.OrderPaid) {
		return models.Order{}, fmt.Errorf("order %q is %s: %w", orderID, status, core.ErrOrderNotOpen)
	}
	if cashReceivedCents < totalCents {
		return models.Order{}, fmt.Errorf("received %d of %d: %w", cashReceivedCents, totalCents, core.ErrInsufficientCash)
	}

	order := models.Order{ID: orderID, Status: models.OrderPaid}
	err = tx.QueryRow(ctx, `
		UPDATE orders
		SET status = $1, cash_received_cents = $2, change_cents = $3, created_at = NOW()
		WHERE id = $4
		RETURNING register_id, shift_id, folio, total_cents, cash_received_cents, change_cents, created_at
	`, models.OrderPaid, cashReceivedCents, cashReceivedCents-totalCents, orderID).
		Scan(&order.RegisterID, &order.ShiftID, &order.Folio, &order.TotalCents,
			&order.CashReceivedCents, &order.ChangeCents, &order.CreatedAt)
	if err != nil {
		return models.Order{}, fmt.Errorf("update order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Order{}, fmt.Errorf("%w: commit: %v", core.ErrTxFailed, err)
	}
	return order, nil
}

// Cancel sets the order to CANCELED. Canceling an already-canceled order is
// idempotent; canceling a PAID order is rejected.
func (r *OrderRepo) Cancel(ctx context.Context, orderID string) (models.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: begin: %v", core.ErrTxFailed, err)
	}
	defer tx.Rollback(ctx)

	var status models.OrderStatus
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Order{}, fmt.Errorf("order %q: %w", orderID, core.ErrUnknownEntity)
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("lock order: %w", err)
	}

	if status != models.OrderCanceled {
		if !status.CanTransition(models.OrderCanceled) {
			return models.Order{}, fmt.Errorf("order %q is %s: %w", orderID, status, core.ErrOrderNotOpen)
		}
		if _, err := tx.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, models.OrderCanceled, orderID); err != nil {
			return models.Order{}, fmt.Errorf("update order: %w", err)
		}
	}

	order, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+`, shift_id FROM orders WHERE id = $1`, orderID))
	if err != nil {
		return models.Order{}, fmt.Errorf("reread order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Order{}, fmt.Errorf("%w: commit: %v", core.ErrTxFailed, err)
	}
	return order, nil
}

// RecentPaid lists the latest PAID orders on a register, newest first.
func (r *OrderRepo) RecentPaid(ctx context.Context, registerID string, limit int) ([]dto.RecentOrder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT folio, total_cents, created_at FROM orders
		WHERE register_id = $1 AND status = $2
		ORDER BY created_at DESC LIMIT $3
	`, registerID, models.OrderPaid, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent orders: %w", err)
	}
	defer rows.Close()

	out := []dto.RecentOrder{}
	for rows.Next() {
		var o dto.RecentOrder
		if err := rows.Scan(&o.Folio, &o.TotalCents, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.RegisterID, &o.Status, &o.Folio, &o.TotalCents,
		&o.CashReceivedCents, &o.ChangeCents, &o.CreatedAt, &o.ShiftID)
	return o, err
}
