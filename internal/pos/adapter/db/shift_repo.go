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

type ShiftRepo struct {
	pool *pgxpool.Pool
}

func NewShiftRepo(pool *pgxpool.Pool) *ShiftRepo {
	return &ShiftRepo{pool: pool}
}

const shiftColumns = `id, register_id, status, opened_at, closed_at, opening_cash_cents, closing_cash_cents, notes`

// Open closes any open shift on the register and inserts a fresh OPEN one.
// The register row is locked for the duration of the transaction, so two
// concurrent opens on the same register serialize and a reader can never
// observe zero or two open shifts once Open returns.
func (r *ShiftRepo) Open(ctx context.Context, registerID string, openingCashCents int64) (models.Shift, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.Shift{}, fmt.Errorf("%w: begin: %v", core.ErrTxFailed, err)
	}
	defer tx.Rollback(ctx)

	var regID string
	err = tx.QueryRow(ctx, `SELECT id FROM registers WHERE id = $1 FOR UPDATE`, registerID).Scan(&regID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Shift{}, fmt.Errorf("register %q: %w", registerID, core.ErrUnknownEntity)
	}
	if err != nil {
		return models.Shift{}, fmt.Errorf("lock register: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE shifts SET status = $1, closed_at = NOW()
		WHERE register_id = $2 AND status = $3
	`, models.ShiftClosed, registerID, models.ShiftOpen)
	if err != nil {
		return models.Shift{}, fmt.Errorf("close previous shift: %w", err)
	}

	shift := models.Shift{
		ID:               uuid.NewString(),
		RegisterID:       registerID,
		Status:           models.ShiftOpen,
		OpeningCashCents: openingCashCents,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO shifts (id, register_id, status, opening_cash_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING opened_at
	`, shift.ID, shift.RegisterID, shift.Status, shift.OpeningCashCents).Scan(&shift.OpenedAt)
	if err != nil {
		return models.Shift{}, fmt.Errorf("insert shift: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Shift{}, fmt.Errorf("%w: commit: %v", core.ErrTxFailed, err)
	}
	return shift, nil
}

// Current returns the open shift for the register, or nil if there is none.
func (r *ShiftRepo) Current(ctx context.Context, registerID string) (*models.Shift, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+shiftColumns+` FROM shifts
		WHERE register_id = $1 AND status = $2
		ORDER BY opened_at DESC LIMIT 1
	`, registerID, models.ShiftOpen)

	shift, err := scanShift(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query current shift: %w", err)
	}
	return &shift, nil
}

// Close transitions the shift to CLOSED. Closing an already-closed shift is a
// no-op: the original close timestamp and cash figures are kept.
func (r *ShiftRepo) Close(ctx context.Context, shiftID string, closingCashCents *int64, notes string) (models.Shift, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.Shift{}, fmt.Errorf("%w: begin: %v", core.ErrTxFailed, err)
	}
	defer tx.Rollback(ctx)

	var status models.ShiftStatus
	err = tx.QueryRow(ctx, `SELECT status FROM shifts WHERE id = $1 FOR UPDATE`, shiftID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Shift{}, fmt.Errorf("shift %q: %w", shiftID, core.ErrUnknownEntity)
	}
	if err != nil {
		return models.Shift{}, fmt.Errorf("lock shift: %w", err)
	}

	if status.CanTransition(models.ShiftClosed) {
		_, err = tx.Exec(ctx, `
			UPDATE shifts
			SET status = $1, closed_at = NOW(), closing_cash_cents = $2, notes = $3
			WHERE id = $4
		`, models.ShiftClosed, closingCashCents, notes, shiftID)
		if err != nil {
			return models.Shift{}, fmt.Errorf("close shift: %w", err)
		}
	}

	shift, err := scanShift(tx.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, shiftID))
	if err != nil {
		return models.Shift{}, fmt.Errorf("reread shift: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Shift{}, fmt.Errorf("%w: commit: %v", core.ErrTxFailed, err)
	}
	return shift, nil
}

// Summary returns the shift row plus cash totals over its PAID orders.
func (r *ShiftRepo) Summary(ctx context.Context, shiftID string) (dto.ShiftSummary, error) {
	shift, err := scanShift(r.pool.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, shiftID))
	if errors.Is(err, pgx.ErrNoRows) {
		return dto.ShiftSummary{}, fmt.Errorf("shift %q: %w", shiftID, core.ErrUnknownEntity)
	}
	if err != nil {
		return dto.ShiftSummary{}, fmt.Errorf("query shift: %w", err)
	}

	var paid dto.PaidTotals
	err = r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(cash_received_cents), 0), COALESCE(SUM(change_cents), 0)
		FROM orders WHERE shift_id = $1 AND status = $2
	`, shiftID, models.OrderPaid).Scan(&paid.CashReceived, &paid.ChangeSum)
	if err != nil {
		return dto.ShiftSummary{}, fmt.Errorf("sum paid orders: %w", err)
	}

	return dto.ShiftSummary{Shift: shift, Paid: paid}, nil
}

func scanShift(row pgx.Row) (models.Shift, error) {
	var s models.Shift
	err := row.Scan(&s.ID, &s.RegisterID, &s.Status, &s.OpenedAt, &s.ClosedAt,
		&s.OpeningCashCents, &s.ClosingCashCents, &s.Notes)
	return s, err
}
