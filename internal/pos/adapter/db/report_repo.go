package db

import (
	"context"
	"fmt"
	"time"

	"sembrador-pos/internal/pos/domain/dto"
	"sembrador-pos/internal/pos/domain/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepo computes the operational read-only projections. Everything here
// is derived from committed shift/order/item rows and recomputed on demand;
// no state of its own.
type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

func (r *ReportRepo) Stats(ctx context.Context, loc *time.Location) (dto.AdminStats, error) {
	stats := dto.AdminStats{
		Registers:       []dto.RegisterStats{},
		ProductsReport:  []dto.ProductStats{},
		SalesByHour:     []dto.HourlySales{},
		SalesByCategory: []dto.CategorySales{},
	}

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_cents), 0) FROM orders WHERE status = $1
	`, models.OrderPaid).Scan(&stats.GlobalTotalCents)
	if err != nil {
		return stats, fmt.Errorf("global total: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.name, s.status, s.opened_at, s.opening_cash_cents,
		       (SELECT COUNT(*) FROM orders WHERE shift_id = s.id AND status = $1),
		       (SELECT COALESCE(SUM(total_cents), 0) FROM orders WHERE shift_id = s.id AND status = $1)
		FROM registers r
		LEFT JOIN shifts s ON r.id = s.register_id AND s.status = $2
		ORDER BY r.id
	`, models.OrderPaid, models.ShiftOpen)
	if err != nil {
		return stats, fmt.Errorf("register stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rs dto.RegisterStats
		if err := rows.Scan(&rs.ID, &rs.Name, &rs.ShiftStatus, &rs.OpenedAt,
			&rs.OpeningCashCents, &rs.CountSales, &rs.TotalSalesCents); err != nil {
			return stats, fmt.Errorf("scan register stats: %w", err)
		}
		stats.Registers = append(stats.Registers, rs)
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT p.name, p.category, SUM(oi.qty), SUM(oi.line_total_cents)
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		JOIN products p ON oi.product_id = p.id
		WHERE o.status = $1
		GROUP BY p.name, p.category
		ORDER BY SUM(oi.line_total_cents) DESC
	`, models.OrderPaid)
	if err != nil {
		return stats, fmt.Errorf("product report: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ps dto.ProductStats
		if err := rows.Scan(&ps.Name, &ps.Category, &ps.TotalQty, &ps.TotalRevenueCents); err != nil {
			return stats, fmt.Errorf("scan product report: %w", err)
		}
		stats.ProductsReport = append(stats.ProductsReport, ps)
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	// Buckets follow the configured local timezone so "sales at 14:00" means
	// 14:00 at the stand, not UTC.
	rows, err = r.pool.Query(ctx, `
		SELECT EXTRACT(HOUR FROM created_at AT TIME ZONE 'UTC' AT TIME ZONE $2)::int,
		       SUM(total_cents)
		FROM orders
		WHERE status = $1
		GROUP BY 1 ORDER BY 1
	`, models.OrderPaid, loc.String())
	if err != nil {
		return stats, fmt.Errorf("hourly sales: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var hs dto.HourlySales
		if err := rows.Scan(&hs.HourBlock, &hs.TotalCents); err != nil {
			return stats, fmt.Errorf("scan hourly sales: %w", err)
		}
		stats.SalesByHour = append(stats.SalesByHour, hs)
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT p.category, SUM(oi.line_total_cents)
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		JOIN orders o ON oi.order_id = o.id
		WHERE o.status = $1
		GROUP BY p.category
	`, models.OrderPaid)
	if err != nil {
		return stats, fmt.Errorf("category sales: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cs dto.CategorySales
		if err := rows.Scan(&cs.Category, &cs.TotalCents); err != nil {
			return stats, fmt.Errorf("scan category sales: %w", err)
		}
		stats.SalesByCategory = append(stats.SalesByCategory, cs)
	}
	return stats, rows.Err()
}

func (r *ReportRepo) History(ctx context.Context) ([]dto.ShiftHistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.status, r.name, s.opened_at, s.closed_at, s.opening_cash_cents,
		       (SELECT COALESCE(SUM(total_cents), 0) FROM orders WHERE shift_id = s.id AND status = $1)
		FROM shifts s
		JOIN registers r ON s.register_id = r.id
		ORDER BY s.opened_at DESC
	`, models.OrderPaid)
	if err != nil {
		return nil, fmt.Errorf("query shift history: %w", err)
	}
	defer rows.Close()

	out := []dto.ShiftHistoryEntry{}
	for rows.Next() {
		var entry dto.ShiftHistoryEntry
		if err := rows.Scan(&entry.ID, &entry.Status, &entry.RegisterName, &entry.OpenedAt,
			&entry.ClosedAt, &entry.OpeningCashCents, &entry.SalesCents); err != nil {
			return nil, fmt.Errorf("scan shift history: %w", err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
