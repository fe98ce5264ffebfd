package db

import (
	"context"
	"fmt"

	"sembrador-pos/internal/pos/domain/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepo reads the seeded registers and product catalog. The core never
// writes these tables.
type CatalogRepo struct {
	pool *pgxpool.Pool
}

func NewCatalogRepo(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

func (r *CatalogRepo) Registers(ctx context.Context) ([]models.Register, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM registers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query registers: %w", err)
	}
	defer rows.Close()

	out := []models.Register{}
	for rows.Next() {
		var reg models.Register
		if err := rows.Scan(&reg.ID, &reg.Name); err != nil {
			return nil, fmt.Errorf("scan register: %w", err)
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) Products(ctx context.Context) ([]models.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, category, price_cents, sort_order
		FROM products ORDER BY sort_order
	`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	out := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.PriceCents, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
