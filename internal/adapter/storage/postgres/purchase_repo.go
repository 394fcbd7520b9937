package postgres

import (
	"context"
	"errors"
	"fmt"

	"strategy-vault/internal/core/domain"
	"strategy-vault/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// PurchaseRepo implements ports.PurchaseRepository.
//
// Schema:
//
//	CREATE TABLE purchases (
//	    id            UUID PRIMARY KEY,
//	    strategy_id   TEXT NOT NULL,
//	    payer_address TEXT NOT NULL DEFAULT '',
//	    tx_hash       TEXT NOT NULL,
//	    network       TEXT NOT NULL,
//	    amount        NUMERIC(18,6) NOT NULL,
//	    created_at    TIMESTAMPTZ NOT NULL
//	);
type PurchaseRepo struct {
	pool Pool
}

// NewPurchaseRepo creates a new PurchaseRepo.
func NewPurchaseRepo(pool Pool) *PurchaseRepo {
	return &PurchaseRepo{pool: pool}
}

// Create inserts a purchase record.
func (r *PurchaseRepo) Create(ctx context.Context, p *domain.Purchase) error {
	query := `INSERT INTO purchases (id, strategy_id, payer_address, tx_hash, network, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.StrategyID, p.PayerAddress, p.TxHash, p.Network, p.Amount, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// List returns a page of purchases, newest first, with the total count.
func (r *PurchaseRepo) List(ctx context.Context, params ports.PurchaseListParams) ([]domain.Purchase, int64, error) {
	where := ""
	args := []any{}
	if params.StrategyID != "" {
		where = " WHERE strategy_id = $1"
		args = append(args, params.StrategyID)
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM purchases" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchases: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	listQuery := fmt.Sprintf(
		`SELECT id, strategy_id, payer_address, tx_hash, network, amount, created_at
		FROM purchases%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var items []domain.Purchase
	for rows.Next() {
		var p domain.Purchase
		if err := rows.Scan(&p.ID, &p.StrategyID, &p.PayerAddress, &p.TxHash, &p.Network, &p.Amount, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan purchase: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate purchases: %w", err)
	}

	return items, total, nil
}

// GetStats returns aggregate purchase counters.
func (r *PurchaseRepo) GetStats(ctx context.Context) (*ports.PurchaseStats, error) {
	query := `SELECT COUNT(*),
		COUNT(DISTINCT payer_address) FILTER (WHERE payer_address <> ''),
		COALESCE(SUM(amount), 0)::TEXT
		FROM purchases`

	stats := &ports.PurchaseStats{}
	err := r.pool.QueryRow(ctx, query).Scan(&stats.TotalPurchases, &stats.UniquePayers, &stats.TotalRevenue)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &ports.PurchaseStats{TotalRevenue: "0"}, nil
		}
		return nil, fmt.Errorf("purchase stats: %w", err)
	}
	return stats, nil
}
