package market

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Snapshot is a point-in-time market data record for a company
type Snapshot struct {
	ID            int64     `json:"id"`
	CompanyID     int64     `json:"company_id"`
	Ticker        string    `json:"ticker"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Open          float64   `json:"open"`
	PrevClose     float64   `json:"prev_close"`
	MarketCap     *float64  `json:"market_cap,omitempty"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// Repository provides access to market data snapshots
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new market data repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetLatestByTicker returns the most recent snapshot for a company
func (r *Repository) GetLatestByTicker(ctx context.Context, ticker string) (*Snapshot, error) {
	query := `
		SELECT md.id, md.company_id, co.ticker, md.price, md.change,
			md.change_percent, md.high, md.low, md.open, md.prev_close,
			md.market_cap, md.fetched_at
		FROM market_data md
		JOIN companies co ON md.company_id = co.id
		WHERE co.ticker = $1
		ORDER BY md.fetched_at DESC
		LIMIT 1
	`

	var s Snapshot
	err := r.pool.QueryRow(ctx, query, ticker).Scan(
		&s.ID, &s.CompanyID, &s.Ticker, &s.Price, &s.Change,
		&s.ChangePercent, &s.High, &s.Low, &s.Open, &s.PrevClose,
		&s.MarketCap, &s.FetchedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save inserts a new snapshot. History is append-only so the company
// page can show performance around filing dates.
func (r *Repository) Save(ctx context.Context, s *Snapshot) error {
	query := `
		INSERT INTO market_data (
			company_id, price, change, change_percent, high, low,
			open, prev_close, market_cap, fetched_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`

	_, err := r.pool.Exec(ctx, query,
		s.CompanyID, s.Price, s.Change, s.ChangePercent, s.High, s.Low,
		s.Open, s.PrevClose, s.MarketCap,
	)
	return err
}

// DeleteOlderThan prunes snapshots past the retention window
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM market_data WHERE fetched_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
