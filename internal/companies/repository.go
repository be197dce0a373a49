package companies

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Company represents a tracked public company
type Company struct {
	ID           int64     `json:"id"`
	Ticker       string    `json:"ticker"`
	Name         string    `json:"name"`
	CIK          string    `json:"cik"`
	Exchange     string    `json:"exchange"`
	Sector       string    `json:"sector"`
	IRPageURL    string    `json:"ir_page_url,omitempty"`
	PressFeedURL string    `json:"press_feed_url,omitempty"`
	Enabled      bool      `json:"enabled"`
	AddedAt      time.Time `json:"added_at"`
}

// Repository provides access to the curated company set
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new company repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetEnabled returns all enabled companies ordered by ticker
func (r *Repository) GetEnabled(ctx context.Context) ([]Company, error) {
	query := `
		SELECT id, ticker, name, cik, exchange, sector,
			COALESCE(ir_page_url, ''), COALESCE(press_feed_url, ''),
			enabled, added_at
		FROM companies
		WHERE enabled = true
		ORDER BY ticker ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(
			&c.ID, &c.Ticker, &c.Name, &c.CIK, &c.Exchange, &c.Sector,
			&c.IRPageURL, &c.PressFeedURL, &c.Enabled, &c.AddedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// GetByTicker returns a single company by ticker
func (r *Repository) GetByTicker(ctx context.Context, ticker string) (*Company, error) {
	query := `
		SELECT id, ticker, name, cik, exchange, sector,
			COALESCE(ir_page_url, ''), COALESCE(press_feed_url, ''),
			enabled, added_at
		FROM companies
		WHERE ticker = $1
	`

	var c Company
	err := r.pool.QueryRow(ctx, query, ticker).Scan(
		&c.ID, &c.Ticker, &c.Name, &c.CIK, &c.Exchange, &c.Sector,
		&c.IRPageURL, &c.PressFeedURL, &c.Enabled, &c.AddedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Save upserts a company keyed by ticker
func (r *Repository) Save(ctx context.Context, c *Company) error {
	query := `
		INSERT INTO companies (ticker, name, cik, exchange, sector,
			ir_page_url, press_feed_url, enabled, added_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, NOW())
		ON CONFLICT (ticker) DO UPDATE SET
			name = EXCLUDED.name,
			cik = EXCLUDED.cik,
			exchange = EXCLUDED.exchange,
			sector = EXCLUDED.sector,
			ir_page_url = EXCLUDED.ir_page_url,
			press_feed_url = EXCLUDED.press_feed_url,
			enabled = EXCLUDED.enabled
	`

	_, err := r.pool.Exec(ctx, query,
		c.Ticker, c.Name, c.CIK, c.Exchange, c.Sector,
		c.IRPageURL, c.PressFeedURL, c.Enabled,
	)
	return err
}
