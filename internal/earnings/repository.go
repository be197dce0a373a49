package earnings

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenkay/backend/internal/filings"
)

// Event is a scheduled earnings announcement fetched from the
// earnings calendar provider
type Event struct {
	ID              int64
	CompanyID       int64
	Ticker          string
	EarningsDate    time.Time
	EarningsTime    string // "bmo" or "amc"
	FiscalYear      int
	FiscalQuarter   int
	EPSEstimate     *float64
	RevenueEstimate *float64
	Source          string
}

// Repository provides access to scheduled earnings events
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new earnings repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetUpcomingWindow returns scheduled earnings for enabled companies
// with dates inside [from, to], ordered by earnings date
func (r *Repository) GetUpcomingWindow(ctx context.Context, from, to time.Time) ([]filings.ScheduledFiling, error) {
	query := `
		SELECT se.ticker, co.name, se.earnings_date, COALESCE(se.earnings_time, ''),
			se.fiscal_year, se.fiscal_quarter, se.eps_estimate, se.revenue_estimate
		FROM scheduled_earnings se
		JOIN companies co ON se.company_id = co.id
		WHERE co.enabled = true
			AND se.earnings_date >= $1
			AND se.earnings_date <= $2
		ORDER BY se.earnings_date ASC
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []filings.ScheduledFiling
	for rows.Next() {
		var s filings.ScheduledFiling
		if err := rows.Scan(
			&s.Ticker, &s.Name, &s.EarningsDate, &s.EarningsTime,
			&s.FiscalYear, &s.FiscalQuarter, &s.EPSEstimate, &s.RevenueEstimate,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// Save upserts an earnings event. A company reschedules its call more
// often than it changes fiscal periods, so the conflict key is
// (company_id, fiscal_year, fiscal_quarter).
func (r *Repository) Save(ctx context.Context, e *Event) error {
	query := `
		INSERT INTO scheduled_earnings (
			company_id, ticker, earnings_date, earnings_time,
			fiscal_year, fiscal_quarter, eps_estimate, revenue_estimate,
			status, source, fetched_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'scheduled', $9, NOW(), NOW())
		ON CONFLICT (company_id, fiscal_year, fiscal_quarter)
		DO UPDATE SET
			earnings_date = EXCLUDED.earnings_date,
			earnings_time = EXCLUDED.earnings_time,
			eps_estimate = EXCLUDED.eps_estimate,
			revenue_estimate = EXCLUDED.revenue_estimate,
			fetched_at = EXCLUDED.fetched_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		e.CompanyID, e.Ticker, e.EarningsDate, nullableString(e.EarningsTime),
		e.FiscalYear, e.FiscalQuarter, e.EPSEstimate, e.RevenueEstimate,
		e.Source,
	)
	return err
}

// DeletePast removes events whose date is older than the cutoff
func (r *Repository) DeletePast(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM scheduled_earnings WHERE earnings_date < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
