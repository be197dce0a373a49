package filings

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides access to stored SEC filings
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new filings repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetLatestPerCompany returns the most recent filing for every enabled
// company that has fiscal data. This is the estimator's input: one row
// per company, already resolved to most recent.
func (r *Repository) GetLatestPerCompany(ctx context.Context) ([]LatestFiling, error) {
	query := `
		SELECT DISTINCT ON (f.company_id)
			f.company_id,
			co.ticker,
			co.name,
			f.filing_type,
			f.filing_date,
			f.fiscal_year,
			f.fiscal_quarter,
			f.period_end_date
		FROM filings f
		JOIN companies co ON f.company_id = co.id
		WHERE co.enabled = true
			AND f.fiscal_year IS NOT NULL
			AND f.period_end_date IS NOT NULL
		ORDER BY f.company_id, f.filing_date DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var latest []LatestFiling
	for rows.Next() {
		var f LatestFiling
		if err := rows.Scan(
			&f.CompanyID, &f.Ticker, &f.Name, &f.FilingType,
			&f.FilingDate, &f.FiscalYear, &f.FiscalQuarter, &f.PeriodEndDate,
		); err != nil {
			return nil, err
		}
		latest = append(latest, f)
	}
	return latest, rows.Err()
}

// GetByTicker returns filings for a company, most recent first
func (r *Repository) GetByTicker(ctx context.Context, ticker string, limit int) ([]Filing, error) {
	query := `
		SELECT f.id, f.company_id, f.filing_type, f.accession_number,
			f.filing_date, f.period_end_date, f.fiscal_year, f.fiscal_quarter,
			f.edgar_url, f.status
		FROM filings f
		JOIN companies co ON f.company_id = co.id
		WHERE co.ticker = $1
		ORDER BY f.filing_date DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, ticker, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Filing
	for rows.Next() {
		var f Filing
		if err := rows.Scan(
			&f.ID, &f.CompanyID, &f.FilingType, &f.AccessionNumber,
			&f.FilingDate, &f.PeriodEndDate, &f.FiscalYear, &f.FiscalQuarter,
			&f.EdgarURL, &f.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

// Save upserts a filing keyed by accession number. Returns true when a
// new row was inserted.
func (r *Repository) Save(ctx context.Context, f *Filing) (bool, error) {
	query := `
		INSERT INTO filings (
			company_id, filing_type, accession_number, filing_date,
			period_end_date, fiscal_year, fiscal_quarter, edgar_url, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (accession_number) DO UPDATE SET
			period_end_date = EXCLUDED.period_end_date,
			fiscal_year = EXCLUDED.fiscal_year,
			fiscal_quarter = EXCLUDED.fiscal_quarter,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING (xmax = 0)
	`

	var inserted bool
	err := r.pool.QueryRow(ctx, query,
		f.CompanyID, f.FilingType, f.AccessionNumber, f.FilingDate,
		f.PeriodEndDate, f.FiscalYear, f.FiscalQuarter, f.EdgarURL, f.Status,
	).Scan(&inserted)
	if err != nil {
		return false, err
	}
	return inserted, nil
}

// CountByCompany returns the number of stored filings per company id
func (r *Repository) CountByCompany(ctx context.Context) (map[int64]int, error) {
	query := `
		SELECT company_id, COUNT(*)
		FROM filings
		GROUP BY company_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var companyID int64
		var count int
		if err := rows.Scan(&companyID, &count); err != nil {
			return nil, err
		}
		counts[companyID] = count
	}
	return counts, rows.Err()
}
