package content

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Analysis is a published AI-generated analysis of a filing
type Analysis struct {
	ID               int64      `json:"id"`
	FilingID         int64      `json:"filing_id"`
	CompanyID        int64      `json:"company_id"`
	Ticker           string     `json:"ticker"`
	CompanyName      string     `json:"company_name"`
	FilingType       string     `json:"filing_type"`
	Slug             string     `json:"slug"`
	Version          int        `json:"version"`
	ExecutiveSummary string     `json:"executive_summary"`
	KeyTakeaways     []byte     `json:"key_takeaways"` // JSONB: headline, points, sentiment
	Opportunities    string     `json:"deep_dive_opportunities,omitempty"`
	Risks            string     `json:"deep_dive_risks,omitempty"`
	Strategy         string     `json:"deep_dive_strategy,omitempty"`
	Implications     string     `json:"implications,omitempty"`
	MetaDescription  string     `json:"meta_description,omitempty"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Summary is a lightweight listing row for index pages
type Summary struct {
	Slug         string     `json:"slug"`
	Ticker       string     `json:"ticker"`
	CompanyName  string     `json:"company_name"`
	FilingType   string     `json:"filing_type"`
	Headline     string     `json:"headline"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
}

// Repository provides access to published analyses
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new content repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetBySlug returns the current published analysis for a slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Analysis, error) {
	query := `
		SELECT c.id, c.filing_id, c.company_id, co.ticker, co.name,
			f.filing_type, c.slug, c.version, c.executive_summary,
			c.key_takeaways,
			COALESCE(c.deep_dive_opportunities, ''),
			COALESCE(c.deep_dive_risks, ''),
			COALESCE(c.deep_dive_strategy, ''),
			COALESCE(c.implications, ''),
			COALESCE(c.meta_description, ''),
			c.published_at, c.created_at
		FROM content c
		JOIN companies co ON c.company_id = co.id
		JOIN filings f ON c.filing_id = f.id
		WHERE c.slug = $1 AND c.is_current = true
	`

	var a Analysis
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&a.ID, &a.FilingID, &a.CompanyID, &a.Ticker, &a.CompanyName,
		&a.FilingType, &a.Slug, &a.Version, &a.ExecutiveSummary,
		&a.KeyTakeaways, &a.Opportunities, &a.Risks, &a.Strategy,
		&a.Implications, &a.MetaDescription, &a.PublishedAt, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListPublished returns recent published analyses, optionally filtered
// by ticker. Takeaway headlines come from the key_takeaways JSONB.
func (r *Repository) ListPublished(ctx context.Context, ticker string, limit int) ([]Summary, error) {
	query := `
		SELECT c.slug, co.ticker, co.name, f.filing_type,
			COALESCE(c.key_takeaways->>'headline', ''),
			c.published_at
		FROM content c
		JOIN companies co ON c.company_id = co.id
		JOIN filings f ON c.filing_id = f.id
		WHERE c.is_current = true
			AND c.published_at IS NOT NULL
			AND ($1 = '' OR co.ticker = $1)
		ORDER BY c.published_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, ticker, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(
			&s.Slug, &s.Ticker, &s.CompanyName, &s.FilingType,
			&s.Headline, &s.PublishedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// PublishedSince returns analyses published after the given time,
// used by the digest job to assemble newsletter content
func (r *Repository) PublishedSince(ctx context.Context, since time.Time) ([]Summary, error) {
	query := `
		SELECT c.slug, co.ticker, co.name, f.filing_type,
			COALESCE(c.key_takeaways->>'headline', ''),
			c.published_at
		FROM content c
		JOIN companies co ON c.company_id = co.id
		JOIN filings f ON c.filing_id = f.id
		WHERE c.is_current = true
			AND c.published_at > $1
		ORDER BY c.published_at DESC
	`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(
			&s.Slug, &s.Ticker, &s.CompanyName, &s.FilingType,
			&s.Headline, &s.PublishedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
