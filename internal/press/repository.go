package press

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Article is a press article or press release related to a company
type Article struct {
	ID          int64      `json:"id"`
	CompanyID   int64      `json:"company_id"`
	Ticker      string     `json:"ticker"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Source      string     `json:"source"`
	Summary     string     `json:"summary,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	FetchedAt   time.Time  `json:"fetched_at"`
}

// Repository provides access to press coverage
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new press repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByTicker returns recent press coverage for a company
func (r *Repository) GetByTicker(ctx context.Context, ticker string, limit int) ([]Article, error) {
	query := `
		SELECT pa.id, pa.company_id, co.ticker, pa.title, pa.url,
			pa.source, COALESCE(pa.summary, ''), pa.published_at, pa.fetched_at
		FROM press_articles pa
		JOIN companies co ON pa.company_id = co.id
		WHERE co.ticker = $1
		ORDER BY pa.published_at DESC NULLS LAST
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, ticker, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(
			&a.ID, &a.CompanyID, &a.Ticker, &a.Title, &a.URL,
			&a.Source, &a.Summary, &a.PublishedAt, &a.FetchedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// Save upserts an article keyed by URL. Duplicate URLs across feeds and
// news APIs are common; the first stored title wins.
func (r *Repository) Save(ctx context.Context, a *Article) error {
	query := `
		INSERT INTO press_articles (
			company_id, title, url, source, summary, published_at, fetched_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (url) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		a.CompanyID, a.Title, a.URL, a.Source,
		nullableString(a.Summary), a.PublishedAt,
	)
	return err
}

// DeleteOlderThan prunes stale coverage
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM press_articles WHERE published_at < $1`, cutoff)
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
