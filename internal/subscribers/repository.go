package subscribers

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Email frequencies a subscriber can choose
const (
	FrequencyDaily    = "daily"
	FrequencyWeekly   = "weekly"
	FrequencyPerEvent = "per_filing"
)

// Subscriber is an authenticated user with newsletter preferences.
// Authentication itself is delegated to the fronting identity provider;
// this table is keyed by its subject id.
type Subscriber struct {
	ID                  int64      `json:"id"`
	Email               string     `json:"email"`
	AuthSubject         string     `json:"-"`
	EmailFrequency      string     `json:"email_frequency"`
	InterestedCompanies []string   `json:"interested_companies"`
	SubscribedAt        time.Time  `json:"subscribed_at"`
	UnsubscribedAt      *time.Time `json:"unsubscribed_at,omitempty"`
	LastEmailSentAt     *time.Time `json:"last_email_sent_at,omitempty"`
}

// Preferences is the mutable slice of a subscriber record
type Preferences struct {
	EmailFrequency      string   `json:"email_frequency"`
	InterestedCompanies []string `json:"interested_companies"`
}

// Validate checks preference values before persisting
func (p *Preferences) Validate() error {
	switch p.EmailFrequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyPerEvent:
	default:
		return fmt.Errorf("invalid email frequency %q", p.EmailFrequency)
	}
	return nil
}

// Repository provides access to subscribers and their preferences
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new subscriber repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetBySubject returns the subscriber for an auth subject id
func (r *Repository) GetBySubject(ctx context.Context, subject string) (*Subscriber, error) {
	query := `
		SELECT id, email, clerk_user_id, email_frequency,
			COALESCE(interested_companies, '{}'),
			subscribed_at, unsubscribed_at, last_email_sent_at
		FROM subscribers
		WHERE clerk_user_id = $1
	`

	var s Subscriber
	err := r.pool.QueryRow(ctx, query, subject).Scan(
		&s.ID, &s.Email, &s.AuthSubject, &s.EmailFrequency,
		&s.InterestedCompanies, &s.SubscribedAt, &s.UnsubscribedAt,
		&s.LastEmailSentAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert registers a subscriber on first sight and returns the row
func (r *Repository) Upsert(ctx context.Context, subject, email string) (*Subscriber, error) {
	query := `
		INSERT INTO subscribers (email, clerk_user_id, email_frequency, subscribed_at, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW(), NOW())
		ON CONFLICT (clerk_user_id) DO UPDATE SET
			email = EXCLUDED.email,
			updated_at = NOW()
		RETURNING id, email, clerk_user_id, email_frequency,
			COALESCE(interested_companies, '{}'),
			subscribed_at, unsubscribed_at, last_email_sent_at
	`

	var s Subscriber
	err := r.pool.QueryRow(ctx, query, email, subject, FrequencyWeekly).Scan(
		&s.ID, &s.Email, &s.AuthSubject, &s.EmailFrequency,
		&s.InterestedCompanies, &s.SubscribedAt, &s.UnsubscribedAt,
		&s.LastEmailSentAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdatePreferences stores a subscriber's newsletter preferences
func (r *Repository) UpdatePreferences(ctx context.Context, subject string, prefs *Preferences) error {
	query := `
		UPDATE subscribers
		SET email_frequency = $2,
			interested_companies = $3,
			updated_at = NOW()
		WHERE clerk_user_id = $1
	`

	tag, err := r.pool.Exec(ctx, query, subject, prefs.EmailFrequency, prefs.InterestedCompanies)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("subscriber %s not found", subject)
	}
	return nil
}

// DueForDigest returns active subscribers whose last email is older
// than the interval implied by their frequency. Per-filing subscribers
// are always candidates; the digest job sends to them only when new
// content actually exists.
func (r *Repository) DueForDigest(ctx context.Context, now time.Time) ([]Subscriber, error) {
	query := `
		SELECT id, email, clerk_user_id, email_frequency,
			COALESCE(interested_companies, '{}'),
			subscribed_at, unsubscribed_at, last_email_sent_at
		FROM subscribers
		WHERE unsubscribed_at IS NULL
			AND (
				last_email_sent_at IS NULL
				OR email_frequency = 'per_filing'
				OR (email_frequency = 'daily' AND last_email_sent_at < $1::timestamptz - INTERVAL '1 day')
				OR (email_frequency = 'weekly' AND last_email_sent_at < $1::timestamptz - INTERVAL '7 days')
			)
	`

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Subscriber
	for rows.Next() {
		var s Subscriber
		if err := rows.Scan(
			&s.ID, &s.Email, &s.AuthSubject, &s.EmailFrequency,
			&s.InterestedCompanies, &s.SubscribedAt, &s.UnsubscribedAt,
			&s.LastEmailSentAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// RecordDelivery logs an email delivery and bumps last_email_sent_at
func (r *Repository) RecordDelivery(ctx context.Context, subscriberID, contentID int64, status string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO email_deliveries (subscriber_id, content_id, sent_at, status)
		VALUES ($1, $2, NOW(), $3)
	`, subscriberID, contentID, status)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE subscribers SET last_email_sent_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`, subscriberID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
