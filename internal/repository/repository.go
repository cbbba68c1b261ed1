package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/BerylCAtieno/vakeel-gateway/internal/models"
	"github.com/jmoiron/sqlx"
)

// NegotiationRepository keeps the ids of negotiations started from this
// machine. The negotiations themselves live on the backend.
type NegotiationRepository interface {
	Save(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.SavedNegotiation, error)
	Delete(ctx context.Context, id string) error
}

type negotiationRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewNegotiationRepository(db *sqlx.DB) NegotiationRepository {
	return &negotiationRepository{db: db, now: time.Now}
}

// Save records id. Saving an id twice keeps the first timestamp.
func (r *negotiationRepository) Save(ctx context.Context, id string) error {
	query := `
		INSERT OR IGNORE INTO negotiations (id, created_at)
		VALUES (?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, id, r.now().UTC()); err != nil {
		return fmt.Errorf("failed to save negotiation %s: %w", id, err)
	}
	return nil
}

// List returns saved negotiations, newest first.
func (r *negotiationRepository) List(ctx context.Context) ([]models.SavedNegotiation, error) {
	query := `
		SELECT id, created_at
		FROM negotiations
		ORDER BY created_at DESC, rowid DESC
	`

	saved := []models.SavedNegotiation{}
	if err := r.db.SelectContext(ctx, &saved, query); err != nil {
		return nil, fmt.Errorf("failed to list negotiations: %w", err)
	}
	return saved, nil
}

func (r *negotiationRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM negotiations WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete negotiation %s: %w", id, err)
	}
	return nil
}
