package repository

import (
	"context"

	"disperse_back/models"

	"github.com/jmoiron/sqlx"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Journal stores every transaction the service broadcasts.
type Journal interface {
	Record(ctx context.Context, rec models.TxRecord) error
	List(ctx context.Context, limit int) ([]models.TxRecord, error)
}

type Repository struct {
	Journal
}

// NewRepository falls back to a no-op journal when db is nil.
func NewRepository(db *sqlx.DB) *Repository {
	if db == nil {
		return &Repository{Journal: NopJournal{}}
	}
	return &Repository{Journal: NewJournalPostgres(db)}
}

// NormalizeLimit clamps a list limit into [1, MaxListLimit], mapping non-positive values to the default.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

type NopJournal struct{}

func (NopJournal) Record(context.Context, models.TxRecord) error { return nil }

func (NopJournal) List(context.Context, int) ([]models.TxRecord, error) {
	return []models.TxRecord{}, nil
}
