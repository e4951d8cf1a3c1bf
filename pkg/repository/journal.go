package repository

import (
	"context"
	"fmt"

	"disperse_back/models"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type JournalPostgres struct {
	db *sqlx.DB
}

func NewJournalPostgres(db *sqlx.DB) *JournalPostgres {
	return &JournalPostgres{db: db}
}

func (r *JournalPostgres) Record(ctx context.Context, rec models.TxRecord) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (kind, from_address, to_address, tx_hash, value)
        VALUES (:kind, :from_address, :to_address, :tx_hash, :value)
    `, transactionsTable)

	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		return errors.Wrapf(err, "failed to record tx %s", rec.TxHash)
	}
	return nil
}

func (r *JournalPostgres) List(ctx context.Context, limit int) ([]models.TxRecord, error) {
	query := fmt.Sprintf(`
        SELECT id, kind, from_address, to_address, tx_hash, value::text AS value, created_at
        FROM %s ORDER BY created_at DESC, id DESC LIMIT $1
    `, transactionsTable)

	records := []models.TxRecord{}
	if err := r.db.SelectContext(ctx, &records, query, NormalizeLimit(limit)); err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}
	return records, nil
}
