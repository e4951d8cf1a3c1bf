package service

import (
	"context"

	"disperse_back/models"
	"disperse_back/pkg/repository"
)

type TransactionsService struct {
	journal repository.Journal
}

func NewTransactionsService(journal repository.Journal) *TransactionsService {
	return &TransactionsService{journal: journal}
}

func (s *TransactionsService) List(ctx context.Context, limit int) ([]models.TxRecord, error) {
	return s.journal.List(ctx, repository.NormalizeLimit(limit))
}
