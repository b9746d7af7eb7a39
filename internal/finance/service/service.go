package service

import (
	"context"

	"ccc_backoffice/internal/finance/repository"
	"ccc_backoffice/internal/finance/transport"
)

// Service provides read access to the financial ledger.
type Service struct {
	repo *repository.Repository
}

// New creates a new finance query service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// List returns ledger entries matching the filter.
func (s *Service) List(ctx context.Context, params repository.ListParams) ([]transport.TransactionResponse, error) {
	transactions, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	out := make([]transport.TransactionResponse, len(transactions))
	for i := range transactions {
		out[i] = transport.ToTransactionResponse(&transactions[i])
	}
	return out, nil
}
