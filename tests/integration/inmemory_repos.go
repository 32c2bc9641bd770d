package integration

import (
	"context"
	"sync"

	"recoverable-ledger/internal/core/domain"
	"recoverable-ledger/internal/core/ports"

	"github.com/google/uuid"
)

// --- In-Memory Operator Repo ---

type inMemoryOperatorRepo struct {
	mu        sync.RWMutex
	operators map[uuid.UUID]*domain.Operator
}

func newInMemoryOperatorRepo() *inMemoryOperatorRepo {
	return &inMemoryOperatorRepo{operators: make(map[uuid.UUID]*domain.Operator)}
}

func (r *inMemoryOperatorRepo) Create(ctx context.Context, o *domain.Operator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operators[o.ID] = o
	return nil
}

func (r *inMemoryOperatorRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.operators[id]
	if !ok {
		return nil, nil
	}
	return o, nil
}

func (r *inMemoryOperatorRepo) GetByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.operators {
		if o.Username == username {
			return o, nil
		}
	}
	return nil, nil
}

// --- In-Memory Event Repo ---

type inMemoryEventRepo struct {
	mu     sync.RWMutex
	events []domain.LedgerEvent
}

func newInMemoryEventRepo() *inMemoryEventRepo {
	return &inMemoryEventRepo{}
}

func (r *inMemoryEventRepo) Append(ctx context.Context, e *domain.LedgerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *e)
	return nil
}

func (r *inMemoryEventRepo) List(ctx context.Context, params ports.EventListParams) ([]domain.LedgerEvent, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.LedgerEvent
	for _, e := range r.events {
		involved := e.Account == params.Account ||
			(e.Counterparty != nil && *e.Counterparty == params.Account)
		if !involved {
			continue
		}
		if params.Type != nil && e.Type != *params.Type {
			continue
		}
		if params.From != nil && e.OccurredAt.Unix() < *params.From {
			continue
		}
		if params.To != nil && e.OccurredAt.Unix() > *params.To {
			continue
		}
		result = append(result, e)
	}
	total := int64(len(result))

	// Simple pagination
	start := (params.Page - 1) * params.PageSize
	if start >= len(result) {
		return []domain.LedgerEvent{}, total, nil
	}
	end := start + params.PageSize
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], total, nil
}
