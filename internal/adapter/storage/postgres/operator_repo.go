package postgres

import (
	"context"
	"errors"
	"fmt"

	"recoverable-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OperatorRepo implements ports.OperatorRepository.
type OperatorRepo struct {
	pool Pool
}

// NewOperatorRepo creates a new OperatorRepo.
func NewOperatorRepo(pool Pool) *OperatorRepo {
	return &OperatorRepo{pool: pool}
}

// Create inserts a new operator into the database.
func (r *OperatorRepo) Create(ctx context.Context, o *domain.Operator) error {
	query := `INSERT INTO operators (id, username, password_hash, display_name, access_key, secret_key_enc, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		o.ID, o.Username, o.PasswordHash, o.DisplayName,
		o.AccessKey, o.SecretKeyEnc, o.Status,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert operator: %w", err)
	}
	return nil
}

// GetByID fetches an operator by its UUID.
func (r *OperatorRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Operator, error) {
	query := `SELECT id, username, password_hash, display_name, access_key, secret_key_enc, status, created_at, updated_at
		FROM operators WHERE id = $1`

	return r.scanOperator(r.pool.QueryRow(ctx, query, id))
}

// GetByUsername fetches an operator by username.
func (r *OperatorRepo) GetByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	query := `SELECT id, username, password_hash, display_name, access_key, secret_key_enc, status, created_at, updated_at
		FROM operators WHERE username = $1`

	return r.scanOperator(r.pool.QueryRow(ctx, query, username))
}

// scanOperator is a helper to scan a single row into an Operator.
func (r *OperatorRepo) scanOperator(row pgx.Row) (*domain.Operator, error) {
	o := &domain.Operator{}
	err := row.Scan(
		&o.ID, &o.Username, &o.PasswordHash, &o.DisplayName,
		&o.AccessKey, &o.SecretKeyEnc, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan operator: %w", err)
	}
	return o, nil
}
