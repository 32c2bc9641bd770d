package postgres

import (
	"context"
	"testing"
	"time"

	"recoverable-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOperator() *domain.Operator {
	return &domain.Operator{
		ID:           uuid.New(),
		Username:     "test_user",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$salt$hash",
		DisplayName:  "Test Desk",
		AccessKey:    "ak_" + uuid.New().String()[:16],
		SecretKeyEnc: "encrypted_secret_key_data",
		Status:       domain.OperatorStatusActive,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func operatorColumns() []string {
	return []string{"id", "username", "password_hash", "display_name", "access_key", "secret_key_enc", "status", "created_at", "updated_at"}
}

func operatorRow(o *domain.Operator) *pgxmock.Rows {
	return pgxmock.NewRows(operatorColumns()).AddRow(
		o.ID, o.Username, o.PasswordHash, o.DisplayName,
		o.AccessKey, o.SecretKeyEnc, o.Status,
		o.CreatedAt, o.UpdatedAt,
	)
}

func TestOperatorRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOperatorRepo(mock)
	o := newTestOperator()

	mock.ExpectExec("INSERT INTO operators").
		WithArgs(o.ID, o.Username, o.PasswordHash, o.DisplayName,
			o.AccessKey, o.SecretKeyEnc, o.Status,
			o.CreatedAt, o.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), o)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperatorRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOperatorRepo(mock)
	o := newTestOperator()

	mock.ExpectQuery("SELECT .+ FROM operators WHERE id").
		WithArgs(o.ID).
		WillReturnRows(operatorRow(o))

	result, err := repo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, o.ID, result.ID)
	assert.Equal(t, o.Username, result.Username)
	assert.Equal(t, o.AccessKey, result.AccessKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperatorRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOperatorRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM operators WHERE id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(operatorColumns()))

	result, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperatorRepo_GetByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOperatorRepo(mock)
	o := newTestOperator()

	mock.ExpectQuery("SELECT .+ FROM operators WHERE username").
		WithArgs(o.Username).
		WillReturnRows(operatorRow(o))

	result, err := repo.GetByUsername(context.Background(), o.Username)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, o.Username, result.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
