package postgres

import (
	"context"
	"fmt"
	"strings"

	"recoverable-ledger/internal/core/domain"
	"recoverable-ledger/internal/core/ports"
)

// EventRepo implements ports.EventRepository as an append-only journal.
type EventRepo struct {
	pool Pool
}

// NewEventRepo creates a new EventRepo.
func NewEventRepo(pool Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

// Append inserts one ledger event into the journal.
func (r *EventRepo) Append(ctx context.Context, e *domain.LedgerEvent) error {
	query := `INSERT INTO ledger_events (id, type, account, counterparty, amount, settled_amount, unsettled_amount, record_index, recovered, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.Type, e.Account, e.Counterparty,
		e.Amount, e.SettledAmount, e.UnsettledAmount,
		int64(e.RecordIndex), e.Recovered, e.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger event: %w", err)
	}
	return nil
}

// List fetches events with filtering and pagination. Events where the
// account appears as counterparty (e.g. the receiver of a transfer or
// recovery) are included.
func (r *EventRepo) List(ctx context.Context, params ports.EventListParams) ([]domain.LedgerEvent, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("(account = $%d OR counterparty = $%d)", argIdx, argIdx))
	args = append(args, params.Account)
	argIdx++

	if params.Type != nil {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, *params.Type)
		argIdx++
	}
	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("occurred_at >= to_timestamp($%d)", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("occurred_at <= to_timestamp($%d)", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM ledger_events %s", where)
	var total int64
	err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count ledger events: %w", err)
	}

	// Fetch page
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT id, type, account, counterparty, amount, settled_amount, unsettled_amount, record_index, recovered, occurred_at
		FROM ledger_events %s ORDER BY occurred_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledger events: %w", err)
	}
	defer rows.Close()

	var events []domain.LedgerEvent
	for rows.Next() {
		e := domain.LedgerEvent{}
		var recordIndex int64
		err := rows.Scan(
			&e.ID, &e.Type, &e.Account, &e.Counterparty,
			&e.Amount, &e.SettledAmount, &e.UnsettledAmount,
			&recordIndex, &e.Recovered, &e.OccurredAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan ledger event row: %w", err)
		}
		e.RecordIndex = uint64(recordIndex)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate ledger event rows: %w", err)
	}
	return events, total, nil
}
