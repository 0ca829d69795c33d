package formstore

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"transaction_form/internal/transactions/domain"
	"transaction_form/internal/transactions/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the goose migrations of the Postgres backend.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// PostgresStore keeps records in the transaction_forms table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps a pool. Run Migrations first.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const formColumns = `id, agent_id, client_name, buyer_or_seller, transaction_type, listing_type, fub_deal_id, fub_event_id, created_at`

func (s *PostgresStore) Create(ctx context.Context, rec ports.NewFormRecord) (ports.FormRecord, error) {
	sub := rec.Submission
	row := s.pool.QueryRow(ctx, `
		INSERT INTO transaction_forms (id, agent_id, client_name, buyer_or_seller, transaction_type, listing_type, fub_deal_id, fub_event_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+formColumns,
		uuid.New(),
		sub.AgentID,
		sub.ClientName,
		string(sub.Category),
		string(sub.Kind),
		nullableString(string(sub.ListingKind)),
		sub.DealID,
		nullableString(rec.EventID),
	)

	record, err := scanForm(row)
	if err != nil {
		return ports.FormRecord{}, fmt.Errorf("insert transaction form: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (ports.FormRecord, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+formColumns+` FROM transaction_forms WHERE id = $1`, id)

	record, err := scanForm(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return ports.FormRecord{}, errNotFound()
	}
	if err != nil {
		return ports.FormRecord{}, fmt.Errorf("get transaction form: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]ports.FormRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+formColumns+` FROM transaction_forms ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transaction forms: %w", err)
	}
	defer rows.Close()

	records := make([]ports.FormRecord, 0)
	for rows.Next() {
		record, err := scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction form: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transaction forms: %w", err)
	}
	return records, nil
}

// Ping checks the database connection for the health endpoint.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func scanForm(row pgx.Row) (ports.FormRecord, error) {
	var (
		record      ports.FormRecord
		category    string
		kind        string
		listingKind *string
		eventID     *string
	)
	err := row.Scan(
		&record.ID,
		&record.Submission.AgentID,
		&record.Submission.ClientName,
		&category,
		&kind,
		&listingKind,
		&record.Submission.DealID,
		&eventID,
		&record.CreatedAt,
	)
	if err != nil {
		return ports.FormRecord{}, err
	}

	record.Submission.Category = domain.Category(category)
	record.Submission.Kind = domain.Kind(kind)
	if listingKind != nil {
		record.Submission.ListingKind = domain.ListingKind(*listingKind)
	}
	if eventID != nil {
		record.EventID = *eventID
	}
	return record, nil
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
