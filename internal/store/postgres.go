package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS protocol_recommendations (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	goal TEXT NOT NULL,
	protocol_name TEXT NOT NULL,
	core_product TEXT NOT NULL DEFAULT '',
	catalyst_product TEXT NOT NULL DEFAULT '',
	foundation_product TEXT NOT NULL DEFAULT '',
	confidence_level TEXT NOT NULL DEFAULT '',
	eligibility TEXT NOT NULL,
	monetization_path TEXT NOT NULL,
	warnings TEXT NOT NULL,
	excluded_products TEXT NOT NULL,
	mechanistic_basis TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_recommendations_user_created
	ON protocol_recommendations(user_id, created_at);
`

// PostgresStore implements Repository on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
	q    queries
}

var _ Repository = (*PostgresStore)(nil)

// NewPostgres connects, pings and ensures the schema exists.
func NewPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &PostgresStore{pool: pool, q: newQueries(sq.Dollar)}, nil
}

func (s *PostgresStore) Save(ctx context.Context, r Record) error {
	query, args, err := s.q.insert(r, r.CreatedAt)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert recommendation: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id, userID string) (Record, error) {
	query, args, err := s.q.get(id, userID)
	if err != nil {
		return Record{}, err
	}

	r, err := scanPostgresRecord(s.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("scan recommendation: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) List(ctx context.Context, lq ListQuery) ([]Record, int, error) {
	lq = lq.Normalize()

	countSQL, countArgs, err := s.q.count(lq)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := s.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count recommendations: %w", err)
	}

	listSQL, listArgs, err := s.q.list(lq)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.pool.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		r, err := scanPostgresRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan recommendation: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}
	return records, total, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanPostgresRecord(row pgx.Row) (Record, error) {
	var r Record
	var warnings, excluded string

	err := row.Scan(
		&r.ID, &r.UserID, &r.Goal, &r.ProtocolName,
		&r.CoreProduct, &r.CatalystProduct, &r.FoundationProduct,
		&r.Confidence, &r.Eligibility, &r.MonetizationPath,
		&warnings, &excluded, &r.MechanisticBasis, &r.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}

	if r.Warnings, err = decodeList(warnings); err != nil {
		return Record{}, fmt.Errorf("decode warnings: %w", err)
	}
	if r.ExcludedProducts, err = decodeList(excluded); err != nil {
		return Record{}, fmt.Errorf("decode excluded products: %w", err)
	}
	r.CreatedAt = r.CreatedAt.UTC()
	return r, nil
}
