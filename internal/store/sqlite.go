package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
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
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_recommendations_user_created
	ON protocol_recommendations(user_id, created_at);
`

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
	q  queries
}

var _ Repository = (*SQLiteStore)(nil)

// NewSQLite opens (creating if needed) the database at dbPath.
func NewSQLite(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db, q: newQueries(sq.Question)}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, r Record) error {
	query, args, err := s.q.insert(r, r.CreatedAt.UnixNano())
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert recommendation: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id, userID string) (Record, error) {
	query, args, err := s.q.get(id, userID)
	if err != nil {
		return Record{}, err
	}

	r, err := scanSQLiteRecord(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("scan recommendation: %w", err)
	}
	return r, nil
}

func (s *SQLiteStore) List(ctx context.Context, lq ListQuery) ([]Record, int, error) {
	lq = lq.Normalize()

	countSQL, countArgs, err := s.q.count(lq)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count recommendations: %w", err)
	}

	listSQL, listArgs, err := s.q.list(lq)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		r, err := scanSQLiteRecord(rows)
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

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteRecord(row rowScanner) (Record, error) {
	var r Record
	var warnings, excluded string
	var createdAt int64

	err := row.Scan(
		&r.ID, &r.UserID, &r.Goal, &r.ProtocolName,
		&r.CoreProduct, &r.CatalystProduct, &r.FoundationProduct,
		&r.Confidence, &r.Eligibility, &r.MonetizationPath,
		&warnings, &excluded, &r.MechanisticBasis, &createdAt,
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
	r.CreatedAt = time.Unix(0, createdAt).UTC()
	return r, nil
}
