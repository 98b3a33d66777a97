package store

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var recordColumns = []string{
	"id", "user_id", "goal", "protocol_name",
	"core_product", "catalyst_product", "foundation_product",
	"confidence_level", "eligibility", "monetization_path",
	"warnings", "excluded_products", "mechanistic_basis", "created_at",
}

// queries builds SQL for one placeholder dialect.
type queries struct {
	builder sq.StatementBuilderType
}

func newQueries(format sq.PlaceholderFormat) queries {
	return queries{builder: sq.StatementBuilder.PlaceholderFormat(format)}
}

// insert encodes list columns as JSON text; createdAt is passed in the
// dialect's native representation.
func (q queries) insert(r Record, createdAt any) (string, []any, error) {
	warnings, err := json.Marshal(r.Warnings)
	if err != nil {
		return "", nil, fmt.Errorf("encode warnings: %w", err)
	}
	excluded, err := json.Marshal(r.ExcludedProducts)
	if err != nil {
		return "", nil, fmt.Errorf("encode excluded products: %w", err)
	}

	return q.builder.
		Insert(tableName).
		Columns(recordColumns...).
		Values(
			r.ID, r.UserID, r.Goal, r.ProtocolName,
			r.CoreProduct, r.CatalystProduct, r.FoundationProduct,
			r.Confidence, r.Eligibility, r.MonetizationPath,
			string(warnings), string(excluded), r.MechanisticBasis, createdAt,
		).
		ToSql()
}

func (q queries) get(id, userID string) (string, []any, error) {
	return q.builder.
		Select(recordColumns...).
		From(tableName).
		Where(sq.And{sq.Eq{"id": id}, sq.Eq{"user_id": userID}}).
		ToSql()
}

func (q queries) list(lq ListQuery) (string, []any, error) {
	return q.builder.
		Select(recordColumns...).
		From(tableName).
		Where(sq.Eq{"user_id": lq.UserID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(lq.Limit)).
		Offset(uint64(lq.Skip)).
		ToSql()
}

func (q queries) count(lq ListQuery) (string, []any, error) {
	return q.builder.
		Select("COUNT(*)").
		From(tableName).
		Where(sq.Eq{"user_id": lq.UserID}).
		ToSql()
}

func decodeList(raw string) ([]string, error) {
	out := []string{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}
