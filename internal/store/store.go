// Package store persists a flattened history of issued recommendations.
//
// The store sits beside the decision core: the engine never reads from it and
// recommendations are identical whether or not a store is configured.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skufu/protocolrx/internal/protocol"
)

const (
	tableName    = "protocol_recommendations"
	DefaultLimit = 20
	MaxLimit     = 200
)

var ErrNotFound = errors.New("recommendation not found")

// Record is one issued recommendation, flattened for storage.
type Record struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	Goal              string    `json:"goal"`
	ProtocolName      string    `json:"protocolName"`
	CoreProduct       string    `json:"coreProduct,omitempty"`
	CatalystProduct   string    `json:"catalystProduct,omitempty"`
	FoundationProduct string    `json:"foundationProduct,omitempty"`
	Confidence        string    `json:"confidence,omitempty"`
	Eligibility       string    `json:"eligibility"`
	MonetizationPath  string    `json:"monetizationPath"`
	Warnings          []string  `json:"warnings"`
	ExcludedProducts  []string  `json:"excludedProducts"`
	MechanisticBasis  string    `json:"mechanisticBasis,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// FromRecommendation flattens rec. An absent protocol leaves the product
// columns empty.
func FromRecommendation(id, userID string, rec protocol.Recommendation, now time.Time) Record {
	r := Record{
		ID:               id,
		UserID:           userID,
		Goal:             rec.Goal,
		Eligibility:      string(rec.Eligibility),
		MonetizationPath: string(rec.MonetizationPath),
		Warnings:         append([]string{}, rec.RiskAssessment.Warnings...),
		ExcludedProducts: append([]string{}, rec.RiskAssessment.ExcludedProducts...),
		CreatedAt:        now.UTC(),
	}
	if p := rec.Protocol; p != nil {
		r.ProtocolName = p.Name
		r.CoreProduct = p.Core.Name
		r.CatalystProduct = p.Catalyst.Name
		r.Confidence = string(p.Confidence)
		r.MechanisticBasis = p.MechanisticBasis
		if p.Foundation != nil {
			r.FoundationProduct = p.Foundation.Name
		}
	}
	return r
}

// ListQuery pages through one user's history, newest first.
type ListQuery struct {
	UserID string
	Skip   int
	Limit  int
}

// Normalize clamps paging values into range.
func (q ListQuery) Normalize() ListQuery {
	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// Repository defines persistence for recommendation history.
type Repository interface {
	// Save inserts a record. IDs are unique.
	Save(ctx context.Context, r Record) error

	// Get returns userID's record with id. Records owned by another user
	// are reported as ErrNotFound.
	Get(ctx context.Context, id, userID string) (Record, error)

	// List returns one page of q.UserID's records and their total count.
	List(ctx context.Context, q ListQuery) ([]Record, int, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	Close() error
}

// Open connects to the configured driver ("postgres" or "sqlite").
func Open(ctx context.Context, driver, dsn string) (Repository, error) {
	switch driver {
	case "postgres":
		s, err := NewPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		s, err := NewSQLite(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
