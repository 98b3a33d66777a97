// Package recommend wraps the protocol engine for the service shell: it adds
// logging, tracing and optional history persistence around each evaluation.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Skufu/protocolrx/internal/knowledge"
	"github.com/Skufu/protocolrx/internal/protocol"
	"github.com/Skufu/protocolrx/internal/risk"
	"github.com/Skufu/protocolrx/internal/store"
	"github.com/Skufu/protocolrx/internal/telemetry"
)

// ErrHistoryDisabled is returned by history lookups when no store is wired.
var ErrHistoryDisabled = errors.New("recommendation history is disabled")

const AnonymousUser = "anonymous"

// Deps wires the service's collaborators. Repository may be nil.
type Deps struct {
	Engine     *protocol.Engine
	Repository store.Repository
	Logger     *slog.Logger
	Tracer     trace.Tracer
	Now        func() time.Time
	NewID      func() string
}

type Service struct {
	engine *protocol.Engine
	repo   store.Repository
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
	newID  func() string
}

func New(deps Deps) *Service {
	s := &Service{
		engine: deps.Engine,
		repo:   deps.Repository,
		logger: deps.Logger,
		tracer: deps.Tracer,
		now:    deps.Now,
		newID:  deps.NewID,
	}
	if s.engine == nil {
		s.engine = protocol.NewEngine(knowledge.Default())
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.tracer == nil {
		s.tracer = telemetry.Tracer()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

func (s *Service) Assess(ctx context.Context, p risk.Profile) risk.Assessment {
	_, span := s.tracer.Start(ctx, "risk.assess")
	defer span.End()

	a := s.engine.Assess(p)
	span.SetAttributes(
		attribute.String("risk.eligibility", string(a.Eligibility)),
		attribute.Int("risk.warnings", len(a.Warnings)),
		attribute.Bool("risk.oversight", a.RequiresHumanOversight),
	)
	return a
}

// Generate evaluates the profile and records the result when history is
// enabled. A storage failure is returned alongside the recommendation, which
// is still valid.
func (s *Service) Generate(ctx context.Context, userID string, p risk.Profile) (protocol.Recommendation, error) {
	ctx, span := s.tracer.Start(ctx, "protocol.generate")
	defer span.End()

	userID = resolveUser(userID)

	rec := s.engine.Generate(p)

	protocolName := ""
	if rec.Protocol != nil {
		protocolName = rec.Protocol.Name
	}
	span.SetAttributes(
		attribute.String("protocol.goal", rec.Goal),
		attribute.String("protocol.name", protocolName),
		attribute.String("risk.eligibility", string(rec.Eligibility)),
		attribute.String("protocol.monetization", string(rec.MonetizationPath)),
	)

	log := s.logger.With("goal", rec.Goal, "eligibility", rec.Eligibility)
	if rec.Protocol == nil {
		log.Info("no protocol for goal; routing to human review")
	}
	for _, flag := range rec.ReviewFlags {
		log.Warn("recommendation flagged", "flag", flag)
	}

	if s.repo == nil {
		return rec, nil
	}

	record := store.FromRecommendation(s.newID(), userID, rec, s.now())
	if err := s.repo.Save(ctx, record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save recommendation")
		log.Error("save recommendation failed", "error", err)
		return rec, fmt.Errorf("save recommendation: %w", err)
	}
	log.Debug("recommendation recorded", "id", record.ID, "user", userID)
	return rec, nil
}

// History lists userID's stored recommendations, newest first. Any UserID
// already set on q is replaced.
func (s *Service) History(ctx context.Context, userID string, q store.ListQuery) ([]store.Record, int, error) {
	if s.repo == nil {
		return nil, 0, ErrHistoryDisabled
	}
	q.UserID = resolveUser(userID)
	return s.repo.List(ctx, q.Normalize())
}

// Record fetches one of userID's stored recommendations.
func (s *Service) Record(ctx context.Context, userID, id string) (store.Record, error) {
	if s.repo == nil {
		return store.Record{}, ErrHistoryDisabled
	}
	return s.repo.Get(ctx, id, resolveUser(userID))
}

// Catalog returns the protocols in goal-lookup order.
func (s *Service) Catalog() []knowledge.Protocol {
	return s.engine.Catalog()
}

func resolveUser(userID string) string {
	if userID == "" {
		return AnonymousUser
	}
	return userID
}

// Ping checks the repository, if any.
func (s *Service) Ping(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.Ping(ctx)
}
