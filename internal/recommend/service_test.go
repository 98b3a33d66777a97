package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Skufu/protocolrx/internal/logging"
	"github.com/Skufu/protocolrx/internal/risk"
	"github.com/Skufu/protocolrx/internal/store"
)

type fakeRepo struct {
	saved     []store.Record
	saveErr   error
	pingErr   error
	lastQuery store.ListQuery
}

func (f *fakeRepo) Save(_ context.Context, r store.Record) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id, userID string) (store.Record, error) {
	for _, r := range f.saved {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return store.Record{}, store.ErrNotFound
}

func (f *fakeRepo) List(_ context.Context, q store.ListQuery) ([]store.Record, int, error) {
	f.lastQuery = q
	out := []store.Record{}
	for _, r := range f.saved {
		if r.UserID == q.UserID {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) Ping(context.Context) error { return f.pingErr }

func (f *fakeRepo) Close() error { return nil }

func newService(repo store.Repository) *Service {
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	return New(Deps{
		Repository: repo,
		Logger:     logging.Discard(),
		Now:        func() time.Time { return fixed },
		NewID:      func() string { return "rec-1" },
	})
}

func TestGenerateWithoutHistory(t *testing.T) {
	s := newService(nil)
	rec, err := s.Generate(context.Background(), "", risk.Profile{Goal: "focus", AgeOver18: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Protocol == nil {
		t.Fatal("expected protocol")
	}
	if _, _, err := s.History(context.Background(), "", store.ListQuery{}); !errors.Is(err, ErrHistoryDisabled) {
		t.Fatalf("expected ErrHistoryDisabled, got %v", err)
	}
	if _, err := s.Record(context.Background(), "", "x"); !errors.Is(err, ErrHistoryDisabled) {
		t.Fatalf("expected ErrHistoryDisabled, got %v", err)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping without repo should succeed, got %v", err)
	}
}

func TestGenerateRecordsHistory(t *testing.T) {
	repo := &fakeRepo{}
	s := newService(repo)

	_, err := s.Generate(context.Background(), "", risk.Profile{Goal: "focus", Medications: []string{"sertraline"}, AgeOver18: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected one saved record, got %d", len(repo.saved))
	}
	r := repo.saved[0]
	if r.ID != "rec-1" || r.UserID != AnonymousUser || r.Eligibility != "modified" {
		t.Fatalf("unexpected record %+v", r)
	}

	got, err := s.Record(context.Background(), "", "rec-1")
	if err != nil || got.ID != "rec-1" {
		t.Fatalf("record lookup failed: %+v %v", got, err)
	}
}

func TestHistoryScopedToCaller(t *testing.T) {
	repo := &fakeRepo{saved: []store.Record{
		{ID: "rec-alice", UserID: "alice"},
		{ID: "rec-bob", UserID: "bob"},
	}}
	s := newService(repo)
	ctx := context.Background()

	items, total, err := s.History(ctx, "mallory", store.ListQuery{UserID: "alice"})
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 || len(items) != 0 || repo.lastQuery.UserID != "mallory" {
		t.Fatalf("caller saw other users' history: %+v (query %+v)", items, repo.lastQuery)
	}
	if repo.lastQuery.Limit != store.DefaultLimit {
		t.Fatalf("query not normalized: %+v", repo.lastQuery)
	}

	if _, err := s.Record(ctx, "mallory", "rec-alice"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user's record, got %v", err)
	}
	if r, err := s.Record(ctx, "alice", "rec-alice"); err != nil || r.ID != "rec-alice" {
		t.Fatalf("owner lookup failed: %+v %v", r, err)
	}
}

func TestGenerateReturnsRecommendationOnSaveFailure(t *testing.T) {
	repo := &fakeRepo{saveErr: errors.New("disk full")}
	s := newService(repo)

	rec, err := s.Generate(context.Background(), "u", risk.Profile{Goal: "sleep", AgeOver18: true})
	if err == nil {
		t.Fatal("expected save error")
	}
	if rec.Protocol == nil || rec.Protocol.Name != "Sleep & Recovery Protocol" {
		t.Fatalf("recommendation should still be returned, got %+v", rec)
	}
}

func TestAssessMatchesEngine(t *testing.T) {
	s := newService(nil)
	a := s.Assess(context.Background(), risk.Profile{Goal: "focus", Conditions: []string{"epilepsy"}, AgeOver18: true})
	if a.Eligibility != risk.EligibilityPremiumRequired || !a.RequiresHumanOversight {
		t.Fatalf("unexpected assessment %+v", a)
	}
}

func TestCatalog(t *testing.T) {
	if got := newService(nil).Catalog(); len(got) != 4 {
		t.Fatalf("expected 4 protocols, got %d", len(got))
	}
}

func TestPingPropagatesRepoError(t *testing.T) {
	s := newService(&fakeRepo{pingErr: errors.New("down")})
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error")
	}
}
