package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout/prompts"
	pc "github.com/yungbote/pulsecheck-backend/internal/platform/pinecone"
)

func init() {
	prompts.RegisterAll()
}

// fakeAI answers by prompt content so call order does not matter; the
// generation stage fans out over goroutines.
type fakeAI struct {
	mu sync.Mutex

	embedErr  error
	embedVecs [][]float32

	genCalls int
	generate func(system, user string) (map[string]any, error)
}

func (f *fakeAI) Embed(_ context.Context, inputs []string) ([][]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	if f.embedVecs != nil {
		return f.embedVecs, nil
	}
	out := make([][]float32, len(inputs))
	for i := range out {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

func (f *fakeAI) GenerateJSON(_ context.Context, system, user, _ string, _ map[string]any) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.genCalls++
	if f.generate == nil {
		return nil, fmt.Errorf("no generate script")
	}
	return f.generate(system, user)
}

type fakeVectorStore struct {
	matches  []pc.VectorMatch
	queryErr error
}

func (f *fakeVectorStore) Upsert(_ context.Context, _ string, _ []pc.Vector) error { return nil }

func (f *fakeVectorStore) QueryMatches(_ context.Context, _ string, _ []float32, _ int, _ map[string]any) ([]pc.VectorMatch, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.matches, nil
}

func (f *fakeVectorStore) QueryIDs(_ context.Context, _ string, _ []float32, _ int, _ map[string]any) ([]string, error) {
	return nil, nil
}

func (f *fakeVectorStore) DeleteIDs(_ context.Context, _ string, _ []string) error { return nil }

type fakeCache struct {
	store map[string][]byte
}

func (f *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	raw, ok := f.store[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (f *fakeCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	if f.store == nil {
		f.store = map[string][]byte{}
	}
	f.store[key] = raw
	return nil
}

func (f *fakeCache) Delete(_ context.Context, _ string) error { return nil }
func (f *fakeCache) Close() error                             { return nil }

type fakeUserRepo struct {
	exists    bool
	existsErr error
}

func (f *fakeUserRepo) Create(_ context.Context, _ *gorm.DB, users []*types.User) ([]*types.User, error) {
	return users, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ *gorm.DB, _ uuid.UUID) (*types.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Exists(_ context.Context, _ *gorm.DB, _ uuid.UUID) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.exists, nil
}

type fakeProfileRepo struct {
	profile *types.UserProfile
	err     error
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, _ *gorm.DB, _ uuid.UUID) (*types.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func (f *fakeProfileRepo) Upsert(_ context.Context, _ *gorm.DB, p *types.UserProfile) error {
	f.profile = p
	return nil
}

type fakeTaskRepo struct {
	active []*types.Task
	due    []*types.Task
}

func (f *fakeTaskRepo) Create(_ context.Context, _ *gorm.DB, tasks []*types.Task) ([]*types.Task, error) {
	return tasks, nil
}

func (f *fakeTaskRepo) ListActive(_ context.Context, _ *gorm.DB, _ uuid.UUID) ([]*types.Task, error) {
	return f.active, nil
}

func (f *fakeTaskRepo) ListDueBetween(_ context.Context, _ *gorm.DB, _ uuid.UUID, _, _ time.Time) ([]*types.Task, error) {
	return f.due, nil
}

type fakeEventRepo struct {
	events []*types.CalendarEvent
}

func (f *fakeEventRepo) Create(_ context.Context, _ *gorm.DB, events []*types.CalendarEvent) ([]*types.CalendarEvent, error) {
	return events, nil
}

func (f *fakeEventRepo) ListBetween(_ context.Context, _ *gorm.DB, _ uuid.UUID, _, _ time.Time) ([]*types.CalendarEvent, error) {
	return f.events, nil
}

type fakeJournalRepo struct {
	entries []*types.JournalEntry
}

func (f *fakeJournalRepo) Create(_ context.Context, _ *gorm.DB, entries []*types.JournalEntry) ([]*types.JournalEntry, error) {
	return entries, nil
}

func (f *fakeJournalRepo) ListSince(_ context.Context, _ *gorm.DB, _ uuid.UUID, _ time.Time, _ int) ([]*types.JournalEntry, error) {
	return f.entries, nil
}

func (f *fakeJournalRepo) CountForUser(_ context.Context, _ *gorm.DB, _ uuid.UUID) (int64, error) {
	return int64(len(f.entries)), nil
}

type fakeSnapshotRepo struct {
	history  []*types.MetricSnapshot
	upserted []*types.MetricSnapshot
}

func (f *fakeSnapshotRepo) Upsert(_ context.Context, _ *gorm.DB, snapshot *types.MetricSnapshot) error {
	if snapshot.ID == uuid.Nil {
		snapshot.ID = uuid.New()
	}
	f.upserted = append(f.upserted, snapshot)
	return nil
}

func (f *fakeSnapshotRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.MetricSnapshot, error) {
	for _, s := range f.history {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSnapshotRepo) ListRecent(_ context.Context, _ *gorm.DB, _ uuid.UUID, _ int) ([]*types.MetricSnapshot, error) {
	return f.history, nil
}

type fakeAnalysisRepo struct {
	rows      []*types.BurnoutAnalysis
	createErr error
}

func (f *fakeAnalysisRepo) Create(_ context.Context, _ *gorm.DB, analysis *types.BurnoutAnalysis) error {
	if f.createErr != nil {
		return f.createErr
	}
	if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}
	f.rows = append(f.rows, analysis)
	return nil
}

func (f *fakeAnalysisRepo) GetForUser(_ context.Context, _ *gorm.DB, userID, id uuid.UUID) (*types.BurnoutAnalysis, error) {
	for _, a := range f.rows {
		if a.ID == id && a.UserID == userID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAnalysisRepo) ListRecent(_ context.Context, _ *gorm.DB, userID uuid.UUID, _ int) ([]*types.BurnoutAnalysis, error) {
	out := []*types.BurnoutAnalysis{}
	for _, a := range f.rows {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeRecRepo struct {
	rows []*types.Recommendation

	createErr          error
	updateAffected     int64
	updateErr          error
	updateCalls        int
	deletePendingCalls int
	lastStatus         string
	lastResolvedAt     time.Time
}

func (f *fakeRecRepo) CreateBatch(_ context.Context, _ *gorm.DB, recs []*types.Recommendation) ([]*types.Recommendation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, rec := range recs {
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
	}
	f.rows = append(f.rows, recs...)
	return recs, nil
}

func (f *fakeRecRepo) GetForUser(_ context.Context, _ *gorm.DB, userID, id uuid.UUID) (*types.Recommendation, error) {
	for _, r := range f.rows {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecRepo) ListByAnalysis(_ context.Context, _ *gorm.DB, userID, analysisID uuid.UUID) ([]*types.Recommendation, error) {
	out := []*types.Recommendation{}
	for _, r := range f.rows {
		if r.UserID == userID && r.AnalysisID == analysisID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecRepo) DeletePendingByAnalysis(_ context.Context, _ *gorm.DB, analysisID uuid.UUID) error {
	f.deletePendingCalls++
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.AnalysisID == analysisID && r.Status == types.RecommendationStatusPending {
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return nil
}

func (f *fakeRecRepo) UpdateStatus(_ context.Context, _ *gorm.DB, id uuid.UUID, status string, resolvedAt time.Time) (int64, error) {
	f.updateCalls++
	f.lastStatus = status
	f.lastResolvedAt = resolvedAt
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	return f.updateAffected, nil
}

type fakeStrategyRepo struct {
	rows     []*types.Strategy
	listRows []*types.Strategy
}

func (f *fakeStrategyRepo) Create(_ context.Context, _ *gorm.DB, strategies []*types.Strategy) ([]*types.Strategy, error) {
	return strategies, nil
}

func (f *fakeStrategyRepo) GetByIDs(_ context.Context, _ *gorm.DB, ids []uuid.UUID) ([]*types.Strategy, error) {
	want := map[uuid.UUID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := make([]*types.Strategy, 0, len(ids))
	for _, s := range f.rows {
		if want[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStrategyRepo) ListByCategories(_ context.Context, _ *gorm.DB, _ []string, _ int) ([]*types.Strategy, error) {
	return f.listRows, nil
}
