package steps

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

// The prompt registry is process-global; the sentiment and generation tests
// build real prompts through it.
func init() {
	prompts.RegisterAll()
}

type fakeGenResponse struct {
	obj map[string]any
	err error
}

// fakeAI scripts the openai client. Sequential tests queue responses;
// concurrent tests set generate to answer by prompt content. Mutex-guarded
// because the generation stage calls it from multiple goroutines.
type fakeAI struct {
	mu sync.Mutex

	embedCalls int
	embedErr   error
	embedVecs  [][]float32
	lastEmbed  []string

	genCalls  int
	responses []fakeGenResponse
	generate  func(system, user string) (map[string]any, error)
	users     []string
}

func (f *fakeAI) Embed(_ context.Context, inputs []string) ([][]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embedCalls++
	f.lastEmbed = inputs
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
	i := f.genCalls
	f.genCalls++
	f.users = append(f.users, user)
	if f.generate != nil {
		return f.generate(system, user)
	}
	if i >= len(f.responses) {
		return nil, fmt.Errorf("no scripted response for call %d", i)
	}
	return f.responses[i].obj, f.responses[i].err
}

type fakeVectorStore struct {
	matches  []pc.VectorMatch
	queryErr error

	queryCalls    int
	lastNamespace string
	lastTopK      int
}

func (f *fakeVectorStore) Upsert(_ context.Context, _ string, _ []pc.Vector) error { return nil }

func (f *fakeVectorStore) QueryMatches(_ context.Context, namespace string, _ []float32, topK int, _ map[string]any) ([]pc.VectorMatch, error) {
	f.queryCalls++
	f.lastNamespace = namespace
	f.lastTopK = topK
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.matches, nil
}

func (f *fakeVectorStore) QueryIDs(_ context.Context, _ string, _ []float32, _ int, _ map[string]any) ([]string, error) {
	return nil, nil
}

func (f *fakeVectorStore) DeleteIDs(_ context.Context, _ string, _ []string) error { return nil }

type fakeStrategyRepo struct {
	rows     []*types.Strategy
	listRows []*types.Strategy
	listErr  error

	getCalls       int
	listCalls      int
	lastIDs        []uuid.UUID
	lastCategories []string
}

func (f *fakeStrategyRepo) Create(_ context.Context, _ *gorm.DB, strategies []*types.Strategy) ([]*types.Strategy, error) {
	return strategies, nil
}

func (f *fakeStrategyRepo) GetByIDs(_ context.Context, _ *gorm.DB, ids []uuid.UUID) ([]*types.Strategy, error) {
	f.getCalls++
	f.lastIDs = ids
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

func (f *fakeStrategyRepo) ListByCategories(_ context.Context, _ *gorm.DB, categories []string, _ int) ([]*types.Strategy, error) {
	f.listCalls++
	f.lastCategories = categories
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listRows, nil
}

type fakeSnapshotRepo struct {
	history []*types.MetricSnapshot
	listErr error

	upserted  []*types.MetricSnapshot
	upsertErr error
	listCalls int
}

func (f *fakeSnapshotRepo) Upsert(_ context.Context, _ *gorm.DB, snapshot *types.MetricSnapshot) error {
	if f.upsertErr != nil {
		return f.upsertErr
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
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.history, nil
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

type fakeCache struct {
	store map[string][]byte

	getErr error
	setErr error

	getCalls   int
	setCalls   int
	lastSetKey string
	lastTTL    time.Duration
}

func (f *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	f.getCalls++
	if f.getErr != nil {
		return false, f.getErr
	}
	raw, ok := f.store[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (f *fakeCache) SetJSON(_ context.Context, key string, val any, ttl time.Duration) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	if f.store == nil {
		f.store = map[string][]byte{}
	}
	f.store[key] = raw
	f.lastSetKey = key
	f.lastTTL = ttl
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.store, key)
	return nil
}

func (f *fakeCache) Close() error { return nil }
