package pagination

import (
	"context"
	"errors"
	"fmt"
	"myWellnessCentre/domain"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecord struct {
	ID        string
	Owner     string
	CreatedAt time.Time
}

func (r fakeRecord) Cursor() domain.Cursor {
	return domain.Cursor{SortValue: r.CreatedAt, ID: r.ID}
}

type fakeSource struct {
	records   []fakeRecord
	findCalls int
	err       error
}

func (s *fakeSource) matching(q Query) []fakeRecord {
	var out []fakeRecord
	for _, r := range s.records {
		if r.Owner == q.FilterValue {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *fakeSource) Find(_ context.Context, q Query, after *domain.Cursor, limit int) ([]fakeRecord, error) {
	s.findCalls++
	if s.err != nil {
		return nil, s.err
	}

	var out []fakeRecord
	for _, r := range s.matching(q) {
		if after != nil {
			older := r.CreatedAt.Before(after.SortValue) ||
				(r.CreatedAt.Equal(after.SortValue) && r.ID < after.ID)
			if !older {
				continue
			}
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeSource) Count(_ context.Context, q Query) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.matching(q))), nil
}

type memoryCursorStore struct {
	mu      sync.Mutex
	chains  map[string]map[int]domain.Cursor
	loadErr error
}

func newMemoryCursorStore() *memoryCursorStore {
	return &memoryCursorStore{chains: make(map[string]map[int]domain.Cursor)}
}

func (m *memoryCursorStore) Load(_ context.Context, key string) (map[int]domain.Cursor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make(map[int]domain.Cursor, len(m.chains[key]))
	for k, v := range m.chains[key] {
		out[k] = v
	}
	return out, nil
}

func (m *memoryCursorStore) Save(_ context.Context, key string, page int, c domain.Cursor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.chains[key] == nil {
		m.chains[key] = make(map[int]domain.Cursor)
	}
	m.chains[key][page] = c
	return nil
}

func (m *memoryCursorStore) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.chains, key)
	return nil
}

var base = time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)

func seed(owner string, n int) []fakeRecord {
	out := make([]fakeRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fakeRecord{
			ID:        fmt.Sprintf("%s-%02d", owner, i),
			Owner:     owner,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}

func TestTotalPages(t *testing.T) {
	tests := map[int64]int{0: 1, 1: 1, 5: 1, 6: 2, 10: 2, 11: 3, 23: 5}
	for count, want := range tests {
		assert.Equal(t, want, TotalPages(count), "count=%d", count)
	}
}

func TestPaginator_SequentialPagesCoverResultSet(t *testing.T) {
	records := append(seed("a@x.com", 13), seed("b@x.com", 4)...)
	src := &fakeSource{records: records}
	p := NewPaginator[fakeRecord](src, newMemoryCursorStore())
	q := PaymentsQuery("a@x.com")

	var got []fakeRecord
	for page := 1; page <= 3; page++ {
		res, err := p.Page(context.Background(), q, page, "")
		require.NoError(t, err)
		assert.Equal(t, 3, res.TotalPages)
		assert.Equal(t, int64(13), res.TotalCount)
		assert.Equal(t, StatePopulated, res.State)
		got = append(got, res.Records...)
	}

	want := src.matching(q)
	require.Len(t, got, 13)
	assert.Equal(t, want, got)

	seen := map[string]bool{}
	for _, r := range got {
		assert.False(t, seen[r.ID], "duplicate %s", r.ID)
		seen[r.ID] = true
	}
}

func TestPaginator_EmptyFirstPage(t *testing.T) {
	p := NewPaginator[fakeRecord](&fakeSource{}, newMemoryCursorStore())

	res, err := p.Page(context.Background(), PaymentsQuery("nobody@x.com"), 1, "")

	assert.ErrorIs(t, err, domain.ErrNoRecords)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, StateEmpty, res.State)
	assert.NotNil(t, res.Records)
	assert.Empty(t, res.Records)
}

func TestPaginator_JumpWalksAndStoresChain(t *testing.T) {
	src := &fakeSource{records: seed("a@x.com", 17)}
	store := newMemoryCursorStore()
	p := NewPaginator[fakeRecord](src, store)
	q := PaymentsQuery("a@x.com")

	res, err := p.Page(context.Background(), q, 3, "")
	require.NoError(t, err)
	assert.Equal(t, 3, src.findCalls, "pages 1 and 2 walked, page 3 fetched")
	assert.Equal(t, src.matching(q)[10:15], res.Records)

	src.findCalls = 0
	res, err = p.Page(context.Background(), q, 2, "")
	require.NoError(t, err)
	assert.Equal(t, 1, src.findCalls, "page 1 cursor comes from the chain")
	assert.Equal(t, src.matching(q)[5:10], res.Records)

	src.findCalls = 0
	res, err = p.Page(context.Background(), q, 4, "")
	require.NoError(t, err)
	assert.Equal(t, 1, src.findCalls)
	assert.Equal(t, src.matching(q)[15:], res.Records)
	assert.Empty(t, res.NextCursor, "last page has no next cursor")
}

func TestPaginator_WalksFromFurthestKnownPage(t *testing.T) {
	src := &fakeSource{records: seed("a@x.com", 30)}
	p := NewPaginator[fakeRecord](src, newMemoryCursorStore())
	q := PaymentsQuery("a@x.com")

	_, err := p.Page(context.Background(), q, 2, "")
	require.NoError(t, err)

	src.findCalls = 0
	res, err := p.Page(context.Background(), q, 5, "")
	require.NoError(t, err)
	assert.Equal(t, 3, src.findCalls, "pages 3 and 4 walked from the stored page 2 cursor")
	assert.Equal(t, src.matching(q)[20:25], res.Records)
}

func TestPaginator_CallerCursor(t *testing.T) {
	src := &fakeSource{records: seed("a@x.com", 8)}
	q := PaymentsQuery("a@x.com")

	first, err := NewPaginator[fakeRecord](src, newMemoryCursorStore()).Page(context.Background(), q, 1, "")
	require.NoError(t, err)
	require.NotEmpty(t, first.NextCursor)

	fresh := NewPaginator[fakeRecord](src, newMemoryCursorStore())
	src.findCalls = 0
	second, err := fresh.Page(context.Background(), q, 2, first.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, 1, src.findCalls)
	assert.Equal(t, src.matching(q)[5:], second.Records)
}

func TestPaginator_UnverifiedTokenLeavesChainAlone(t *testing.T) {
	src := &fakeSource{records: seed("a@x.com", 20)}
	store := newMemoryCursorStore()
	p := NewPaginator[fakeRecord](src, store)
	q := PaymentsQuery("a@x.com")

	first, err := p.Page(context.Background(), q, 1, "")
	require.NoError(t, err)

	// an old tab asks for page 3 holding the cursor that ends page 1
	stale, err := p.Page(context.Background(), q, 3, first.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, src.matching(q)[5:10], stale.Records)
	assert.NotContains(t, store.chains[q.chainKey()], 3)

	fourth, err := p.Page(context.Background(), q, 4, "")
	require.NoError(t, err)
	assert.Equal(t, src.matching(q)[15:20], fourth.Records)
}

func TestPaginator_TokenCheckedAgainstChain(t *testing.T) {
	src := &fakeSource{records: seed("a@x.com", 20)}
	store := newMemoryCursorStore()
	p := NewPaginator[fakeRecord](src, store)
	q := PaymentsQuery("a@x.com")

	first, err := p.Page(context.Background(), q, 1, "")
	require.NoError(t, err)
	second, err := p.Page(context.Background(), q, 2, first.NextCursor)
	require.NoError(t, err)

	_, err = p.Page(context.Background(), q, 3, first.NextCursor)
	assert.ErrorIs(t, err, domain.ErrInvalidCursor)

	third, err := p.Page(context.Background(), q, 3, second.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, src.matching(q)[10:15], third.Records)
	assert.Equal(t, src.matching(q)[14].Cursor(), store.chains[q.chainKey()][3])
}

func TestPaginator_InvalidCursorToken(t *testing.T) {
	p := NewPaginator[fakeRecord](&fakeSource{records: seed("a@x.com", 8)}, newMemoryCursorStore())

	_, err := p.Page(context.Background(), PaymentsQuery("a@x.com"), 2, "%%%")
	assert.ErrorIs(t, err, domain.ErrInvalidCursor)
}

func TestPaginator_TiesBrokenByID(t *testing.T) {
	records := seed("a@x.com", 7)
	for i := range records {
		records[i].CreatedAt = base
	}
	src := &fakeSource{records: records}
	p := NewPaginator[fakeRecord](src, newMemoryCursorStore())
	q := PaymentsQuery("a@x.com")

	first, err := p.Page(context.Background(), q, 1, "")
	require.NoError(t, err)
	second, err := p.Page(context.Background(), q, 2, "")
	require.NoError(t, err)

	assert.Len(t, first.Records, 5)
	assert.Len(t, second.Records, 2)
	assert.Equal(t, "a@x.com-01", second.Records[0].ID)
	assert.Equal(t, "a@x.com-00", second.Records[1].ID)
}

func TestPaginator_Errors(t *testing.T) {
	q := PaymentsQuery("a@x.com")

	t.Run("invalid page", func(t *testing.T) {
		p := NewPaginator[fakeRecord](&fakeSource{}, newMemoryCursorStore())
		_, err := p.Page(context.Background(), q, 0, "")
		assert.ErrorIs(t, err, domain.ErrInvalidPage)
	})

	t.Run("page out of range", func(t *testing.T) {
		p := NewPaginator[fakeRecord](&fakeSource{records: seed("a@x.com", 6)}, newMemoryCursorStore())
		res, err := p.Page(context.Background(), q, 3, "")
		assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
		assert.Equal(t, 2, res.TotalPages)
	})

	t.Run("query failure", func(t *testing.T) {
		p := NewPaginator[fakeRecord](&fakeSource{err: errors.New("connection refused")}, newMemoryCursorStore())
		_, err := p.Page(context.Background(), q, 1, "")
		assert.ErrorIs(t, err, domain.ErrFetchFailed)
		assert.NotErrorIs(t, err, domain.ErrNoRecords)
	})

	t.Run("cursor store down", func(t *testing.T) {
		store := newMemoryCursorStore()
		store.loadErr = errors.New("redis down")
		src := &fakeSource{records: seed("a@x.com", 12)}
		p := NewPaginator[fakeRecord](src, store)

		res, err := p.Page(context.Background(), q, 3, "")
		require.NoError(t, err)
		assert.Equal(t, src.matching(q)[10:], res.Records)
	})
}

func TestPaginator_Invalidate(t *testing.T) {
	src := &fakeSource{records: seed("a@x.com", 12)}
	store := newMemoryCursorStore()
	p := NewPaginator[fakeRecord](src, store)
	q := PaymentsQuery("a@x.com")

	_, err := p.Page(context.Background(), q, 2, "")
	require.NoError(t, err)
	require.NotEmpty(t, store.chains[q.chainKey()])

	p.Invalidate(context.Background(), q)
	assert.Empty(t, store.chains[q.chainKey()])
}
