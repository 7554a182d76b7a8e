package pagination

import (
	"context"
	"errors"
	"fmt"
	"myWellnessCentre/domain"
	"myWellnessCentre/pkg/logger"
	"time"
)

// PageSize is fixed for every list screen.
const PageSize = 5

const (
	StatePopulated = "populated"
	StateEmpty     = "empty"
)

// Query is an equality filter on one field plus a descending sort on another.
// Field names are logical ("email", "referredBy", "createdAt"); the source maps them.
type Query struct {
	Collection  string
	FilterField string
	FilterValue string
	SortField   string
}

// PaymentsQuery lists the payment records of one user, newest first.
func PaymentsQuery(email string) Query {
	return Query{Collection: "payments", FilterField: "email", FilterValue: email, SortField: "createdAt"}
}

// ReferralsQuery lists the users who signed up with referralCode, newest first.
func ReferralsQuery(referralCode string) Query {
	return Query{Collection: "users", FilterField: "referredBy", FilterValue: referralCode, SortField: "createdAt"}
}

func (q Query) chainKey() string {
	return fmt.Sprintf("%s:%s=%s:%s", q.Collection, q.FilterField, q.FilterValue, q.SortField)
}

// Source runs keyset queries against one collection.
type Source[T domain.Pageable] interface {
	// Find returns up to limit records matching q, sorted by q.SortField descending
	// (ties by id descending), strictly after the given cursor when it is non-nil.
	Find(ctx context.Context, q Query, after *domain.Cursor, limit int) ([]T, error)
	Count(ctx context.Context, q Query) (int64, error)
}

// CursorStore keeps, per query, the cursor of the last record of every page fetched so far.
type CursorStore interface {
	Load(ctx context.Context, chainKey string) (map[int]domain.Cursor, error)
	Save(ctx context.Context, chainKey string, page int, cursor domain.Cursor) error
	Reset(ctx context.Context, chainKey string) error
}

type Page[T any] struct {
	Records    []T    `json:"records"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
	TotalCount int64  `json:"total_count"`
	NextCursor string `json:"next_cursor,omitempty"`
	State      string `json:"state"`
}

type Paginator[T domain.Pageable] struct {
	source  Source[T]
	cursors CursorStore
}

func NewPaginator[T domain.Pageable](source Source[T], cursors CursorStore) *Paginator[T] {
	return &Paginator[T]{
		source:  source,
		cursors: cursors,
	}
}

// TotalPages is ceil(count/PageSize), never less than one.
func TotalPages(count int64) int {
	if count <= 0 {
		return 1
	}
	return int((count + PageSize - 1) / PageSize)
}

// Page fetches one page of q. For page > 1 the starting cursor comes from cursorToken
// when the caller has one, otherwise from the stored cursor chain, otherwise by walking
// forward from the furthest page already known.
//
// A caller token that disagrees with the stored cursor of page-1 is rejected with
// domain.ErrInvalidCursor. Pages read from a token the chain cannot vouch for are not
// written back to the chain.
//
// An empty first page is returned together with domain.ErrNoRecords.
func (p *Paginator[T]) Page(ctx context.Context, q Query, page int, cursorToken string) (Page[T], error) {
	start := time.Now()
	defer func() {
		pageFetchDuration.WithLabelValues(q.Collection).Observe(time.Since(start).Seconds())
	}()

	if page < 1 {
		return Page[T]{}, domain.ErrInvalidPage
	}

	total, err := p.source.Count(ctx, q)
	if err != nil {
		return Page[T]{}, p.fetchError(q, err)
	}

	result := Page[T]{
		Records:    []T{},
		Page:       page,
		PageSize:   PageSize,
		TotalPages: TotalPages(total),
		TotalCount: total,
		State:      StateEmpty,
	}

	if page > result.TotalPages {
		return result, domain.ErrPageOutOfRange
	}

	var after *domain.Cursor
	trusted := true
	if page > 1 {
		after, trusted, err = p.startCursor(ctx, q, page, cursorToken)
		if err != nil {
			return result, err
		}
	}

	records, err := p.source.Find(ctx, q, after, PageSize)
	if err != nil {
		return result, p.fetchError(q, err)
	}

	if len(records) == 0 {
		if page == 1 {
			return result, domain.ErrNoRecords
		}
		return result, nil
	}

	last := records[len(records)-1].Cursor()
	if trusted {
		p.remember(ctx, q, page, last)
	}

	result.Records = records
	result.State = StatePopulated
	if page < result.TotalPages {
		result.NextCursor = last.Encode()
	}

	return result, nil
}

// Invalidate drops the cursor chain of q; call it after writes that change q's result set.
func (p *Paginator[T]) Invalidate(ctx context.Context, q Query) {
	if err := p.cursors.Reset(ctx, q.chainKey()); err != nil {
		logger.Warn("Failed to reset cursor chain", "collection", q.Collection, "error", err)
	}
}

// startCursor resolves the cursor page starts after. The bool reports whether the cursor
// is known to end page-1, i.e. whether the page may be stored in the chain.
func (p *Paginator[T]) startCursor(ctx context.Context, q Query, page int, cursorToken string) (*domain.Cursor, bool, error) {
	var given *domain.Cursor
	if cursorToken != "" {
		c, err := domain.DecodeCursor(cursorToken)
		if err != nil {
			return nil, false, err
		}
		given = c
	}

	chain, err := p.cursors.Load(ctx, q.chainKey())
	if err != nil {
		logger.Warn("Cursor chain unavailable", "collection", q.Collection, "error", err)
		if given != nil {
			return given, false, nil
		}
		chain = nil
	}

	if c, ok := chain[page-1]; ok {
		if given != nil && !given.Same(c) {
			return nil, false, domain.ErrInvalidCursor
		}
		return &c, true, nil
	}

	if given != nil {
		return given, false, nil
	}

	known := 0
	var after *domain.Cursor
	for n := page - 2; n >= 1; n-- {
		if c, ok := chain[n]; ok {
			known = n
			after = &c
			break
		}
	}

	for n := known + 1; n < page; n++ {
		records, err := p.source.Find(ctx, q, after, PageSize)
		if err != nil {
			return nil, false, p.fetchError(q, err)
		}
		if len(records) == 0 {
			return nil, false, domain.ErrPageOutOfRange
		}

		c := records[len(records)-1].Cursor()
		after = &c
		p.remember(ctx, q, n, c)
	}

	return after, true, nil
}

func (p *Paginator[T]) remember(ctx context.Context, q Query, page int, c domain.Cursor) {
	if err := p.cursors.Save(ctx, q.chainKey(), page, c); err != nil {
		logger.Warn("Failed to store page cursor", "collection", q.Collection, "page", page, "error", err)
	}
}

func (p *Paginator[T]) fetchError(q Query, err error) error {
	if errors.Is(err, domain.ErrUnknownField) {
		return err
	}
	logger.Error("Error fetching records", "collection", q.Collection, "filter", q.FilterField, "error", err)
	return fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
}
