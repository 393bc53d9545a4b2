package pagecache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/paydesk/paydesk/internal/dataset"
)

// Fetcher serves repeated queries from a Store and forwards misses to the
// wrapped source.
type Fetcher[R any] struct {
	src    dataset.Fetcher[R]
	store  *Store[dataset.Query, dataset.Page[R]]
	group  singleflight.Group
	logger zerolog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*fetcherOptions)

type fetcherOptions struct {
	logger    zerolog.Logger
	storeOpts []StoreOption
}

// WithLogger sets the logger for hit and miss events.
func WithLogger(l zerolog.Logger) FetcherOption {
	return func(o *fetcherOptions) { o.logger = l }
}

// WithStoreOptions passes options through to the underlying Store.
func WithStoreOptions(opts ...StoreOption) FetcherOption {
	return func(o *fetcherOptions) { o.storeOpts = append(o.storeOpts, opts...) }
}

// NewFetcher wraps src with a page cache of the given TTL.
func NewFetcher[R any](src dataset.Fetcher[R], ttl time.Duration, opts ...FetcherOption) *Fetcher[R] {
	o := fetcherOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Fetcher[R]{
		src:    src,
		store:  NewStore[dataset.Query, dataset.Page[R]](ttl, o.storeOpts...),
		logger: o.logger,
	}
}

// Fetch returns the cached page for q or loads it from the source.
// Concurrent misses for the same query share one load. A caller whose ctx is
// done returns ctx.Err() at once while the load continues for the others.
func (f *Fetcher[R]) Fetch(ctx context.Context, q dataset.Query) (dataset.Page[R], error) {
	if page, err := f.store.Get(q); err == nil {
		f.logger.Debug().Int("page", q.Page).Str("search", q.Search).Msg("page cache hit")
		return page, nil
	}

	// The shared load must not inherit the starting caller's cancellation.
	loadCtx := context.WithoutCancel(ctx)
	ch := f.group.DoChan(queryKey(q), func() (any, error) {
		page, fetchErr := f.src.Fetch(loadCtx, q)
		if fetchErr != nil {
			return nil, fetchErr
		}
		f.store.Set(q, page)
		return page, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return dataset.Page[R]{}, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return dataset.Page[R]{}, res.Err
	}
	v, shared := res.Val, res.Shared
	page, ok := v.(dataset.Page[R])
	if !ok {
		return dataset.Page[R]{}, fmt.Errorf("unexpected cached value %T", v)
	}
	f.logger.Debug().Int("page", q.Page).Bool("shared", shared).Msg("page cache miss")
	return page, nil
}

// Invalidate drops every cached page so the next fetch reaches the source.
func (f *Fetcher[R]) Invalidate() {
	f.store.Clear()
}

// Len returns the number of cached pages.
func (f *Fetcher[R]) Len() int {
	return f.store.Count()
}

func queryKey(q dataset.Query) string {
	return q.Search + "\x00" + q.SortKey + "\x00" + strconv.FormatBool(q.SortDesc) +
		"\x00" + strconv.Itoa(q.Page) + "\x00" + strconv.Itoa(q.PageSize)
}
