package dataset

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/paydesk/paydesk/internal/grid"
	"github.com/paydesk/paydesk/internal/pager"
)

// Query errors.
var (
	ErrInvalidQuery   = errors.New("invalid query")
	ErrUnknownSortKey = errors.New("unknown sort key")
)

// Query asks a Source for one page of rows.
type Query struct {
	Search   string `json:"search,omitempty"`
	SortKey  string `json:"sort_key,omitempty"`
	SortDesc bool   `json:"sort_desc,omitempty"`
	// Page is 0-based.
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Params converts q to the 1-based page parameters used for slicing.
func (q Query) Params() pager.Params {
	return pager.Params{Page: q.Page + 1, PageSize: q.PageSize}
}

// Validate checks the paging bounds.
func (q Query) Validate() error {
	if err := q.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return nil
}

// Page is the result of a Fetch.
type Page[R any] struct {
	Rows       []R
	Pagination pager.Descriptor
}

// Fetcher is a data owner for rows of type R.
type Fetcher[R any] interface {
	Fetch(ctx context.Context, q Query) (Page[R], error)
}

// Invalidator is implemented by fetchers that keep pages between calls.
type Invalidator interface {
	Invalidate()
}

// Field is a sortable and optionally searchable attribute of R.
type Field[R any] struct {
	Key        string
	Value      func(R) any
	Searchable bool
}

// SourceOption configures a Source.
type SourceOption func(*sourceOptions)

type sourceOptions struct {
	latency time.Duration
	failure func(Query) error
	logger  zerolog.Logger
}

// WithLatency delays every Fetch by d, honouring context cancellation.
func WithLatency(d time.Duration) SourceOption {
	return func(o *sourceOptions) { o.latency = d }
}

// WithFailure makes Fetch return the error produced by fn, if any.
func WithFailure(fn func(Query) error) SourceOption {
	return func(o *sourceOptions) { o.failure = fn }
}

// WithSourceLogger sets the logger for query diagnostics.
func WithSourceLogger(l zerolog.Logger) SourceOption {
	return func(o *sourceOptions) { o.logger = l }
}

// Source is an in-memory data owner. It is safe for concurrent Fetch calls
// because the row slice is never modified after construction.
type Source[R any] struct {
	name   string
	rows   []R
	fields map[string]Field[R]
	search []Field[R]
	opts   sourceOptions
}

// NewSource returns a Source over a copy of rows.
func NewSource[R any](name string, rows []R, fields []Field[R], opts ...SourceOption) *Source[R] {
	s := &Source[R]{
		name:   name,
		rows:   slices.Clone(rows),
		fields: make(map[string]Field[R], len(fields)),
		opts:   sourceOptions{logger: zerolog.Nop()},
	}
	for _, f := range fields {
		s.fields[f.Key] = f
		if f.Searchable {
			s.search = append(s.search, f)
		}
	}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

// Name returns the source name.
func (s *Source[R]) Name() string { return s.name }

// Len returns the unfiltered row count.
func (s *Source[R]) Len() int { return len(s.rows) }

// SortKeys returns the accepted sort keys in lexical order.
func (s *Source[R]) SortKeys() []string {
	keys := make([]string, 0, len(s.fields))
	for k := range s.fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Fetch filters, sorts and pages the rows. A page past the end of the
// filtered set is capped to the last page; the descriptor reports the page
// actually served.
func (s *Source[R]) Fetch(ctx context.Context, q Query) (Page[R], error) {
	if err := q.Validate(); err != nil {
		return Page[R]{}, err
	}
	if s.opts.latency > 0 {
		timer := time.NewTimer(s.opts.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Page[R]{}, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return Page[R]{}, err
	}
	if s.opts.failure != nil {
		if err := s.opts.failure(q); err != nil {
			return Page[R]{}, fmt.Errorf("fetch %s: %w", s.name, err)
		}
	}

	rows := s.filter(q.Search)
	if q.SortKey != "" {
		field, ok := s.fields[q.SortKey]
		if !ok {
			return Page[R]{}, fmt.Errorf("%w: %q", ErrUnknownSortKey, q.SortKey)
		}
		dir := grid.SortAsc
		if q.SortDesc {
			dir = grid.SortDesc
		}
		rows = grid.SortRows(rows, grid.Column[R]{ID: field.Key, Value: field.Value}, dir)
	}

	items, served := pager.Slice(q.Params(), rows)
	desc, err := pager.NewDescriptor(len(rows), q.PageSize, served)
	if err != nil {
		return Page[R]{}, fmt.Errorf("fetch %s: %w", s.name, err)
	}

	s.opts.logger.Debug().
		Str("source", s.name).
		Str("search", q.Search).
		Str("sort", q.SortKey).
		Int("page", served).
		Int("matched", len(rows)).
		Msg("query served")

	return Page[R]{Rows: slices.Clone(items), Pagination: desc}, nil
}

func (s *Source[R]) filter(search string) []R {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" || len(s.search) == 0 {
		return slices.Clone(s.rows)
	}
	out := make([]R, 0, len(s.rows))
	for _, r := range s.rows {
		for _, f := range s.search {
			if strings.Contains(strings.ToLower(grid.FormatValue(f.Value(r))), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// TransactionFields are the sort and search keys of a Transaction.
func TransactionFields() []Field[Transaction] {
	return []Field[Transaction]{
		{Key: "id", Value: func(t Transaction) any { return t.ID }},
		{Key: "reference", Value: func(t Transaction) any { return t.Reference }, Searchable: true},
		{Key: "merchant", Value: func(t Transaction) any { return t.Merchant }, Searchable: true},
		{Key: "amount", Value: func(t Transaction) any { return t.Amount }},
		{Key: "currency", Value: func(t Transaction) any { return t.Currency }, Searchable: true},
		{Key: "status", Value: func(t Transaction) any { return t.Status }, Searchable: true},
		{Key: "channel", Value: func(t Transaction) any { return t.Channel }, Searchable: true},
		{Key: "created_at", Value: func(t Transaction) any { return t.CreatedAt }},
	}
}

// TerminalFields are the sort and search keys of a Terminal.
func TerminalFields() []Field[Terminal] {
	return []Field[Terminal]{
		{Key: "id", Value: func(t Terminal) any { return t.ID }},
		{Key: "serial", Value: func(t Terminal) any { return t.Serial }, Searchable: true},
		{Key: "merchant", Value: func(t Terminal) any { return t.Merchant }, Searchable: true},
		{Key: "location", Value: func(t Terminal) any { return t.Location }, Searchable: true},
		{Key: "status", Value: func(t Terminal) any { return t.Status }, Searchable: true},
		{Key: "last_seen", Value: func(t Terminal) any { return t.LastSeen }},
	}
}

// SettlementFields are the sort and search keys of a Settlement.
func SettlementFields() []Field[Settlement] {
	return []Field[Settlement]{
		{Key: "id", Value: func(s Settlement) any { return s.ID }},
		{Key: "batch", Value: func(s Settlement) any { return s.Batch }, Searchable: true},
		{Key: "merchant", Value: func(s Settlement) any { return s.Merchant }, Searchable: true},
		{Key: "bank", Value: func(s Settlement) any { return s.Bank }, Searchable: true},
		{Key: "gross", Value: func(s Settlement) any { return s.Gross }},
		{Key: "net", Value: func(s Settlement) any { return s.Net() }},
		{Key: "status", Value: func(s Settlement) any { return s.Status }, Searchable: true},
		{Key: "settled_at", Value: func(s Settlement) any { return s.SettledAt }},
	}
}
