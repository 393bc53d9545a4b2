package portal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/paydesk/paydesk/internal/dataset"
	"github.com/paydesk/paydesk/internal/pagecache"
)

// ErrSimulatedFailure is returned by demo sources when the search contains
// the configured failure term.
var ErrSimulatedFailure = errors.New("simulated upstream failure")

// LoadOptions sizes and tunes the demo sources.
type LoadOptions struct {
	Seed         int64
	Epoch        time.Time
	Transactions int
	Terminals    int
	Settlements  int
	// Latency delays every fetch.
	Latency time.Duration
	// FailTerm, when non-empty, makes any search containing it fail.
	FailTerm string
	// CacheTTL, when positive, makes the fetcher accessors cache pages.
	CacheTTL time.Duration
	Logger   zerolog.Logger
}

// Catalog holds one demo source per entity.
type Catalog struct {
	Transactions *dataset.Source[dataset.Transaction]
	Terminals    *dataset.Source[dataset.Terminal]
	Settlements  *dataset.Source[dataset.Settlement]

	cacheTTL time.Duration
	logger   zerolog.Logger
}

// Load generates all sources concurrently.
func Load(ctx context.Context, opts LoadOptions) (*Catalog, error) {
	srcOpts := []dataset.SourceOption{dataset.WithSourceLogger(opts.Logger)}
	if opts.Latency > 0 {
		srcOpts = append(srcOpts, dataset.WithLatency(opts.Latency))
	}
	if term := strings.ToLower(strings.TrimSpace(opts.FailTerm)); term != "" {
		srcOpts = append(srcOpts, dataset.WithFailure(func(q dataset.Query) error {
			if strings.Contains(strings.ToLower(q.Search), term) {
				return ErrSimulatedFailure
			}
			return nil
		}))
	}

	cat := Catalog{cacheTTL: opts.CacheTTL, logger: opts.Logger}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		rows := dataset.NewGenerator(opts.Seed, opts.Epoch).Transactions(opts.Transactions)
		cat.Transactions = dataset.NewSource(string(EntityTransactions), rows, dataset.TransactionFields(), srcOpts...)
		return nil
	})
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		rows := dataset.NewGenerator(opts.Seed+1, opts.Epoch).Terminals(opts.Terminals)
		cat.Terminals = dataset.NewSource(string(EntityTerminals), rows, dataset.TerminalFields(), srcOpts...)
		return nil
	})
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		rows := dataset.NewGenerator(opts.Seed+2, opts.Epoch).Settlements(opts.Settlements)
		cat.Settlements = dataset.NewSource(string(EntitySettlements), rows, dataset.SettlementFields(), srcOpts...)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading portals: %w", err)
	}

	opts.Logger.Debug().
		Int("transactions", cat.Transactions.Len()).
		Int("terminals", cat.Terminals.Len()).
		Int("settlements", cat.Settlements.Len()).
		Msg("demo data generated")
	return &cat, nil
}

// TransactionFetcher returns the transaction source, behind a page cache
// when one is configured.
func (c *Catalog) TransactionFetcher() dataset.Fetcher[dataset.Transaction] {
	return cached(c, c.Transactions)
}

// TerminalFetcher returns the terminal source, behind a page cache when one
// is configured.
func (c *Catalog) TerminalFetcher() dataset.Fetcher[dataset.Terminal] {
	return cached(c, c.Terminals)
}

// SettlementFetcher returns the settlement source, behind a page cache when
// one is configured.
func (c *Catalog) SettlementFetcher() dataset.Fetcher[dataset.Settlement] {
	return cached(c, c.Settlements)
}

func cached[R any](c *Catalog, src *dataset.Source[R]) dataset.Fetcher[R] {
	if c.cacheTTL <= 0 {
		return src
	}
	return pagecache.NewFetcher[R](src, c.cacheTTL, pagecache.WithLogger(c.logger))
}

// Summary describes one portal for listings.
type Summary struct {
	Role   Role   `json:"role"`
	Title  string `json:"title"`
	Entity Entity `json:"entity"`
	Rows   int    `json:"rows"`
}

// Summaries returns one summary per role.
func (c *Catalog) Summaries() []Summary {
	out := make([]Summary, 0, len(Roles()))
	for _, r := range Roles() {
		out = append(out, Summary{Role: r, Title: r.Title(), Entity: r.Entity(), Rows: c.Count(r.Entity())})
	}
	return out
}

// Count returns the unfiltered row count of entity.
func (c *Catalog) Count(e Entity) int {
	switch e {
	case EntityTerminals:
		return c.Terminals.Len()
	case EntitySettlements:
		return c.Settlements.Len()
	default:
		return c.Transactions.Len()
	}
}
