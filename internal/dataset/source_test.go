package dataset_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paydesk/paydesk/internal/dataset"
	"github.com/paydesk/paydesk/internal/pager"
)

func transactionSource(t *testing.T, n int, opts ...dataset.SourceOption) *dataset.Source[dataset.Transaction] {
	t.Helper()
	rows := dataset.NewGenerator(42, time.Time{}).Transactions(n)
	return dataset.NewSource("transactions", rows, dataset.TransactionFields(), opts...)
}

func TestSource_Paging(t *testing.T) {
	t.Parallel()

	src := transactionSource(t, 95)
	ctx := context.Background()

	tests := []struct {
		name     string
		q        dataset.Query
		wantRows int
		wantPage int
		wantNext bool
		wantPrev bool
	}{
		{name: "first page", q: dataset.Query{Page: 0, PageSize: 10}, wantRows: 10, wantPage: 0, wantNext: true},
		{name: "middle page", q: dataset.Query{Page: 4, PageSize: 10}, wantRows: 10, wantPage: 4, wantNext: true, wantPrev: true},
		{name: "last partial page", q: dataset.Query{Page: 9, PageSize: 10}, wantRows: 5, wantPage: 9, wantPrev: true},
		{name: "past the end is capped", q: dataset.Query{Page: 40, PageSize: 10}, wantRows: 5, wantPage: 9, wantPrev: true},
		{name: "single page", q: dataset.Query{PageSize: 100}, wantRows: 95},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			page, err := src.Fetch(ctx, tt.q)
			require.NoError(t, err)
			assert.Len(t, page.Rows, tt.wantRows)
			assert.Equal(t, tt.wantPage, page.Pagination.CurrentPage)
			assert.Equal(t, 95, page.Pagination.Total)
			assert.Equal(t, tt.wantNext, page.Pagination.HasNextPage)
			assert.Equal(t, tt.wantPrev, page.Pagination.HasPreviousPage)
			require.NoError(t, page.Pagination.Validate())
		})
	}
}

func TestSource_InvalidQuery(t *testing.T) {
	t.Parallel()

	src := transactionSource(t, 5)
	_, err := src.Fetch(context.Background(), dataset.Query{PageSize: 0})
	require.ErrorIs(t, err, dataset.ErrInvalidQuery)

	_, err = src.Fetch(context.Background(), dataset.Query{Page: -1, PageSize: 10})
	require.ErrorIs(t, err, dataset.ErrInvalidQuery)
	require.ErrorIs(t, err, pager.ErrInvalidParams)

	_, err = src.Fetch(context.Background(), dataset.Query{PageSize: 10, SortKey: "colour"})
	require.ErrorIs(t, err, dataset.ErrUnknownSortKey)
}

func TestSource_Search(t *testing.T) {
	t.Parallel()

	src := transactionSource(t, 200)
	page, err := src.Fetch(context.Background(), dataset.Query{Search: "  ACME ", PageSize: 500})
	require.NoError(t, err)
	require.NotEmpty(t, page.Rows)
	for _, tx := range page.Rows {
		assert.Equal(t, "Acme Coffee", tx.Merchant)
	}
	assert.Equal(t, len(page.Rows), page.Pagination.Total)

	none, err := src.Fetch(context.Background(), dataset.Query{Search: "no such merchant", PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, none.Rows)
	assert.True(t, none.Pagination.IsEmpty())
	assert.Equal(t, 0, none.Pagination.PageCount)
}

func TestSource_Sort(t *testing.T) {
	t.Parallel()

	src := transactionSource(t, 50)
	ctx := context.Background()

	asc, err := src.Fetch(ctx, dataset.Query{SortKey: "amount", PageSize: 50})
	require.NoError(t, err)
	for i := 1; i < len(asc.Rows); i++ {
		assert.True(t, asc.Rows[i-1].Amount.LessThanOrEqual(asc.Rows[i].Amount))
	}

	desc, err := src.Fetch(ctx, dataset.Query{SortKey: "reference", SortDesc: true, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, "TXN-000050", desc.Rows[0].Reference)
}

func TestSource_Failure(t *testing.T) {
	t.Parallel()

	boom := errors.New("gateway timeout")
	src := transactionSource(t, 5, dataset.WithFailure(func(q dataset.Query) error {
		if strings.Contains(q.Search, "fail") {
			return boom
		}
		return nil
	}))

	_, err := src.Fetch(context.Background(), dataset.Query{Search: "fail", PageSize: 10})
	require.ErrorIs(t, err, boom)

	_, err = src.Fetch(context.Background(), dataset.Query{PageSize: 10})
	require.NoError(t, err)
}

func TestSource_LatencyHonoursCancel(t *testing.T) {
	t.Parallel()

	src := transactionSource(t, 5, dataset.WithLatency(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := src.Fetch(ctx, dataset.Query{PageSize: 10})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSource_SortKeys(t *testing.T) {
	t.Parallel()

	src := dataset.NewSource("terminals", nil, dataset.TerminalFields())
	assert.Equal(t, []string{"id", "last_seen", "location", "merchant", "serial", "status"}, src.SortKeys())
	assert.Equal(t, 0, src.Len())
	assert.Equal(t, "terminals", src.Name())
}
