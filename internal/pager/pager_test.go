package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures pager callbacks.
type recorder struct {
	pages []int
	sizes []int
}

func newTestPager(t *testing.T, total, size, current int, opts ...Option) (*Pager, *recorder) {
	t.Helper()
	d, err := NewDescriptor(total, size, current)
	require.NoError(t, err)

	rec := &recorder{}
	opts = append(opts,
		OnPageChange(func(page int) { rec.pages = append(rec.pages, page) }),
		OnItemsPerPageChange(func(size int) { rec.sizes = append(rec.sizes, size) }),
	)
	return New(d, opts...), rec
}

func TestPager_Navigation(t *testing.T) {
	t.Run("middle page allows every direction", func(t *testing.T) {
		p, rec := newTestPager(t, 100, 10, 4)
		assert.Equal(t, Controls{First: true, Previous: true, Next: true, Last: true}, p.Controls())

		assert.True(t, p.Next())
		assert.True(t, p.Previous())
		assert.True(t, p.First())
		assert.True(t, p.Last())
		assert.Equal(t, []int{5, 3, 0, 9}, rec.pages)
	})

	t.Run("first page disables backwards controls", func(t *testing.T) {
		p, rec := newTestPager(t, 100, 10, 0)
		assert.Equal(t, Controls{Next: true, Last: true}, p.Controls())
		assert.False(t, p.Previous())
		assert.False(t, p.First())
		assert.Empty(t, rec.pages)
	})

	t.Run("last page disables forwards controls", func(t *testing.T) {
		p, rec := newTestPager(t, 100, 10, 9)
		assert.Equal(t, Controls{First: true, Previous: true}, p.Controls())
		assert.False(t, p.Next())
		assert.False(t, p.Last())
		assert.Empty(t, rec.pages)
	})

	t.Run("out of range targets are rejected, not clamped", func(t *testing.T) {
		p, rec := newTestPager(t, 100, 10, 4)
		assert.False(t, p.GoTo(-1))
		assert.False(t, p.GoTo(10))
		assert.False(t, p.GoTo(4), "current page is not a change")
		assert.Empty(t, rec.pages)
		assert.True(t, p.GoTo(7))
		assert.Equal(t, []int{7}, rec.pages)
	})

	t.Run("pager does not move itself", func(t *testing.T) {
		p, _ := newTestPager(t, 100, 10, 4)
		p.Next()
		assert.Equal(t, 4, p.Descriptor().CurrentPage)

		next, err := NewDescriptor(100, 10, 5)
		require.NoError(t, err)
		p.SetDescriptor(next)
		assert.Equal(t, 5, p.Descriptor().CurrentPage)
	})
}

func TestPager_Tokens(t *testing.T) {
	p, _ := newTestPager(t, 100, 10, 4, WithMaxVisiblePages(5))
	assert.Equal(t, "1 … 3 4 5 6 7 … 10", tokensString(p.Tokens()))
}

func TestPager_Jump(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOK    bool
		wantPage  int
		wantFired bool
	}{
		{name: "valid page", input: "7", wantOK: true, wantPage: 6, wantFired: true},
		{name: "whitespace is trimmed", input: " 2 ", wantOK: true, wantPage: 1, wantFired: true},
		{name: "zero", input: "0"},
		{name: "past last page", input: "11"},
		{name: "not a number", input: "abc"},
		{name: "empty", input: ""},
		{name: "current page", input: "5", wantOK: true, wantPage: 4},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p, rec := newTestPager(t, 100, 10, 4)
			p.SetJumpInput(tt.input)

			page, ok := p.JumpTarget()
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantPage, page)
			}

			fired := p.SubmitJump()
			assert.Equal(t, tt.wantFired, fired)
			if tt.wantFired {
				assert.Equal(t, []int{tt.wantPage}, rec.pages)
				assert.Empty(t, p.JumpInput(), "buffer is cleared after a successful jump")
			} else {
				assert.Empty(t, rec.pages)
			}
			if !tt.wantOK {
				assert.Equal(t, tt.input, p.JumpInput(), "invalid input stays for correction")
			}
		})
	}
}

func TestPager_PageSize(t *testing.T) {
	t.Run("only offered sizes are accepted", func(t *testing.T) {
		p, rec := newTestPager(t, 100, 10, 3, WithPageSizeOptions(10, 25, 50))
		assert.False(t, p.SetPageSize(30))
		assert.False(t, p.SetPageSize(10), "unchanged size")
		assert.False(t, p.SetPageSize(0))
		assert.True(t, p.SetPageSize(50))
		assert.Equal(t, []int{50}, rec.sizes)
		assert.Empty(t, rec.pages, "the pager leaves the page reset to the caller")
	})

	t.Run("any positive size without options", func(t *testing.T) {
		p, rec := newTestPager(t, 100, 10, 0)
		assert.True(t, p.SetPageSize(13))
		assert.False(t, p.SetPageSize(-2))
		assert.Equal(t, []int{13}, rec.sizes)
	})

	t.Run("stepping through options", func(t *testing.T) {
		p, rec := newTestPager(t, 100, 25, 0, WithPageSizeOptions(10, 25, 50))
		assert.True(t, p.StepPageSize(1))
		assert.True(t, p.StepPageSize(-1))
		assert.Equal(t, []int{50, 10}, rec.sizes)
	})

	t.Run("stepping stops at the ends", func(t *testing.T) {
		p, rec := newTestPager(t, 100, 50, 0, WithPageSizeOptions(10, 25, 50))
		assert.False(t, p.StepPageSize(1))
		assert.Empty(t, rec.sizes)
	})

	t.Run("stepping from a size that is not an option", func(t *testing.T) {
		p, rec := newTestPager(t, 100, 15, 0, WithPageSizeOptions(10, 25, 50))
		assert.True(t, p.StepPageSize(1))
		assert.True(t, p.StepPageSize(-1))
		assert.Equal(t, []int{25, 10}, rec.sizes)
	})

	t.Run("options are copied", func(t *testing.T) {
		p, _ := newTestPager(t, 100, 10, 0, WithPageSizeOptions(10, 25))
		opts := p.PageSizeOptions()
		opts[0] = 99
		assert.Equal(t, []int{10, 25}, p.PageSizeOptions())
	})
}
