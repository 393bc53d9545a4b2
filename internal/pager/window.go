package pager

import "strconv"

// DefaultMaxVisiblePages is the window width used when the caller passes a
// non-positive maxVisiblePages.
const DefaultMaxVisiblePages = 7

// halfDivisor splits the window around the current page.
const halfDivisor = 2

// TokenKind distinguishes page numbers from ellipsis markers.
type TokenKind int

const (
	// TokenPage is a clickable page number.
	TokenPage TokenKind = iota
	// TokenEllipsis marks a gap between the anchors and the window.
	TokenEllipsis
)

// Token is one element of the page control strip.
type Token struct {
	Kind TokenKind
	// Page is the 1-based page number. Zero for ellipsis tokens.
	Page int
}

// PageToken returns a page-number token.
func PageToken(page int) Token {
	return Token{Kind: TokenPage, Page: page}
}

// EllipsisToken returns an ellipsis marker.
func EllipsisToken() Token {
	return Token{Kind: TokenEllipsis}
}

// IsEllipsis reports whether the token is a gap marker.
func (t Token) IsEllipsis() bool {
	return t.Kind == TokenEllipsis
}

func (t Token) String() string {
	if t.IsEllipsis() {
		return "…"
	}
	return strconv.Itoa(t.Page)
}

// Window returns the ordered page tokens for the given 1-based currentPage.
//
// The contiguous window holds exactly min(totalPages, maxVisiblePages) pages
// and is centred on currentPage where the bounds allow it. Page 1 and
// totalPages are added as anchors when they fall outside the window, each
// separated from it by an ellipsis when pages are skipped. Nothing is
// returned when totalPages <= 1.
//
// A currentPage outside [1, totalPages] is pulled into range for layout
// purposes only; Window never reports or dispatches the adjusted value.
func Window(currentPage, totalPages, maxVisiblePages int) []Token {
	if totalPages <= 1 {
		return nil
	}
	if maxVisiblePages <= 0 {
		maxVisiblePages = DefaultMaxVisiblePages
	}

	start, end := windowBounds(currentPage, totalPages, maxVisiblePages)

	tokens := make([]Token, 0, end-start+1+4) //nolint:mnd // Two anchors and two ellipses at most.
	if start > 1 {
		tokens = append(tokens, PageToken(1))
		if start > 2 { //nolint:mnd // Page 2 is adjacent to the first anchor.
			tokens = append(tokens, EllipsisToken())
		}
	}
	for page := start; page <= end; page++ {
		tokens = append(tokens, PageToken(page))
	}
	if end < totalPages {
		if end < totalPages-1 {
			tokens = append(tokens, EllipsisToken())
		}
		tokens = append(tokens, PageToken(totalPages))
	}
	return tokens
}

// windowBounds returns the first and last page of the contiguous window.
//
//nolint:nonamedreturns // Named returns document which bound is which.
func windowBounds(currentPage, totalPages, maxVisiblePages int) (start, end int) {
	currentPage = max(1, min(currentPage, totalPages))
	half := maxVisiblePages / halfDivisor

	start = max(1, currentPage-half)
	end = min(totalPages, start+maxVisiblePages-1)
	// Slide back when the upper bound cut the window short.
	start = max(1, end-maxVisiblePages+1)
	return start, end
}

// PageNumbers returns only the page numbers of tokens, skipping ellipses.
func PageNumbers(tokens []Token) []int {
	pages := make([]int, 0, len(tokens))
	for _, t := range tokens {
		if !t.IsEllipsis() {
			pages = append(pages, t.Page)
		}
	}
	return pages
}
