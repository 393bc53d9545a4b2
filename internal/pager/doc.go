// Package pager implements the pagination engine shared by every paydesk table.
//
// The package contains:
//   - Window: the page-window algorithm that turns (current, total, maxVisible)
//     into the ordered page tokens to render, including ellipsis markers
//   - Descriptor: the pagination facts pushed by a data owner, with the
//     has-next/has-previous flags always derived from the other fields
//   - Pager: dispatches page and page-size changes and owns the go-to-page
//     input buffer
//   - Params: offset/limit and page/page-size parameters used by data sources
//     and CLI flags
//
// Page numbers are 1-based in Window tokens and user-facing text, and 0-based
// in Descriptor.CurrentPage and the Pager callbacks.
package pager
