// Package grid implements the data table engine used by every paydesk portal.
//
// A Table does not own row data. On every render the data owner supplies the
// rows of the current page, a pager.Descriptor for the whole dataset and the
// loading/error/empty status; the Table derives a View from them and owns
// only the state that is derived from user gestures:
//   - the row selection set and the header checkbox tri-state
//   - the single-column sort state
//   - the debounced search value
//   - which bulk actions are enabled
//   - which columns are hidden
//
// Gestures that need new data (page, page size, sort, search) are forwarded
// to the data owner through callbacks. Malformed column or action
// definitions are rejected by New with a *ConfigError.
package grid
