package grid

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, comparable with errors.Is.
var (
	// ErrInvalidConfig is wrapped by every *ConfigError.
	ErrInvalidConfig = constError("invalid table configuration")

	// ErrUnknownColumn indicates a column ID that is not part of the table.
	ErrUnknownColumn = constError("unknown column")

	// ErrSortingDisabled indicates a sort gesture on a table without sorting.
	ErrSortingDisabled = constError("sorting is disabled for this table")

	// ErrNotSortable indicates a sort gesture on a column with sorting disabled.
	ErrNotSortable = constError("column is not sortable")

	// ErrUnknownAction indicates an action label that is not configured.
	ErrUnknownAction = constError("unknown action")
)

// ConfigError reports a malformed table definition. It is fatal to the
// table being constructed.
type ConfigError struct {
	// Field names the offending definition, e.g. "columns[2].ID".
	Field string
	// Reason describes what is wrong with it.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
