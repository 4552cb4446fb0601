package vscroll

import (
	"errors"
	"fmt"
)

// ErrConfig matches every configuration error returned by the engine.
var ErrConfig = errors.New("vscroll: configuration error")

// Specific configuration failures. A *ConfigError matches both ErrConfig and
// one of these through errors.Is.
var (
	ErrNoSizeRule          = errors.New("no usable size rule")
	ErrConflictingModes    = errors.New("multi-column mode cannot observe dynamic heights")
	ErrInvalidPages        = errors.New("invalid page count")
	ErrInvalidAdjustFactor = errors.New("invalid adjust factor")
	ErrInvalidDuration     = errors.New("invalid duration")
	ErrInvalidGap          = errors.New("invalid gap")
	ErrInvalidPosition     = errors.New("invalid scroll position")
	ErrNoViewport          = errors.New("no viewport")
	ErrNoMeasurer          = errors.New("height observation needs a measurer")
)

// ErrUnknownItem is returned when an operation names an item that is not in
// the list.
var ErrUnknownItem = errors.New("vscroll: item not in list")

// ErrNotMeasurable can be returned by a Measurer when the item has no rendered
// counterpart yet. Any Measurer error is treated as transient.
var ErrNotMeasurable = errors.New("vscroll: item not measurable")

// ConfigError describes a setup problem. It is fatal to the operation that
// produced it and never retried.
type ConfigError struct {
	Field  string // Offending setting, e.g. "VisiblePages" or "Height[12]"
	Reason string
	Err    error // One of the sentinel errors above
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("vscroll: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("vscroll: %s: %v (%s)", e.Field, e.Err, e.Reason)
}

// Unwrap exposes both ErrConfig and the specific sentinel.
func (e *ConfigError) Unwrap() []error {
	return []error{ErrConfig, e.Err}
}

func configErr(field string, err error, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason, Err: err}
}
