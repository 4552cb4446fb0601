package vscroll

import (
	"math"
	"time"
)

// Default configuration values.
const (
	DefaultVisiblePages     = 3
	DefaultAdjustFactor     = 0.5
	DefaultVisibleDebounce  = 300 * time.Millisecond
	DefaultObserveInterval  = 300 * time.Millisecond
	DefaultResizeDebounce   = 300 * time.Millisecond
	DefaultFrameInterval    = 16 * time.Millisecond
	DefaultMaxSettleSamples = 64
)

// Config holds the engine settings. Zero durations mean "no delay" except for
// ObserveInterval and FrameInterval, which fall back to their defaults.
//
// Config can be built with options, loaded from YAML (see LoadConfig), or both:
//
//	cfg, err := vscroll.LoadConfig("list.yaml")
//	eng, err := vscroll.New(vp, layout, handlers, vscroll.WithConfig(cfg), vscroll.WithScheduler(s))
type Config struct {
	// VisiblePages is the number of client extents the visible tier covers.
	VisiblePages float64 `yaml:"visible_pages"`
	// PlaceholderPages is the placeholder tier size; never smaller than VisiblePages.
	PlaceholderPages float64 `yaml:"placeholder_pages"`
	// AdjustFactor in [0,1] skews the extra pages toward the scroll direction.
	AdjustFactor float64 `yaml:"adjust_factor"`

	Gap         Gap  `yaml:"gap"`
	MultiColumn bool `yaml:"multi_column"`

	// ObserveChanges enables the dynamic height reconciler for visible items.
	ObserveChanges   bool          `yaml:"observe_changes"`
	ObserveInterval  time.Duration `yaml:"observe_interval"`
	MaxSettleSamples int           `yaml:"max_settle_samples"`
	// CorrectionCoalesce delays the layout pass that follows height corrections.
	CorrectionCoalesce time.Duration `yaml:"correction_coalesce"`
	// RefreshAfterCorrection runs a full window pass after each layout pass
	// caused by corrections.
	RefreshAfterCorrection bool `yaml:"refresh_after_correction"`

	VisibleDebounce  time.Duration `yaml:"visible_debounce"`
	PlaceholderAudit time.Duration `yaml:"placeholder_audit"`
	ResizeDebounce   time.Duration `yaml:"resize_debounce"`
	FrameInterval    time.Duration `yaml:"frame_interval"`

	// Scheduler runs every deferred callback. Nil means a ManualScheduler
	// driven through Engine.Advance.
	Scheduler Scheduler `yaml:"-"`
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		VisiblePages:     DefaultVisiblePages,
		AdjustFactor:     DefaultAdjustFactor,
		ObserveInterval:  DefaultObserveInterval,
		MaxSettleSamples: DefaultMaxSettleSamples,
		VisibleDebounce:  DefaultVisibleDebounce,
		ResizeDebounce:   DefaultResizeDebounce,
		FrameInterval:    DefaultFrameInterval,
	}
}

// Normalize validates the settings and clamps out-of-range values.
// Non-finite numbers, negative durations and multi-column observation are
// errors; everything else is clamped.
func (c *Config) Normalize() error {
	if !finite(c.VisiblePages) {
		return configErr("VisiblePages", ErrInvalidPages, "must be a finite number")
	}
	if !finite(c.PlaceholderPages) {
		return configErr("PlaceholderPages", ErrInvalidPages, "must be a finite number")
	}
	if !finite(c.AdjustFactor) {
		return configErr("AdjustFactor", ErrInvalidAdjustFactor, "must be a finite number")
	}
	if !finite(c.Gap.Horizontal) || !finite(c.Gap.Vertical) || c.Gap.Horizontal < 0 || c.Gap.Vertical < 0 {
		return configErr("Gap", ErrInvalidGap, "gaps must be finite and non-negative")
	}

	durations := []struct {
		field string
		d     time.Duration
	}{
		{"ObserveInterval", c.ObserveInterval},
		{"CorrectionCoalesce", c.CorrectionCoalesce},
		{"VisibleDebounce", c.VisibleDebounce},
		{"PlaceholderAudit", c.PlaceholderAudit},
		{"ResizeDebounce", c.ResizeDebounce},
		{"FrameInterval", c.FrameInterval},
	}
	for _, d := range durations {
		if d.d < 0 {
			return configErr(d.field, ErrInvalidDuration, d.d.String())
		}
	}

	if c.MultiColumn && c.ObserveChanges {
		return configErr("ObserveChanges", ErrConflictingModes, "disable one of MultiColumn or ObserveChanges")
	}

	c.VisiblePages = max(c.VisiblePages, 1)
	c.PlaceholderPages = max(c.PlaceholderPages, c.VisiblePages)
	c.AdjustFactor = clampf(c.AdjustFactor, 0, 1)

	if c.ObserveInterval == 0 {
		c.ObserveInterval = DefaultObserveInterval
	}
	if c.FrameInterval == 0 {
		c.FrameInterval = DefaultFrameInterval
	}
	if c.MaxSettleSamples <= 0 {
		c.MaxSettleSamples = DefaultMaxSettleSamples
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Option configures an Engine.
type Option func(*Config)

// applyOptions applies opts on top of base.
func applyOptions(base Config, opts []Option) Config {
	for _, opt := range opts {
		if opt != nil {
			opt(&base)
		}
	}
	return base
}

// WithConfig replaces every setting with cfg. A nil cfg.Scheduler keeps the
// scheduler already configured.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		s := c.Scheduler
		*c = cfg
		if c.Scheduler == nil {
			c.Scheduler = s
		}
	}
}

// WithVisiblePages sets the visible tier size in client extents.
func WithVisiblePages(p float64) Option {
	return func(c *Config) { c.VisiblePages = p }
}

// WithPlaceholderPages sets the placeholder tier size in client extents.
func WithPlaceholderPages(p float64) Option {
	return func(c *Config) { c.PlaceholderPages = p }
}

// WithAdjustFactor sets how far the extra pages lean toward the scroll direction.
// 0 splits them evenly, 1 puts them all ahead.
func WithAdjustFactor(f float64) Option {
	return func(c *Config) { c.AdjustFactor = f }
}

// WithGap sets the item spacing.
func WithGap(g Gap) Option {
	return func(c *Config) { c.Gap = g }
}

// WithMultiColumn packs items into rows. Requires Layout.Width.
func WithMultiColumn(on bool) Option {
	return func(c *Config) { c.MultiColumn = on }
}

// WithObserveChanges enables polling visible items for late height changes.
// Requires Layout.Measure.
func WithObserveChanges(on bool) Option {
	return func(c *Config) { c.ObserveChanges = on }
}

// WithObserveInterval sets the polling interval of the height reconciler.
func WithObserveInterval(d time.Duration) Option {
	return func(c *Config) { c.ObserveInterval = d }
}

// WithMaxSettleSamples bounds the fast polling phase of one observation.
func WithMaxSettleSamples(n int) Option {
	return func(c *Config) { c.MaxSettleSamples = n }
}

// WithCorrectionCoalesce delays the layout pass that follows height corrections.
func WithCorrectionCoalesce(d time.Duration) Option {
	return func(c *Config) { c.CorrectionCoalesce = d }
}

// WithRefreshAfterCorrection re-runs the window pass after corrections.
func WithRefreshAfterCorrection(on bool) Option {
	return func(c *Config) { c.RefreshAfterCorrection = on }
}

// WithVisibleDebounce sets the quiet period before the visible tier updates.
func WithVisibleDebounce(d time.Duration) Option {
	return func(c *Config) { c.VisibleDebounce = d }
}

// WithPlaceholderAudit throttles placeholder updates during a scroll burst.
// Zero updates on every scroll event.
func WithPlaceholderAudit(d time.Duration) Option {
	return func(c *Config) { c.PlaceholderAudit = d }
}

// WithResizeDebounce sets the quiet period after a resize.
func WithResizeDebounce(d time.Duration) Option {
	return func(c *Config) { c.ResizeDebounce = d }
}

// WithFrameInterval sets the scroll animation frame period.
func WithFrameInterval(d time.Duration) Option {
	return func(c *Config) { c.FrameInterval = d }
}

// WithScheduler sets the scheduler used for every deferred callback.
func WithScheduler(s Scheduler) Option {
	return func(c *Config) { c.Scheduler = s }
}
