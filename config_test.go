package vscroll_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/go-theft-auto/vscroll"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := vscroll.ParseConfig(strings.NewReader(""))
	require.NoError(t, err)

	want := vscroll.DefaultConfig()
	require.NoError(t, want.Normalize())
	assert.Equal(t, want, cfg)
	assert.Equal(t, float64(vscroll.DefaultVisiblePages), cfg.PlaceholderPages, "placeholder pages clamp to visible pages")
}

func TestParseConfigFull(t *testing.T) {
	doc := `
visible_pages: 1
placeholder_pages: 3
adjust_factor: 0.25
gap: {horizontal: 8, vertical: 4}
observe_changes: true
observe_interval: 150ms
max_settle_samples: 10
correction_coalesce: 20ms
refresh_after_correction: true
visible_debounce: 100ms
placeholder_audit: 50ms
resize_debounce: 1s
frame_interval: 8ms
`
	cfg, err := vscroll.ParseConfig(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 1.0, cfg.VisiblePages)
	assert.Equal(t, 3.0, cfg.PlaceholderPages)
	assert.Equal(t, 0.25, cfg.AdjustFactor)
	assert.Equal(t, vscroll.Gap{Horizontal: 8, Vertical: 4}, cfg.Gap)
	assert.True(t, cfg.ObserveChanges)
	assert.Equal(t, 150*time.Millisecond, cfg.ObserveInterval)
	assert.Equal(t, 10, cfg.MaxSettleSamples)
	assert.Equal(t, 20*time.Millisecond, cfg.CorrectionCoalesce)
	assert.True(t, cfg.RefreshAfterCorrection)
	assert.Equal(t, 100*time.Millisecond, cfg.VisibleDebounce)
	assert.Equal(t, 50*time.Millisecond, cfg.PlaceholderAudit)
	assert.Equal(t, time.Second, cfg.ResizeDebounce)
	assert.Equal(t, 8*time.Millisecond, cfg.FrameInterval)
	assert.Nil(t, cfg.Scheduler)
}

func TestParseConfigScalarGap(t *testing.T) {
	cfg, err := vscroll.ParseConfig(strings.NewReader("gap: 6\n"))
	require.NoError(t, err)
	assert.Equal(t, vscroll.UniformGap(6), cfg.Gap)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"conflicting modes", "multi_column: true\nobserve_changes: true\n", vscroll.ErrConflictingModes},
		{"negative duration", "visible_debounce: -1s\n", vscroll.ErrInvalidDuration},
		{"NaN pages", "visible_pages: .nan\n", vscroll.ErrInvalidPages},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vscroll.ParseConfig(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, vscroll.ErrConfig)
		})
	}

	_, err := vscroll.ParseConfig(strings.NewReader("visible_pagez: 2\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = vscroll.ParseConfig(strings.NewReader("gap: [1, 2]\n"))
	assert.Error(t, err, "gap must be a scalar or a mapping")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.yaml")
	require.NoError(t, os.WriteFile(path, []byte("visible_pages: 2\nadjust_factor: 2\n"), 0o644))

	cfg, err := vscroll.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.VisiblePages)
	assert.Equal(t, 1.0, cfg.AdjustFactor, "adjust factor is clamped")

	_, err = vscroll.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWithConfigKeepsScheduler(t *testing.T) {
	sched := vscroll.NewManualScheduler(time.Time{})
	vp := &mockViewport{m: vscroll.Metrics{ClientExtent: 100}}

	cfg := vscroll.DefaultConfig()
	cfg.VisiblePages = 2
	eng, err := vscroll.New(vp, vscroll.Layout[int]{Height: vscroll.Fixed[int](10)}, vscroll.Handlers[int]{},
		vscroll.WithScheduler(sched), vscroll.WithConfig(cfg))
	require.NoError(t, err)
	defer eng.Close()

	assert.Same(t, sched, eng.Config().Scheduler.(*vscroll.ManualScheduler))
	assert.Equal(t, 2.0, eng.Config().VisiblePages)
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want vscroll.Length
	}{
		{"120", vscroll.Px(120)},
		{"120px", vscroll.Px(120)},
		{" 50% ", vscroll.Percent(50)},
		{"12.5", vscroll.Px(12.5)},
	}
	for _, tt := range tests {
		got, err := vscroll.ParseLength(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := vscroll.ParseLength("wide")
	assert.Error(t, err)

	assert.Equal(t, "50%", vscroll.Percent(50).String())
	assert.Equal(t, 150.0, vscroll.Percent(50).Resolve(300))
}

func TestLengthYAML(t *testing.T) {
	var doc struct {
		Width vscroll.Length `yaml:"width"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("width: 25%\n"), &doc))
	assert.Equal(t, vscroll.Percent(25), doc.Width)

	require.Error(t, yaml.Unmarshal([]byte("width: [1]\n"), &doc))
}
