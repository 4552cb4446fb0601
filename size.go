package vscroll

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Length is a size in pixels or a percentage of the container width.
type Length struct {
	Value   float64
	Percent bool
}

// Px returns an absolute length.
func Px(v float64) Length { return Length{Value: v} }

// Percent returns a length relative to the container width (0-100).
func Percent(p float64) Length { return Length{Value: p, Percent: true} }

// ParseLength parses "120", "120px" or "50%".
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	percent := false
	switch {
	case strings.HasSuffix(s, "%"):
		percent = true
		s = strings.TrimSuffix(s, "%")
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Length{}, fmt.Errorf("parse length %q: %w", s, err)
	}
	return Length{Value: v, Percent: percent}, nil
}

// Resolve converts the length to pixels against the given container width.
func (l Length) Resolve(container float64) float64 {
	if l.Percent {
		return l.Value / 100 * container
	}
	return l.Value
}

// String formats the length the way ParseLength accepts it.
func (l Length) String() string {
	v := strconv.FormatFloat(l.Value, 'f', -1, 64)
	if l.Percent {
		return v + "%"
	}
	return v
}

// UnmarshalYAML accepts a number or a string such as "50%".
func (l *Length) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: length must be a scalar", node.Line)
	}
	parsed, err := ParseLength(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*l = parsed
	return nil
}

// SizeRule resolves an item's declared size: a constant, or a per-item
// callback. The zero value resolves nothing and makes Rebuild fail.
//
// Usage:
//
//	vscroll.Fixed[*Row](48)
//	vscroll.SizeFunc(func(r *Row, i int) float64 { return r.Lines * 16 })
//	vscroll.FixedLength[*Card](vscroll.Percent(25)) // widths only
type SizeRule[T any] struct {
	constant Length
	set      bool
	fn       func(item T, index int) Length
}

// Fixed returns a rule giving every item the same size in pixels.
func Fixed[T any](v float64) SizeRule[T] {
	return SizeRule[T]{constant: Px(v), set: true}
}

// FixedLength returns a rule giving every item the same length.
func FixedLength[T any](l Length) SizeRule[T] {
	return SizeRule[T]{constant: l, set: true}
}

// SizeFunc returns a rule that asks fn for each item's size in pixels.
// The callback is evaluated on every rebuild; call Engine.Refresh(true, ...)
// when its answers change.
func SizeFunc[T any](fn func(item T, index int) float64) SizeRule[T] {
	if fn == nil {
		return SizeRule[T]{}
	}
	return SizeRule[T]{fn: func(item T, index int) Length { return Px(fn(item, index)) }}
}

// LengthFunc is like SizeFunc but may return percentages.
func LengthFunc[T any](fn func(item T, index int) Length) SizeRule[T] {
	return SizeRule[T]{fn: fn}
}

// IsSet reports whether the rule can resolve a size.
func (r SizeRule[T]) IsSet() bool {
	return r.set || r.fn != nil
}

// resolve returns the size for one item. Percentages are only meaningful for
// widths; allowPercent=false rejects them.
func (r SizeRule[T]) resolve(field string, item T, index int, container float64, allowPercent bool) (float64, error) {
	var l Length
	switch {
	case r.fn != nil:
		l = r.fn(item, index)
	case r.set:
		l = r.constant
	default:
		return 0, configErr(field, ErrNoSizeRule, "neither a constant nor a per-item rule is configured")
	}
	if l.Percent && !allowPercent {
		return 0, configErr(fmt.Sprintf("%s[%d]", field, index), ErrNoSizeRule, "percentage sizes are only valid for widths")
	}
	v := l.Resolve(container)
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, configErr(fmt.Sprintf("%s[%d]", field, index), ErrNoSizeRule, fmt.Sprintf("resolved size %v is not a finite non-negative number", v))
	}
	return v, nil
}

// Gap is the spacing between items. Horizontal only applies in multi-column mode.
type Gap struct {
	Horizontal float64 `yaml:"horizontal"`
	Vertical   float64 `yaml:"vertical"`
}

// UniformGap uses the same spacing in both directions.
func UniformGap(v float64) Gap {
	return Gap{Horizontal: v, Vertical: v}
}

// UnmarshalYAML accepts a scalar (both directions) or a
// {horizontal, vertical} mapping.
func (g *Gap) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("line %d: gap: %w", node.Line, err)
		}
		*g = UniformGap(v)
		return nil
	case yaml.MappingNode:
		type plain Gap
		var p plain
		if err := node.Decode(&p); err != nil {
			return fmt.Errorf("line %d: gap: %w", node.Line, err)
		}
		*g = Gap(p)
		return nil
	default:
		return fmt.Errorf("line %d: gap must be a number or a mapping", node.Line)
	}
}
