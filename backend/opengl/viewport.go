package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vscroll"
)

// ScrollListener receives viewport notifications. *vscroll.Engine satisfies it.
type ScrollListener interface {
	HandleScroll()
	HandleResize()
}

// DefaultLineStep is the distance of one wheel notch or arrow key press.
const DefaultLineStep = 40

// WindowViewport implements vscroll.Viewport over a GLFW window. The whole
// framebuffer is the scroll container; the wheel and navigation keys move
// the offset and notify the listener like a native scroll event.
type WindowViewport struct {
	window   *glfw.Window
	listener ScrollListener

	offset  float64
	content float64 // Total content extent, 0 until known

	// LineStep is the wheel and arrow-key distance (DefaultLineStep when 0).
	LineStep float64
	// OnKey, when set, sees every key press before navigation handling.
	// Returning true consumes the key.
	OnKey func(key glfw.Key, mods glfw.ModifierKey) bool
}

var _ vscroll.Viewport = (*WindowViewport)(nil)

// NewWindowViewport installs scroll, key and resize callbacks on window.
// Call Bind once the engine exists.
func NewWindowViewport(window *glfw.Window) *WindowViewport {
	v := &WindowViewport{window: window}
	window.SetScrollCallback(v.scrollCallback)
	window.SetKeyCallback(v.keyCallback)
	window.SetFramebufferSizeCallback(v.resizeCallback)
	return v
}

// Bind sets the listener notified of scroll and resize events.
func (v *WindowViewport) Bind(l ScrollListener) {
	v.listener = l
}

// SetContentExtent sets the scrollable content height used for clamping.
// Wire it to the engine's TotalExtentChanged handler.
func (v *WindowViewport) SetContentExtent(total float64) {
	v.content = total
	if clamped := v.clamp(v.offset); clamped != v.offset {
		v.ScrollTo(clamped)
	}
}

// Metrics samples the framebuffer size and current offset.
func (v *WindowViewport) Metrics() vscroll.Metrics {
	w, h := v.window.GetFramebufferSize()
	return vscroll.Metrics{
		Offset:         v.offset,
		ClientExtent:   float64(h),
		ScrollExtent:   v.content,
		ContainerWidth: float64(w),
	}
}

// Offset returns the current scroll position.
func (v *WindowViewport) Offset() float64 {
	return v.offset
}

// ScrollTo moves the viewport and emits a scroll event when the offset
// changes.
func (v *WindowViewport) ScrollTo(offset float64) {
	offset = v.clamp(offset)
	if offset == v.offset {
		return
	}
	v.offset = offset
	if v.listener != nil {
		v.listener.HandleScroll()
	}
}

// ScrollBy moves the viewport relative to the current offset.
func (v *WindowViewport) ScrollBy(delta float64) {
	v.ScrollTo(v.offset + delta)
}

func (v *WindowViewport) clamp(offset float64) float64 {
	_, h := v.window.GetFramebufferSize()
	return clampOffset(offset, v.content, float64(h))
}

// clampOffset limits offset to [0, content-client]. An unknown content
// extent only clamps at zero.
func clampOffset(offset, content, client float64) float64 {
	if content > 0 {
		offset = min(offset, vscroll.MaxScroll(content, client))
	}
	return max(offset, 0)
}

func (v *WindowViewport) step() float64 {
	if v.LineStep > 0 {
		return v.LineStep
	}
	return DefaultLineStep
}

func (v *WindowViewport) scrollCallback(_ *glfw.Window, _, yoff float64) {
	// Wheel up is positive yoff and moves towards the top.
	v.ScrollBy(-yoff * v.step())
}

func (v *WindowViewport) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	if v.OnKey != nil && v.OnKey(key, mods) {
		return
	}
	_, h := v.window.GetFramebufferSize()
	if target, ok := navigate(key, v.offset, v.step(), float64(h), v.content); ok {
		v.ScrollTo(target)
	}
}

func (v *WindowViewport) resizeCallback(_ *glfw.Window, _, _ int) {
	if v.listener != nil {
		v.listener.HandleResize()
	}
}

// navigate maps a navigation key to a target offset.
func navigate(key glfw.Key, offset, line, page, content float64) (float64, bool) {
	switch key {
	case glfw.KeyUp:
		return offset - line, true
	case glfw.KeyDown:
		return offset + line, true
	case glfw.KeyPageUp:
		return offset - page, true
	case glfw.KeyPageDown, glfw.KeySpace:
		return offset + page, true
	case glfw.KeyHome:
		return 0, true
	case glfw.KeyEnd:
		return content, true
	default:
		return offset, false
	}
}
