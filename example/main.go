// Example scrolls a list of one hundred thousand variable-height cards in a
// GLFW window. Visible items are drawn as outlined cards, the placeholder
// tier around them as flat blocks.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Keys: wheel, arrows, PageUp/PageDown, Home/End scroll; J animates to a
// random card; V toggles debug logging.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vscroll"
	"github.com/go-theft-auto/vscroll/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "vscroll example"
	cardCount    = 100_000
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// card is a list item; its height is derived from its number.
type card int

func (c card) height() float64 {
	return 40 + float64(int(c)%5)*16
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	fw, fh := window.GetFramebufferSize()
	renderer, err := opengl.NewRenderer(fw, fh)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	sched := vscroll.NewLoopScheduler(64)
	defer sched.Close()

	gap := vscroll.Gap{Vertical: 8}
	vp := opengl.NewWindowViewport(window)
	eng, err := vscroll.New(vp, vscroll.Layout[card]{
		Height: vscroll.SizeFunc(func(c card, _ int) float64 { return c.height() }),
	}, vscroll.Handlers[card]{
		TotalExtentChanged: vp.SetContentExtent,
	},
		vscroll.WithScheduler(sched),
		vscroll.WithGap(gap),
		vscroll.WithVisiblePages(1),
		vscroll.WithPlaceholderPages(3),
		vscroll.WithVisibleDebounce(120*time.Millisecond),
	)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	defer eng.Close()
	vp.Bind(eng)

	cards := make([]card, cardCount)
	for i := range cards {
		cards[i] = card(i)
	}
	if err := eng.SetItems(cards); err != nil {
		return fmt.Errorf("set items: %w", err)
	}

	verbose := false
	vp.OnKey = func(key glfw.Key, _ glfw.ModifierKey) bool {
		switch key {
		case glfw.KeyJ:
			target := rand.IntN(cardCount)
			if err := eng.ScrollToIndex(target, vscroll.ScrollOptions{Duration: 400 * time.Millisecond}); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			return true
		case glfw.KeyV:
			verbose = !verbose
			vscroll.SetVerbose(verbose)
			return true
		}
		return false
	}

	painter := opengl.NewListPainter[card](eng, gap)
	dl := opengl.AcquireDrawList()
	defer opengl.ReleaseDrawList(dl)

	for !window.ShouldClose() {
		glfw.PollEvents()
		sched.RunPending()

		w, h := window.GetFramebufferSize()
		renderer.Resize(w, h)
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		dl.Clear()
		painter.Paint(dl, 0, 0, float32(w), float32(h))
		if err := renderer.Render(dl); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}
