// Command gen renders the two tiers of a sample list at several scroll
// positions, captures framebuffer pixels, and saves JPEG screenshots to
// doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vscroll"
	"github.com/go-theft-auto/vscroll/backend/opengl"
)

const (
	shotWidth  = 480
	shotHeight = 640
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot is one capture: a list state reached by a sequence of actions.
type screenshot struct {
	name    string
	opts    []vscroll.Option
	width   func(i int) float64 // Item width; nil for a single column
	prepare func(eng *vscroll.Engine[int], vp *stillViewport)
}

// stillViewport is a fixed-size scroll container that only moves when asked.
type stillViewport struct {
	m   vscroll.Metrics
	eng *vscroll.Engine[int]
}

func (v *stillViewport) Metrics() vscroll.Metrics { return v.m }

func (v *stillViewport) ScrollTo(offset float64) {
	v.m.Offset = offset
	if v.eng != nil {
		v.eng.HandleScroll()
	}
}

func height(i int) float64 {
	return 36 + float64(i%4)*14
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
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 800, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(shotWidth, shotHeight)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, shotWidth, shotHeight)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, s screenshot, outDir string) error {
	// The viewport is the middle half of the image; the quarters above and
	// below show how far the placeholder tier reaches past it.
	const top = shotHeight / 4
	client := float64(shotHeight / 2)

	sched := vscroll.NewManualScheduler(time.Time{})
	vp := &stillViewport{m: vscroll.Metrics{ClientExtent: client, ContainerWidth: shotWidth}}
	layout := vscroll.Layout[int]{Height: vscroll.SizeFunc(func(_ int, i int) float64 { return height(i) })}
	if s.width != nil {
		layout.Width = vscroll.SizeFunc(func(_ int, i int) float64 { return s.width(i) })
	}

	gap := vscroll.Gap{Horizontal: 6, Vertical: 6}
	opts := append([]vscroll.Option{
		vscroll.WithScheduler(sched),
		vscroll.WithGap(gap),
		vscroll.WithVisiblePages(1),
		vscroll.WithPlaceholderPages(2),
	}, s.opts...)
	eng, err := vscroll.New(vp, layout, vscroll.Handlers[int]{}, opts...)
	if err != nil {
		return err
	}
	defer eng.Close()
	vp.eng = eng

	items := make([]int, 10_000)
	for i := range items {
		items[i] = i
	}
	if err := eng.SetItems(items); err != nil {
		return err
	}
	if s.prepare != nil {
		s.prepare(eng, vp)
	}
	eng.Advance(time.Second)

	dl := opengl.AcquireDrawList()
	defer opengl.ReleaseDrawList(dl)

	painter := opengl.NewListPainter[int](eng, gap)
	painter.Overscan = top
	painter.Paint(dl, 0, top, shotWidth, float32(client))
	// Viewport frame.
	dl.AddRectOutline(0, top, shotWidth, float32(client), opengl.RGBA(0xf2, 0xb1, 0x34, 0xff), 2)

	gl.Viewport(0, 0, shotWidth, shotHeight)
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if err := renderer.Render(dl); err != nil {
		return err
	}

	pixels := make([]byte, shotWidth*shotHeight*4)
	gl.ReadPixels(0, 0, shotWidth, shotHeight, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := shotWidth * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < shotHeight/2; y++ {
		t := y * rowLen
		b := (shotHeight - 1 - y) * rowLen
		copy(tmp, pixels[t:t+rowLen])
		copy(pixels[t:t+rowLen], pixels[b:b+rowLen])
		copy(pixels[b:b+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, shotWidth, shotHeight))
	copy(img.Pix, pixels)

	f, err := os.Create(filepath.Join(outDir, s.name+".jpg"))
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// buildScreenshots returns every capture to generate.
func buildScreenshots() []screenshot {
	return []screenshot{
		{name: "tiers_top"},
		{
			name: "tiers_scrolled",
			prepare: func(eng *vscroll.Engine[int], vp *stillViewport) {
				vp.ScrollTo(2400)
			},
		},
		{
			name: "tiers_backward",
			opts: []vscroll.Option{vscroll.WithAdjustFactor(1)},
			prepare: func(eng *vscroll.Engine[int], vp *stillViewport) {
				vp.ScrollTo(4000)
				eng.Advance(time.Second)
				vp.ScrollTo(3600)
			},
		},
		{
			name:  "tiers_multi_column",
			opts:  []vscroll.Option{vscroll.WithMultiColumn(true)},
			width: func(i int) float64 { return 90 + float64(i%3)*40 },
			prepare: func(eng *vscroll.Engine[int], vp *stillViewport) {
				_ = eng.ScrollToIndex(300, vscroll.ScrollOptions{})
			},
		},
		{
			name: "tiers_corrected",
			prepare: func(eng *vscroll.Engine[int], vp *stillViewport) {
				for i := 2; i < 8; i += 2 {
					eng.ReportHeight(eng.Item(i), 120)
				}
			},
		},
	}
}
