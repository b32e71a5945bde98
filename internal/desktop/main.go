// Package desktop runs a session in an OpenGL window.
package desktop

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"tilesnake/internal/game"
)

// maxFrameDelta caps the frame delta after a stall (window drag, breakpoint).
const maxFrameDelta = 100 * time.Millisecond

type Options struct {
	Width, Height int
	Logger        *log.Logger
	// OnFrame, if set, runs after each session update.
	OnFrame func(delta time.Duration)
}

// Run opens the window, builds the session with start and drives it until
// the window is closed or Escape is pressed. It must be called from the
// main goroutine.
func Run(start func(tp game.TimeProvider) *game.Session, opts Options) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, err := initWindow(opts.Width, opts.Height)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	if opts.Logger != nil {
		opts.Logger.Printf("opengl %s", gl.GoStr(gl.GetString(gl.VERSION)))
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	clock := newGLFWTime()
	sess := start(clock)

	rend, err := NewRenderer(sess.Config().CellSize)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	bindKeys(window, sess)

	last := clock.Now()
	for !window.ShouldClose() {
		glfw.PollEvents()

		now := clock.Now()
		dt := now.Sub(last)
		last = now
		if dt > maxFrameDelta {
			dt = maxFrameDelta
		}

		fbW, fbH := window.GetFramebufferSize()
		winW, winH := window.GetSize()
		if !drawable(fbW, fbH, winW, winH) {
			// Minimized: block until something changes instead of spinning.
			glfw.WaitEvents()
			continue
		}

		sess.Update(dt)
		if opts.OnFrame != nil {
			opts.OnFrame(dt)
		}

		// One world unit per window point; zoom maps points to framebuffer
		// pixels on high-DPI displays.
		viewW, viewH := float64(winW), float64(winH)
		v := view{
			Offset: sess.CameraOffset(viewW, viewH),
			Zoom:   float64(fbW) / viewW,
			FbW:    fbW,
			FbH:    fbH,
			ViewW:  viewW,
			ViewH:  viewH,
		}
		rend.BeginFrame(v)
		rend.DrawGrid(v)
		rend.DrawScene(v, sess.Food().Items(), sess.Chain().Segments())
		window.SwapBuffers()
	}
	return nil
}

// drawable reports whether both the framebuffer and the window have area.
// Minimized windows report zero sizes.
func drawable(fbW, fbH, winW, winH int) bool {
	return fbW > 0 && fbH > 0 && winW > 0 && winH > 0
}
