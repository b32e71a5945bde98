package desktop

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"tilesnake/internal/game"
)

// keyCodes translates GLFW arrow keys to the browser-style codes the game
// core expects.
var keyCodes = map[glfw.Key]game.KeyCode{
	glfw.KeyLeft:  game.KeyLeft,
	glfw.KeyUp:    game.KeyUp,
	glfw.KeyRight: game.KeyRight,
	glfw.KeyDown:  game.KeyDown,
}

// translateKey returns the game key code for an arrow key. Other keys are
// reported as unmapped: raw GLFW values overlap the arrow codes
// (KeyApostrophe is 39, the same as KeyRight).
func translateKey(k glfw.Key) (game.KeyCode, bool) {
	code, ok := keyCodes[k]
	return code, ok
}

// bindKeys forwards key transitions to h. GLFW invokes the callback from
// PollEvents, on the same goroutine as the frame loop. Repeats are dropped.
func bindKeys(window *glfw.Window, h game.KeyHandler) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press && key == glfw.KeyEscape {
			w.SetShouldClose(true)
			return
		}
		code, ok := translateKey(key)
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			h.KeyDown(code)
		case glfw.Release:
			h.KeyUp(code)
		}
	})
}

// glfwTime reports wall-clock time derived from glfw.GetTime so that tick
// gating and frame deltas share one clock.
type glfwTime struct {
	base time.Time
}

func newGLFWTime() glfwTime {
	return glfwTime{base: time.Now().Add(-seconds(glfw.GetTime()))}
}

func (t glfwTime) Now() time.Time {
	return t.base.Add(seconds(glfw.GetTime()))
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
