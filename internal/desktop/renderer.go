package desktop

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"tilesnake/internal/game"
)

// circleStride is the float count per circle sprite: x, y, size, r, g, b, a.
const circleStride = 7

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// view is the per-frame transform: world units are translated by Offset and
// scaled by Zoom framebuffer pixels per world unit.
type view struct {
	Offset   game.Vec2
	Zoom     float64
	FbW, FbH int
	ViewW    float64 // viewport size in world units
	ViewH    float64
}

type program struct {
	id          uint32
	uOffset     int32
	uZoom       int32
	uResolution int32
}

func newProgram(vert, frag string) (program, error) {
	id, err := linkProgram(vert, frag)
	if err != nil {
		return program{}, err
	}
	return program{
		id:          id,
		uOffset:     gl.GetUniformLocation(id, gl.Str("uOffset\x00")),
		uZoom:       gl.GetUniformLocation(id, gl.Str("uZoom\x00")),
		uResolution: gl.GetUniformLocation(id, gl.Str("uResolution\x00")),
	}, nil
}

func (p program) use(v view) {
	gl.UseProgram(p.id)
	gl.Uniform2f(p.uOffset, float32(v.Offset.X), float32(v.Offset.Y))
	gl.Uniform1f(p.uZoom, float32(v.Zoom))
	gl.Uniform2f(p.uResolution, float32(v.FbW), float32(v.FbH))
}

type Renderer struct {
	lines            program
	uColor           int32
	lineVAO, lineVBO uint32

	circles              program
	circleVAO, circleVBO uint32

	cellSize float64

	// Reusable buffers to avoid per-frame heap allocations.
	lineBuf   []float32
	circleBuf []float32
}

func NewRenderer(cellSize float64) (*Renderer, error) {
	lines, err := newProgram(lineVertSrc, lineFragSrc)
	if err != nil {
		return nil, fmt.Errorf("line program: %w", err)
	}
	circles, err := newProgram(circleVertSrc, circleFragSrc)
	if err != nil {
		gl.DeleteProgram(lines.id)
		return nil, fmt.Errorf("circle program: %w", err)
	}
	r := &Renderer{
		lines:    lines,
		uColor:   gl.GetUniformLocation(lines.id, gl.Str("uColor\x00")),
		circles:  circles,
		cellSize: cellSize,
	}

	// Line VAO/VBO: streaming pairs of (x, y) endpoints.
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	// Circle VAO/VBO: streaming point sprites.
	gl.GenVertexArrays(1, &r.circleVAO)
	gl.GenBuffers(1, &r.circleVBO)
	gl.BindVertexArray(r.circleVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.circleVBO)
	stride := int32(circleStride * 4)
	// aWorldPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.lineVBO, r.circleVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.lineVAO, r.circleVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.lines.id, r.circles.id} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

func (r *Renderer) BeginFrame(v view) {
	bg := game.Palette.Background
	gl.Viewport(0, 0, int32(v.FbW), int32(v.FbH))
	gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawGrid draws cell borders covering the visible area.
func (r *Renderer) DrawGrid(v view) {
	buf := appendGridLines(r.lineBuf[:0], v, r.cellSize)
	r.lineBuf = buf
	if len(buf) == 0 {
		return
	}

	grid := game.Palette.Grid
	r.lines.use(v)
	gl.Uniform3f(r.uColor, float32(grid.R)/255, float32(grid.G)/255, float32(grid.B)/255)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(buf)*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(len(buf)/2))
}

// DrawScene draws food and then the chain, head last so it stays on top.
func (r *Renderer) DrawScene(v view, food []game.Food, segs []game.Segment) {
	buf := r.circleBuf[:0]
	fc := game.Palette.Food
	for _, f := range food {
		buf = appendCircle(buf, f.Position, r.cellSize*0.6, fc)
	}
	for _, s := range segs {
		c := game.Palette.Body
		if s.IsHead() {
			c = game.Palette.Head
		}
		buf = appendCircle(buf, s.Render, r.cellSize, c)
	}
	r.circleBuf = buf
	if len(buf) == 0 {
		return
	}

	r.circles.use(v)
	gl.BindVertexArray(r.circleVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.circleVBO)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BufferData(gl.ARRAY_BUFFER, len(buf)*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(len(buf)/circleStride))
	gl.Disable(gl.BLEND)
}

func appendCircle(buf []float32, p game.Vec2, diameter float64, c game.RGB) []float32 {
	return append(buf,
		float32(p.X), float32(p.Y), float32(diameter),
		float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1,
	)
}

// appendGridLines appends (x0, y0, x1, y1) line segments for every cell
// border visible in v. Segment and food positions mark cell centres, so
// borders sit half a cell off them.
func appendGridLines(buf []float32, v view, cs float64) []float32 {
	half := cs / 2
	x0 := math.Floor((-v.Offset.X-half)/cs)*cs + half
	y0 := math.Floor((-v.Offset.Y-half)/cs)*cs + half
	x1 := -v.Offset.X + v.ViewW
	y1 := -v.Offset.Y + v.ViewH

	for x := x0; x <= x1; x += cs {
		buf = append(buf, float32(x), float32(y0), float32(x), float32(y1))
	}
	for y := y0; y <= y1; y += cs {
		buf = append(buf, float32(x0), float32(y), float32(x1), float32(y))
	}
	return buf
}
