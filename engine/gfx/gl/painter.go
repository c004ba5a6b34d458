// Package glbackend implements the stage painter on OpenGL 3.3 core.
package glbackend

import (
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"golang.org/x/image/math/f32"

	"github.com/clutterkit/clutter/engine/colors"
	"github.com/clutterkit/clutter/engine/geom"
	"github.com/clutterkit/clutter/engine/stage"
)

// Painter draws flat quads through one shader program. One Painter can
// serve several stages as long as all of them run on the render thread;
// Setup rebinds all per-frame state.
type Painter struct {
	program uint32
	vao     uint32
	vbo     uint32

	uProjection int32
	uColor      int32
	uFogParams  int32
	uFogColor   int32

	fbHeight  int
	clipStack []geom.Rect
	fogColor  colors.Color
}

// NewPainter compiles the quad pipeline. Requires a current GL context.
func NewPainter() (*Painter, error) {
	p := &Painter{}
	var err error
	p.program, err = makeProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}

	p.uProjection = gl.GetUniformLocation(p.program, gl.Str("uProjection\x00"))
	p.uColor = gl.GetUniformLocation(p.program, gl.Str("uColor\x00"))
	p.uFogParams = gl.GetUniformLocation(p.program, gl.Str("uFogParams\x00"))
	p.uFogColor = gl.GetUniformLocation(p.program, gl.Str("uFogColor\x00"))

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	// Quad corners streamed per fill: 6 vertices, 2 floats each.
	gl.BufferData(gl.ARRAY_BUFFER, 6*2*4, nil, gl.DYNAMIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, unsafe.Pointer(uintptr(0)))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return p, nil
}

// Shutdown releases GL objects. Requires a current GL context.
func (p *Painter) Shutdown() {
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
	}
	if p.program != 0 {
		gl.DeleteProgram(p.program)
	}
}

func (p *Painter) Setup(w, h int, projection f32.Mat4) {
	p.fbHeight = h
	p.clipStack = p.clipStack[:0]

	gl.Viewport(0, 0, int32(w), int32(h))
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(p.program)
	gl.UniformMatrix4fv(p.uProjection, 1, false, &projection[0])
	gl.Uniform3f(p.uFogParams, 0, 0, 1) // fog off
}

// PushClip restricts output to r. The scissor rectangle is flipped to
// GL's bottom-left origin.
func (p *Painter) PushClip(r geom.Rect) {
	p.clipStack = append(p.clipStack, r)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(r.X), int32(p.fbHeight-r.Y-r.Height), int32(r.Width), int32(r.Height))
}

func (p *Painter) PopClip() {
	if len(p.clipStack) == 0 {
		return
	}
	p.clipStack = p.clipStack[:len(p.clipStack)-1]
	if len(p.clipStack) == 0 {
		gl.Disable(gl.SCISSOR_TEST)
		return
	}
	r := p.clipStack[len(p.clipStack)-1]
	gl.Scissor(int32(r.X), int32(p.fbHeight-r.Y-r.Height), int32(r.Width), int32(r.Height))
}

func (p *Painter) Clear(c colors.Color) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (p *Painter) SetFog(f stage.Fog) {
	gl.Uniform3f(p.uFogParams, f.Density, f.ZNear, f.ZFar)
	gl.Uniform4f(p.uFogColor, p.fogColor[0], p.fogColor[1], p.fogColor[2], p.fogColor[3])
}

// SetFogColor sets the color distant fragments blend toward, normally the
// stage background.
func (p *Painter) SetFogColor(c colors.Color) { p.fogColor = c }

func (p *Painter) FillRect(b geom.Box, c colors.Color) {
	verts := [12]float32{
		b.X1, b.Y1,
		b.X2, b.Y1,
		b.X2, b.Y2,
		b.X1, b.Y1,
		b.X2, b.Y2,
		b.X1, b.Y2,
	}
	gl.Uniform4f(p.uColor, c[0], c[1], c[2], c[3])
	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(&verts[0]))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (p *Painter) ReadPixels(x, y, w, h int) []byte {
	if w <= 0 || h <= 0 {
		return nil
	}
	px := make([]byte, w*h*4)
	gl.ReadPixels(int32(x), int32(y), int32(w), int32(h),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&px[0]))
	return px
}

var _ stage.Painter = (*Painter)(nil)
