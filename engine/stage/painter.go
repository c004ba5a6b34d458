package stage

import (
	"golang.org/x/image/math/f32"

	"github.com/clutterkit/clutter/engine/colors"
	"github.com/clutterkit/clutter/engine/geom"
	"github.com/clutterkit/clutter/engine/scene"
)

// Fog parameters blend distant fragments toward the stage color. Fog has
// no structural effect on damage or clipping; it only changes fragment
// output.
type Fog struct {
	Density float32
	ZNear   float32
	ZFar    float32
}

// Painter is the stage's drawing collaborator. The GL implementation lives
// in engine/gfx/gl; tests substitute recorders. Calls are only made
// between a successful MakeCurrent and the corresponding SwapBuffers, on
// the render thread.
type Painter interface {
	scene.Painter

	// Setup applies the viewport and projection for a w×h frame. Called
	// once per paint, before any drawing.
	Setup(w, h int, projection f32.Mat4)

	// PushClip restricts subsequent drawing to r (scissor). Balanced by
	// PopClip; the stage guarantees the pop runs even on a failed frame.
	PushClip(r geom.Rect)
	PopClip()

	// Clear fills the color buffer. Skipped entirely on partial repaints,
	// where previous buffer contents are reused.
	Clear(c colors.Color)

	// SetFog applies fog parameters for the coming paint. The stage only
	// calls this while fog is enabled.
	SetFog(f Fog)

	// ReadPixels returns RGBA pixels for the given rectangle in GL
	// convention: origin bottom-left, rows bottom-up.
	ReadPixels(x, y, w, h int) []byte
}
