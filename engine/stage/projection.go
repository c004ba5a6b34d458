package stage

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Perspective describes the stage camera. The projection matrix derived
// from it is recomputed lazily: mutations set a dirty flag and the matrix
// is rebuilt once at the start of the next paint. The derivation is pure
// float32 arithmetic, so identical descriptors always produce bit-for-bit
// identical matrices.
type Perspective struct {
	FovY   float32 // vertical field of view, degrees
	Aspect float32
	ZNear  float32
	ZFar   float32
}

// DefaultPerspective matches the stock stage camera.
func DefaultPerspective() Perspective {
	return Perspective{FovY: 60, Aspect: 1, ZNear: 0.1, ZFar: 100}
}

// zCamera is the camera distance that makes a unit quad at z=0 fill the
// viewport under the default 60° fov: 0.5 / tan(fov/2).
const zCamera = 0.866025404

// projectionFor derives the combined projection and stage-coordinate
// transform for a w×h surface: a perspective frustum followed by the
// mapping that puts (0,0) at the top-left corner and one unit per pixel.
func projectionFor(p Perspective, w, h int) f32.Mat4 {
	proj := perspective(p.FovY, p.Aspect, p.ZNear, p.ZFar)

	fw, fh := float32(w), float32(h)
	view := matMul(
		matTranslate(-0.5, -0.5, -zCamera),
		matMul(
			matScale(1/fw, -1/fh, 1/fw),
			matTranslate(0, -fh, 0),
		),
	)
	return matMul(proj, view)
}

func perspective(fovy, aspect, zNear, zFar float32) f32.Mat4 {
	ymax := zNear * float32(math.Tan(float64(fovy)*math.Pi/360))
	ymin := -ymax
	xmin := ymin * aspect
	xmax := ymax * aspect
	return frustum(xmin, xmax, ymin, ymax, zNear, zFar)
}

// frustum builds a column-major perspective frustum (GLSL-style).
func frustum(l, r, b, t, n, f float32) f32.Mat4 {
	x := (2 * n) / (r - l)
	y := (2 * n) / (t - b)
	a := (r + l) / (r - l)
	bb := (t + b) / (t - b)
	c := -(f + n) / (f - n)
	d := -(2 * f * n) / (f - n)
	return f32.Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		a, bb, c, -1,
		0, 0, d, 0,
	}
}

// ---- mat helpers (column-major) ----

func matTranslate(x, y, z float32) f32.Mat4 {
	return f32.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

func matScale(x, y, z float32) f32.Mat4 {
	return f32.Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

func matMul(a, b f32.Mat4) f32.Mat4 {
	var out f32.Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i+4*j] = a[i+0]*b[0+4*j] + a[i+4]*b[1+4*j] + a[i+8]*b[2+4*j] + a[i+12]*b[3+4*j]
		}
	}
	return out
}
