package stage

import (
	"errors"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/image/math/f32"

	clutter "github.com/clutterkit/clutter"
	"github.com/clutterkit/clutter/engine/backend"
	"github.com/clutterkit/clutter/engine/colors"
	"github.com/clutterkit/clutter/engine/scene"
)

// paintFrame produces one frame. Invoked only by the frame clock, which
// has already returned to idle, so a redraw queued from inside a paint
// lands on a future loop iteration.
func (s *Stage) paintFrame() {
	if s.destroyed || s.surface == nil || s.painter == nil {
		return
	}

	start := time.Now()
	age, ageOK := s.surface.BufferAge()
	resolved, full := s.tracker.Resolve(age, ageOK)

	if err := s.surface.MakeCurrent(); err != nil {
		s.frameFailed(err)
		return
	}

	w, h := s.surface.Size()
	s.painter.Setup(w, h, s.projectionMatrix(w, h))

	// Scissor state must be balanced even if painting fails partway, so
	// the pop is deferred before any drawing happens.
	if !full {
		s.painter.PushClip(resolved)
	}
	func() {
		if !full {
			defer s.painter.PopClip()
		}
		if full {
			// Partial updates reuse the previous buffer contents and skip
			// the clear entirely.
			s.painter.Clear(s.color)
		}
		if s.fogEnabled {
			s.painter.SetFog(s.fog)
		}
		s.Group.Paint(&scene.PaintContext{Painter: s.painter})
	}()

	s.tracker.Commit()

	if err := s.surface.SwapBuffers(); err != nil {
		s.frameFailed(err)
		return
	}

	clutter.Logger().Debug("paint",
		"full", full, "age", age, "age_supported", ageOK,
		"x", resolved.X, "y", resolved.Y, "w", resolved.Width, "h", resolved.Height,
		"took", time.Since(start))
}

// frameFailed handles a lost drawable or context mid-session: the stage
// unrealizes, further paint requests become no-ops, and the failure is
// reported upward exactly once. Nothing is retried.
func (s *Stage) frameFailed(err error) {
	clutter.Logger().Warn("frame failed, unrealizing stage", "err", err)
	if !errors.Is(err, backend.ErrSurfaceLost) {
		err = errors.Join(backend.ErrSurfaceLost, err)
	}
	s.unrealize()
	for _, fn := range s.onFrameError {
		fn(err)
	}
}

func (s *Stage) projectionMatrix(w, h int) f32.Mat4 {
	if s.projDirty {
		s.projection = projectionFor(s.persp, w, h)
		s.projDirty = false
	}
	return s.projection
}

// Pick returns the topmost actor whose silhouette covers the surface
// pixel (x, y), or nil for the stage background. The pick pass reuses the
// paint path in pick mode, encoding actor ids as colors, and reads one
// pixel back. It is not a displayed frame and does not consult the damage
// tracker; since it scribbles over the back buffer, it ends by queueing a
// full redraw through the public damage API.
func (s *Stage) Pick(x, y int) scene.Actor {
	if s.destroyed || s.surface == nil || s.painter == nil {
		return nil
	}
	w, h := s.surface.Size()
	if !s.tracker.Bounds().Contains(x, y) {
		return nil
	}
	if err := s.surface.MakeCurrent(); err != nil {
		s.frameFailed(err)
		return nil
	}

	s.painter.Setup(w, h, s.projectionMatrix(w, h))
	s.painter.Clear(colors.Black) // id 0: no actor
	s.Group.PickPaint(&scene.PaintContext{Painter: s.painter, Picking: true})

	// ReadPixels is bottom-up; flip y.
	px := s.painter.ReadPixels(x, h-1-y, 1, 1)
	if len(px) < 3 {
		return nil
	}
	id := colors.DecodeID(px[0], px[1], px[2])

	s.QueueRedraw()
	if id == 0 {
		return nil
	}
	return s.Group.FindByID(id)
}

// Snapshot reads back the rectangle (x, y, w, h) of the last rendered
// frame as an image with the usual top-left origin.
func (s *Stage) Snapshot(x, y, w, h int) (image.Image, error) {
	if s.destroyed || s.surface == nil || s.painter == nil {
		return nil, backend.ErrSurfaceLost
	}
	if w <= 0 || h <= 0 {
		return nil, errors.New("stage: snapshot of empty rectangle")
	}
	if err := s.surface.MakeCurrent(); err != nil {
		s.frameFailed(err)
		return nil, err
	}

	_, sh := s.surface.Size()
	px := s.painter.ReadPixels(x, sh-y-h, w, h)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, px)
	// GL rows come out bottom-up.
	return imaging.FlipV(img), nil
}
