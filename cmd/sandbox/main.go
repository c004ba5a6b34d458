// Sandbox is a small interactive exercise of the toolkit: a stage with a
// handful of rectangles, a looping timeline animating one of them, color
// picking on click and window-manager toggles on the keyboard.
//
//	F11    toggle fullscreen
//	C      toggle cursor visibility
//	Space  pause/resume the animation
//	Enter  save a screenshot
//	Esc/Q  quit
package main

import (
	"log/slog"
	"os"
	"runtime"

	clutter "github.com/clutterkit/clutter"
	"github.com/clutterkit/clutter/engine/assets"
	"github.com/clutterkit/clutter/engine/backend"
	"github.com/clutterkit/clutter/engine/colors"
	"github.com/clutterkit/clutter/engine/geom"
	glbackend "github.com/clutterkit/clutter/engine/gfx/gl"
	"github.com/clutterkit/clutter/engine/mainloop"
	_ "github.com/clutterkit/clutter/engine/platform"
	"github.com/clutterkit/clutter/engine/scene"
	"github.com/clutterkit/clutter/engine/stage"
	"github.com/clutterkit/clutter/engine/timeline"
)

func init() {
	// GL and the windowing backend are main-thread only.
	runtime.LockOSThread()
}

func main() {
	clutter.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	log := clutter.Logger()

	loop := mainloop.New()

	st, err := stage.New(loop, stage.Options{
		Title:  "Sandbox",
		Width:  800,
		Height: 600,
	})
	if err != nil {
		log.Error("no usable backend", "err", err)
		os.Exit(1)
	}
	defer st.Destroy()

	// The surface's context is current after stage creation.
	painter, err := glbackend.NewPainter()
	if err != nil {
		log.Error("painter init failed", "err", err)
		os.Exit(1)
	}
	defer painter.Shutdown()
	st.SetPainter(painter)

	st.SetColor(colors.Color{0.1, 0.1, 0.12, 1})

	back := scene.NewRectangle(colors.Color{0.2, 0.3, 0.5, 1})
	back.SetBox(geom.Box{X1: 100, Y1: 100, X2: 500, Y2: 400})
	st.Add(back)

	mover := scene.NewRectangle(colors.Color{0.9, 0.4, 0.1, 1})
	mover.SetBox(geom.Box{X1: 0, Y1: 250, X2: 100, Y2: 350})
	st.Add(mover)

	tl := timeline.New(loop, 120, 60)
	tl.SetLoop(true)
	tl.OnNewFrame(func(frame int) {
		// Sweep across the stage, two seconds per lap.
		w, _ := st.Size()
		x := float32(frame) / float32(tl.NFrames()) * float32(w-100)
		mover.SetBox(geom.Box{X1: x, Y1: 250, X2: x + 100, Y2: 350})
	})
	tl.Start()

	st.OnKey(func(ev backend.KeyEvent) {
		if !ev.Down {
			return
		}
		switch ev.Key {
		case backend.KeyEscape, backend.KeyQ:
			loop.Quit()
		case backend.KeyF11:
			st.SetFullscreen(!st.Fullscreen())
		case backend.KeyC:
			st.SetCursorVisible(!st.CursorVisible())
		case backend.KeySpace:
			if tl.Playing() {
				tl.Pause()
			} else {
				tl.Start()
			}
		case backend.KeyEnter:
			w, h := st.Size()
			img, err := st.Snapshot(0, 0, w, h)
			if err != nil {
				log.Warn("snapshot failed", "err", err)
				return
			}
			if err := assets.Save(img, "screenshot.png"); err != nil {
				log.Warn("screenshot not saved", "err", err)
			} else {
				log.Info("screenshot saved", "path", "screenshot.png")
			}
		}
	})
	st.OnPointer(func(ev backend.PointerEvent) {
		if ev.Button == 0 || !ev.Down {
			return
		}
		if hit := st.Pick(int(ev.X), int(ev.Y)); hit != nil {
			log.Info("picked", "id", hit.Node().ID())
			st.RaiseToTop(hit)
		}
	})
	st.OnClose(func() { loop.Quit() })
	st.OnFrameError(func(err error) {
		log.Error("stage lost", "err", err)
		loop.Quit()
	})
	st.OnFullscreen(func(on bool) { log.Info("fullscreen", "on", on) })

	st.Show()
	loop.Run(st.PollEvents)
}
