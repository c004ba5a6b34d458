package damage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clutterkit/clutter/engine/geom"
)

func newTracker() *Tracker { return New(800, 600) }

// seed records r as one finished frame's damage.
func seed(t *Tracker, r geom.Rect) {
	t.Mark(r)
	t.Commit()
}

func TestMarkAccumulatesBoundingBox(t *testing.T) {
	tr := newTracker()
	tr.Mark(geom.Rect{X: 10, Y: 10, Width: 50, Height: 50})
	tr.Mark(geom.Rect{X: 100, Y: 100, Width: 20, Height: 20})
	tr.Mark(geom.Rect{X: 30, Y: 30, Width: 5, Height: 5}) // already enclosed

	assert.Equal(t, geom.Rect{X: 10, Y: 10, Width: 110, Height: 110}, tr.Pending())
}

func TestMarkInvalidRectIsNoOp(t *testing.T) {
	tr := newTracker()
	tr.Mark(geom.Rect{X: 10, Y: 10, Width: 50, Height: 50})
	before := tr.Pending()

	tr.Mark(geom.Rect{X: 5, Y: 5, Width: 0, Height: 10})
	tr.Mark(geom.Rect{X: 5, Y: 5, Width: 10, Height: -3})
	tr.Mark(geom.Rect{})
	assert.Equal(t, before, tr.Pending())
}

func TestMarkClipsToBounds(t *testing.T) {
	// Scenario D: negative origin clips to the surface.
	tr := newTracker()
	tr.Mark(geom.Rect{X: -5, Y: -5, Width: 10, Height: 10})
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 5, Height: 5}, tr.Pending())

	// Fully offscreen damage is discarded.
	tr2 := newTracker()
	tr2.Mark(geom.Rect{X: 900, Y: 900, Width: 10, Height: 10})
	assert.False(t, tr2.HasPending())
}

func TestResolveAgeZeroForcesFullAndClearsHistory(t *testing.T) {
	tr := newTracker()
	seed(tr, geom.Rect{X: 10, Y: 10, Width: 50, Height: 50})
	seed(tr, geom.Rect{X: 0, Y: 0, Width: 5, Height: 5})
	assert.Equal(t, 2, tr.HistoryLen())

	rect, full := tr.Resolve(0, true)
	assert.True(t, full)
	assert.Equal(t, geom.FromSize(800, 600), rect)
	assert.Zero(t, tr.HistoryLen())
}

func TestResolveHistoryShorterThanAgeForcesFull(t *testing.T) {
	tr := newTracker()
	seed(tr, geom.Rect{X: 10, Y: 10, Width: 50, Height: 50})

	tr.Mark(geom.Rect{X: 10, Y: 10, Width: 50, Height: 50})
	_, full := tr.Resolve(2, true)
	assert.True(t, full)

	// But enough history yields a partial repaint.
	_, full = tr.Resolve(1, true)
	assert.False(t, full)
}

func TestResolveUnionsHistoryUpToAge(t *testing.T) {
	// Scenario C.
	tr := newTracker()
	seed(tr, geom.Rect{X: 5, Y: 5, Width: 10, Height: 10})
	seed(tr, geom.Rect{X: 0, Y: 0, Width: 10, Height: 10}) // most recent
	tr.Mark(geom.Rect{X: 20, Y: 20, Width: 5, Height: 5})

	rect, full := tr.Resolve(2, true)
	assert.False(t, full)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 25, Height: 25}, rect)
}

func TestResolveFullCoverageShortCircuit(t *testing.T) {
	// Scenario B: full-surface damage skips the clip path even at age 1.
	tr := newTracker()
	seed(tr, geom.Rect{X: 0, Y: 0, Width: 1, Height: 1})
	tr.Mark(geom.Rect{X: 0, Y: 0, Width: 800, Height: 600})

	rect, full := tr.Resolve(1, true)
	assert.True(t, full)
	assert.Equal(t, geom.FromSize(800, 600), rect)
}

func TestResolveFallbackUnionsPreviousFrame(t *testing.T) {
	// Scenario A: buffer age unsupported, double-buffer assumption.
	tr := newTracker()
	seed(tr, geom.Rect{X: 100, Y: 100, Width: 20, Height: 20})
	tr.Mark(geom.Rect{X: 10, Y: 10, Width: 50, Height: 50})

	rect, full := tr.Resolve(0, false)
	assert.False(t, full)
	assert.Equal(t, geom.Rect{X: 10, Y: 10, Width: 110, Height: 110}, rect)
}

func TestResolveFallbackWithNoHistoryIsFull(t *testing.T) {
	tr := newTracker()
	tr.Mark(geom.Rect{X: 10, Y: 10, Width: 50, Height: 50})
	_, full := tr.Resolve(0, false)
	assert.True(t, full)
}

func TestCommitResetsPendingAndBoundsHistory(t *testing.T) {
	tr := newTracker()
	for i := 0; i < 10; i++ {
		seed(tr, geom.Rect{X: i, Y: i, Width: 5, Height: 5})
	}
	assert.False(t, tr.HasPending())
	assert.Equal(t, historyCap, tr.HistoryLen())
}

func TestFullRepaintRecordsOwnChange(t *testing.T) {
	// A forced full frame (age 0) must not poison history with a
	// full-surface entry: only the frame's own change is recorded, so the
	// pipeline returns to partial repaints immediately.
	tr := newTracker()
	tr.Mark(geom.Rect{X: 10, Y: 10, Width: 20, Height: 20})
	_, full := tr.Resolve(0, true)
	assert.True(t, full)
	tr.Commit()

	tr.Mark(geom.Rect{X: 50, Y: 50, Width: 20, Height: 20})
	rect, full := tr.Resolve(1, true)
	assert.False(t, full)
	assert.Equal(t, geom.Rect{X: 10, Y: 10, Width: 60, Height: 60}, rect)
}

func TestCarryForwardFrameRecordsEmptyDamage(t *testing.T) {
	// A frame painted only to patch an old buffer changed nothing itself;
	// its history entry is empty and later unions ignore it.
	tr := newTracker()
	seed(tr, geom.Rect{X: 10, Y: 10, Width: 20, Height: 20})
	tr.Commit() // frame with no pending damage
	assert.Equal(t, 2, tr.HistoryLen())

	tr.Mark(geom.Rect{X: 50, Y: 50, Width: 10, Height: 10})
	rect, full := tr.Resolve(1, true)
	assert.False(t, full)
	assert.Equal(t, geom.Rect{X: 50, Y: 50, Width: 10, Height: 10}, rect)
}

func TestSetBoundsInvalidatesHistory(t *testing.T) {
	tr := newTracker()
	seed(tr, geom.Rect{X: 10, Y: 10, Width: 50, Height: 50})

	tr.SetBounds(1024, 768)
	assert.Zero(t, tr.HistoryLen())
	assert.Equal(t, geom.FromSize(1024, 768), tr.Pending())

	rect, full := tr.Resolve(1, true)
	assert.True(t, full)
	assert.Equal(t, geom.FromSize(1024, 768), rect)
}
