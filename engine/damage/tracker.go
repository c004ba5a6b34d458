// Package damage maintains the minimal surface region that must be redrawn
// each frame. Damage is a single bounding-box rectangle, deliberately
// over-approximated: merging two marks grows one enclosing rectangle rather
// than tracking an exact region. Under-approximation is never allowed.
//
// The tracker also keeps a short most-recent-first history of per-frame
// damage so that swap-chain back buffers of a known age can be patched up
// with only the frames they missed.
package damage

import "github.com/clutterkit/clutter/engine/geom"

// historyCap bounds the damage history. A back buffer older than this many
// frames is repainted in full regardless of reported age.
const historyCap = 4

// Tracker accumulates pending damage for one surface. All operations are
// total: out-of-range input degrades to empty or full, nothing fails.
type Tracker struct {
	bounds  geom.Rect
	pending geom.Rect
	history []geom.Rect // most recent first
}

// New creates a tracker for a w×h surface with empty pending damage and
// empty history.
func New(w, h int) *Tracker {
	return &Tracker{bounds: geom.FromSize(w, h)}
}

// SetBounds updates the surface size. The old back-buffer contents are no
// longer meaningful at the new size, so history is discarded and the whole
// surface is marked damaged.
func (t *Tracker) SetBounds(w, h int) {
	t.bounds = geom.FromSize(w, h)
	t.history = t.history[:0]
	t.pending = t.bounds
}

// Bounds returns the current surface rectangle.
func (t *Tracker) Bounds() geom.Rect { return t.bounds }

// Mark merges r into the pending damage. r is clipped to the surface;
// offscreen or invalid rectangles are discarded.
func (t *Tracker) Mark(r geom.Rect) {
	clipped := r.Clip(t.bounds)
	if !clipped.Valid() {
		return
	}
	t.pending = t.pending.Union(clipped)
}

// MarkAll marks the entire surface damaged, absorbing any pending rect.
func (t *Tracker) MarkAll() {
	t.pending = t.bounds
}

// Pending returns the accumulated damage for the frame in progress.
func (t *Tracker) Pending() geom.Rect { return t.pending }

// HasPending reports whether any damage has been marked since the last
// committed frame.
func (t *Tracker) HasPending() bool { return t.pending.Valid() }

// Resolve computes the region the next frame must repaint, given the
// backend-reported buffer age. supported=false selects the double-buffer
// fallback: the back buffer is assumed to hold everything except the
// previous frame's damage.
//
// age semantics: 0 means the back buffer contents are undefined (forces a
// full repaint and resets history); age n>0 means the buffer missed the
// damage of the last n frames, so pending damage is unioned with the n
// most recent history entries. A history shorter than the age cannot
// reconstruct the missing frames and falls back to a full repaint.
func (t *Tracker) Resolve(age int, supported bool) (geom.Rect, bool) {
	if !supported {
		age = 1
		if len(t.history) == 0 {
			// No previous frame recorded; repaint everything once.
			return t.bounds, true
		}
	}

	if age <= 0 {
		t.history = t.history[:0]
		return t.bounds, true
	}
	if len(t.history) < age {
		return t.bounds, true
	}

	resolved := t.pending
	for i := 0; i < age && i < len(t.history); i++ {
		resolved = resolved.Union(t.history[i])
	}

	resolved = resolved.Clip(t.bounds)
	if !resolved.Valid() || resolved.Covers(t.bounds) {
		return t.bounds, true
	}
	return resolved, false
}

// Commit ends the frame: the clipped, merged pending rectangle (the
// frame's own visual change, not the possibly larger region repainted to
// patch an old buffer) is pushed onto history and pending damage resets
// to empty. Recording the own change keeps history accurate — a buffer
// that missed a frame only missed that frame's change; pixels repainted
// identically around it never went stale. Call once per frame, after the
// paint and before the next Resolve.
func (t *Tracker) Commit() {
	t.history = append([]geom.Rect{t.pending}, t.history...)
	if len(t.history) > historyCap {
		t.history = t.history[:historyCap]
	}
	t.pending = geom.Rect{}
}

// HistoryLen reports how many past frames the tracker can reconstruct.
func (t *Tracker) HistoryLen() int { return len(t.history) }
