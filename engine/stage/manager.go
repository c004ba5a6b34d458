package stage

import "github.com/clutterkit/clutter/engine/mainloop"

// The stage list is lookup-only bookkeeping: it never owns stage
// lifetimes beyond the lazily created default stage. Like every other
// stage operation it is render-thread state, not locked.
var (
	stages       []*Stage
	defaultStage *Stage
)

func addStage(s *Stage) { stages = append(stages, s) }

func removeStage(s *Stage) {
	for i, st := range stages {
		if st == s {
			stages = append(stages[:i], stages[i+1:]...)
			break
		}
	}
	if defaultStage == s {
		defaultStage = nil
	}
}

// Stages returns all live stages, creation order.
func Stages() []*Stage { return stages }

// Default returns the process-wide default stage, creating it on first
// use with stock options. Subsequent calls return the same stage until
// Shutdown or its Destroy.
func Default(loop *mainloop.Loop, opts Options) (*Stage, error) {
	if defaultStage != nil {
		return defaultStage, nil
	}
	s, err := New(loop, opts)
	if err != nil {
		return nil, err
	}
	defaultStage = s
	return s, nil
}

// Shutdown destroys the default stage if one exists. Explicit alternative
// to relying on process exit.
func Shutdown() {
	if defaultStage != nil {
		defaultStage.Destroy() // clears defaultStage via removeStage
	}
}
