package input

import (
	"sort"

	"github.com/plus3/flycam/rig"
)

// Hold keeps an action held from From (inclusive) to To (exclusive), in
// seconds since the script started.
type Hold struct {
	Action rig.Action
	From   float64
	To     float64
	Boost  bool
}

// Script replays a fixed timeline of holds. It has its own clock, advanced
// once per tick by Advance, so replays are deterministic regardless of wall
// time.
type Script struct {
	holds   []Hold
	elapsed float64
	loop    float64
}

// NewScript returns a script over holds. If loop is positive the timeline
// restarts every loop seconds.
func NewScript(holds []Hold, loop float64) *Script {
	sorted := append([]Hold(nil), holds...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].From < sorted[j].From })
	return &Script{holds: sorted, loop: loop}
}

// Advance moves the script clock forward by dt seconds.
func (s *Script) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	s.elapsed += dt
	if s.loop > 0 {
		for s.elapsed >= s.loop {
			s.elapsed -= s.loop
		}
	}
}

// Elapsed returns the script clock in seconds.
func (s *Script) Elapsed() float64 {
	return s.elapsed
}

// Duration returns the end of the last hold.
func (s *Script) Duration() float64 {
	end := 0.0
	for _, h := range s.holds {
		if h.To > end {
			end = h.To
		}
	}
	return end
}

func (s *Script) active(h Hold) bool {
	return s.elapsed >= h.From && s.elapsed < h.To
}

func (s *Script) Held(a rig.Action) bool {
	for _, h := range s.holds {
		if h.From > s.elapsed {
			break
		}
		if h.Action == a && s.active(h) {
			return true
		}
	}
	return false
}

func (s *Script) Boosting() bool {
	for _, h := range s.holds {
		if h.From > s.elapsed {
			break
		}
		if h.Boost && s.active(h) {
			return true
		}
	}
	return false
}
