// Package route animates the "AI route optimization" view. There is no real
// routing: progress advances on a timer and the figures are fixed.
package route

import (
	"context"
	"time"
)

const (
	// StepSize is how far progress advances per tick.
	StepSize = 2
	// Complete is the terminal progress value.
	Complete = 100
	// DefaultTick is the interval between steps.
	DefaultTick = 50 * time.Millisecond
)

// Simulation tracks the progress of one run of the route animation.
// The zero value is an inactive simulation at 0%.
type Simulation struct {
	progress int
	active   bool
}

// Start activates the simulation and resets progress to 0.
func (s *Simulation) Start() {
	s.progress = 0
	s.active = true
}

// Stop deactivates the simulation, keeping its progress.
func (s *Simulation) Stop() {
	s.active = false
}

// Step advances progress by StepSize and reports whether the run is done.
// Progress never exceeds Complete; an inactive simulation does not move.
func (s *Simulation) Step() (progress int, done bool) {
	if !s.active {
		return s.progress, s.progress >= Complete
	}
	if s.progress >= Complete {
		s.progress = Complete
		s.active = false
		return s.progress, true
	}
	s.progress += StepSize
	if s.progress > Complete {
		s.progress = Complete
	}
	return s.progress, false
}

func (s *Simulation) Progress() int { return s.progress }

func (s *Simulation) Active() bool { return s.active }

// Analyzing reports whether the progress view should still be shown.
func (s *Simulation) Analyzing() bool {
	return s.active && s.progress < Complete
}

// Fraction is progress in [0, 1] for progress bars.
func (s *Simulation) Fraction() float64 {
	return float64(s.progress) / Complete
}

// AnalyzedPoints is the "Analyzing N delivery points" counter.
func (s *Simulation) AnalyzedPoints() int {
	return s.progress / 10
}

// Run starts the simulation and steps it every interval until it completes
// or ctx is cancelled. onStep, when non-nil, sees every new progress value.
func (s *Simulation) Run(ctx context.Context, interval time.Duration, onStep func(progress int)) error {
	if interval <= 0 {
		interval = DefaultTick
	}
	s.Start()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Stop()
			return ctx.Err()
		case <-ticker.C:
			progress, done := s.Step()
			if done {
				return nil
			}
			if onStep != nil {
				onStep(progress)
			}
		}
	}
}
