// Package particles animates the live point cloud toward the selected shape.
package particles

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/nebula/shapes"
)

// DefaultSmoothing is the per-frame interpolation factor.
const DefaultSmoothing float32 = 0.05

// State describes whether the cloud is still converging on its target.
type State uint8

const (
	Stable State = iota
	Transitioning
)

func (s State) String() string {
	if s == Stable {
		return "stable"
	}
	return "transitioning"
}

// Animator owns the current and target buffers of the point cloud.
// It is not safe for concurrent use; the render loop owns it.
type Animator struct {
	rng       *rand.Rand
	smoothing float32

	shape   shapes.Kind
	count   int
	current shapes.PointBuffer
	target  shapes.PointBuffer
}

// New creates an empty animator. Select must be called before the first Advance
// produces anything visible.
func New(smoothing float32, rng *rand.Rand) *Animator {
	if smoothing <= 0 || smoothing > 1 {
		smoothing = DefaultSmoothing
	}
	return &Animator{
		rng:       rng,
		smoothing: smoothing,
	}
}

// Select applies a shape and count selection.
//
// A count change reallocates both buffers and seeds current with the new
// target so the cloud does not fly in from stale positions. A shape change
// alone replaces only the target; current keeps animating from where it is.
func (a *Animator) Select(kind shapes.Kind, count int) error {
	target, err := shapes.Sample(kind, count, a.rng)
	if err != nil {
		return fmt.Errorf("sampling %s: %w", kind, err)
	}

	if count != a.count || len(a.current) != len(target) {
		current := make(shapes.PointBuffer, len(target))
		copy(current, target)
		a.current = current
		a.count = count
	}
	a.target = target
	a.shape = kind
	return nil
}

// SetShape replaces the target with a fresh sample of kind at the current count.
func (a *Animator) SetShape(kind shapes.Kind) error {
	return a.Select(kind, a.count)
}

// SetCount resamples the current shape at a new count.
func (a *Animator) SetCount(count int) error {
	return a.Select(a.shape, count)
}

// Advance moves current one step toward target:
// current[i] += (target[i] - current[i]) * smoothing.
// The step is per frame, not scaled by elapsed time.
func (a *Animator) Advance() {
	n := len(a.current)
	if len(a.target) < n {
		n = len(a.target)
	}
	cur := a.current[:n]
	tgt := a.target[:n]
	f := a.smoothing
	for i := range cur {
		cur[i] += (tgt[i] - cur[i]) * f
	}
}

// View returns the live position buffer without copying. It is read-only,
// changes on every Advance and is replaced by a Select that changes the
// count, so it must not be kept across frames. Use Snapshot to keep one.
func (a *Animator) View() shapes.PointBuffer {
	return a.current
}

// Snapshot returns a copy of the current positions.
func (a *Animator) Snapshot() shapes.PointBuffer {
	out := make(shapes.PointBuffer, len(a.current))
	copy(out, a.current)
	return out
}

// Target returns the positions the cloud is converging on.
func (a *Animator) Target() shapes.PointBuffer {
	return a.target
}

// Shape returns the selected shape.
func (a *Animator) Shape() shapes.Kind {
	return a.shape
}

// Count returns the particle count.
func (a *Animator) Count() int {
	return a.count
}

// Smoothing returns the interpolation factor.
func (a *Animator) Smoothing() float32 {
	return a.smoothing
}

// Residual returns the largest per-coordinate distance between current and target.
func (a *Animator) Residual() float32 {
	n := len(a.current)
	if len(a.target) < n {
		n = len(a.target)
	}
	var worst float32
	for i := 0; i < n; i++ {
		d := a.target[i] - a.current[i]
		if d < 0 {
			d = -d
		}
		if d > worst {
			worst = d
		}
	}
	return worst
}

// State reports Stable once the residual drops below eps.
func (a *Animator) State(eps float32) State {
	if a.Residual() < eps {
		return Stable
	}
	return Transitioning
}
