package game

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/coupling"
	"github.com/pthm-cable/nebula/shapes"
)

// ErrCountOutOfRange is returned for particle counts outside the configured bounds.
var ErrCountOutOfRange = errors.New("particle count out of range")

// Selection is the user's choice of shape, colour and particle count.
type Selection struct {
	Shape shapes.Kind
	Color string
	Count int
}

// Validate checks the selection against the particle bounds before it
// reaches the sampler.
func (s Selection) Validate(p config.ParticlesConfig) error {
	if !s.Shape.Valid() {
		return fmt.Errorf("%w: %v", shapes.ErrUnknownShape, s.Shape)
	}
	if s.Count < p.MinCount || s.Count > p.MaxCount {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrCountOutOfRange, s.Count, p.MinCount, p.MaxCount)
	}
	if _, err := coupling.ParseHex(s.Color); err != nil {
		return err
	}
	return nil
}

// InitialSelection reads the starting selection from config.
func InitialSelection(p config.ParticlesConfig) (Selection, error) {
	kind, err := shapes.ParseKind(p.InitialShape)
	if err != nil {
		return Selection{}, fmt.Errorf("initial shape: %w", err)
	}
	sel := Selection{Shape: kind, Color: p.InitialColor, Count: p.InitialCount}
	if err := sel.Validate(p); err != nil {
		return Selection{}, fmt.Errorf("initial selection: %w", err)
	}
	return sel, nil
}
