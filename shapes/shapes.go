// Package shapes samples point clouds from the fixed shape catalog.
package shapes

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCount is returned when a non-positive particle count is requested.
	ErrInvalidCount = errors.New("particle count must be positive")
	// ErrUnknownShape is returned for a Kind outside the catalog.
	ErrUnknownShape = errors.New("unknown shape")
)

// Kind identifies a shape in the catalog.
type Kind uint8

const (
	Heart Kind = iota
	Flower
	RingedSphere
	StackedFigure
	Burst

	numKinds
)

var kindNames = [numKinds]string{
	Heart:         "heart",
	Flower:        "flower",
	RingedSphere:  "ringed_sphere",
	StackedFigure: "stacked_figure",
	Burst:         "burst",
}

// kindLabels are the short button labels shown in the overlay.
var kindLabels = [numKinds]string{
	Heart:         "Heart",
	Flower:        "Flower",
	RingedSphere:  "Saturn",
	StackedFigure: "Zen",
	Burst:         "Firework",
}

// Kinds returns the catalog in display order.
func Kinds() []Kind {
	return []Kind{Heart, Flower, RingedSphere, StackedFigure, Burst}
}

// Valid reports whether k is in the catalog.
func (k Kind) Valid() bool {
	return k < numKinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Label returns the display label for the overlay.
func (k Kind) Label() string {
	if !k.Valid() {
		return k.String()
	}
	return kindLabels[k]
}

// ParseKind resolves a shape name. Matching is case-insensitive and accepts
// the display labels as aliases.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer(" ", "_", "-", "_").Replace(name)
	for i := Kind(0); i < numKinds; i++ {
		if name == kindNames[i] || name == strings.ToLower(kindLabels[i]) {
			return i, nil
		}
	}
	switch name {
	case "zen_statue":
		return StackedFigure, nil
	case "ringedsphere":
		return RingedSphere, nil
	case "stackedfigure":
		return StackedFigure, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
