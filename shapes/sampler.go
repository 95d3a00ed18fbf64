package shapes

import (
	"fmt"
	"math"
	"math/rand"
)

// Sampler-wide constants. Every draw is closed-form so sampling stays O(count).
const (
	heartScale     = 0.1
	heartThickness = 5.0

	flowerRadius = 2.0
	flowerPetals = 4.0

	ringedSphereRadius = 1.8
	ringedSphereBody   = 0.6 // Probability a point belongs to the sphere
	ringInner          = 2.5
	ringOuter          = 4.0
	ringJitter         = 0.1

	burstRadius = 3.0
)

// blob is one sphere of the stacked figure.
type blob struct {
	weight  float64
	radius  float64
	offsetY float64
}

// stackedBlobs are base, body and head, bottom to top.
var stackedBlobs = [...]blob{
	{weight: 0.5, radius: 2.0, offsetY: -1.5},
	{weight: 0.3, radius: 1.5, offsetY: 0},
	{weight: 0.2, radius: 0.8, offsetY: 1.5},
}

// pointFunc draws one point of a shape.
type pointFunc func(rng *rand.Rand) (x, y, z float64)

// samplers is the dispatch table keyed by Kind.
var samplers = [numKinds]pointFunc{
	Heart:         heartPoint,
	Flower:        flowerPoint,
	RingedSphere:  ringedSpherePoint,
	StackedFigure: stackedFigurePoint,
	Burst:         burstPoint,
}

// Sample draws count points from the distribution of kind.
// The returned buffer always holds exactly 3*count values; contents are
// redrawn from rng on every call.
func Sample(kind Kind, count int, rng *rand.Rand) (PointBuffer, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	buf := NewPointBuffer(count)
	if err := SampleInto(buf, kind, rng); err != nil {
		return nil, err
	}
	return buf, nil
}

// SampleInto fills buf in place with points drawn from kind.
func SampleInto(buf PointBuffer, kind Kind, rng *rand.Rand) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownShape, uint8(kind))
	}
	if buf.Count() == 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, 0)
	}
	point := samplers[kind]
	n := buf.Count()
	for i := 0; i < n; i++ {
		x, y, z := point(rng)
		buf.Set(i, float32(x), float32(y), float32(z))
	}
	return nil
}

// heartPoint samples the classic parametric heart outline, extruded along z.
func heartPoint(rng *rand.Rand) (x, y, z float64) {
	t := rng.Float64() * 2 * math.Pi
	u := rng.Float64()*2 - 1

	s := math.Sin(t)
	x = 16 * s * s * s
	y = 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
	z = u * heartThickness
	return x * heartScale, y * heartScale, z * heartScale
}

// flowerPoint samples a rose-modulated sphere. Negative radii fold petals
// through the origin.
func flowerPoint(rng *rand.Rand) (x, y, z float64) {
	phi := rng.Float64() * 2 * math.Pi
	theta := rng.Float64() * math.Pi
	sinTheta := math.Sin(theta)
	r := flowerRadius * math.Sin(flowerPetals*phi) * sinTheta

	x = r * sinTheta * math.Cos(phi)
	y = r * sinTheta * math.Sin(phi)
	z = r * math.Cos(theta)
	return x, y, z
}

// ringedSpherePoint mixes a spherical body with a flat ring around it.
func ringedSpherePoint(rng *rand.Rand) (x, y, z float64) {
	if rng.Float64() < ringedSphereBody {
		return spherePoint(rng, ringedSphereRadius)
	}
	angle := rng.Float64() * 2 * math.Pi
	radius := ringInner + rng.Float64()*(ringOuter-ringInner)
	x = math.Cos(angle) * radius
	y = (rng.Float64() - 0.5) * 2 * ringJitter
	z = math.Sin(angle) * radius
	return x, y, z
}

// stackedFigurePoint picks a blob by weight, then a point on it.
func stackedFigurePoint(rng *rand.Rand) (x, y, z float64) {
	part := rng.Float64()
	b := stackedBlobs[len(stackedBlobs)-1]
	acc := 0.0
	for _, candidate := range stackedBlobs {
		acc += candidate.weight
		if part < acc {
			b = candidate
			break
		}
	}
	x, y, z = spherePoint(rng, b.radius)
	return x, y + b.offsetY, z
}

// burstPoint fills a ball with a square-root radial draw, which biases
// density toward the shell.
func burstPoint(rng *rand.Rand) (x, y, z float64) {
	phi := rng.Float64() * 2 * math.Pi
	cosTheta := rng.Float64()*2 - 1
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
	r := burstRadius * math.Sqrt(rng.Float64())

	x = r * sinTheta * math.Cos(phi)
	y = r * sinTheta * math.Sin(phi)
	z = r * cosTheta
	return x, y, z
}

// spherePoint returns a uniformly distributed point on a sphere of radius r
// using inverse-transform sampling of the polar angle.
func spherePoint(rng *rand.Rand, r float64) (x, y, z float64) {
	theta := 2 * math.Pi * rng.Float64()
	phi := math.Acos(2*rng.Float64() - 1)
	sinPhi := math.Sin(phi)

	x = r * sinPhi * math.Cos(theta)
	y = r * sinPhi * math.Sin(theta)
	z = r * math.Cos(phi)
	return x, y, z
}
