package coupling

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/nebula/shapes"
)

// Displace mirrors the vertex shader: p is pushed outward along its own
// direction by Diffusion*DiffusionScale, then a sine ripple along x is added
// to every axis. The stored buffer is never modified.
func Displace(p r3.Vec, u Uniforms) r3.Vec {
	d := float64(u.Diffusion)
	if d == 0 {
		return p
	}

	out := p
	if n := r3.Norm(p); n > 0 {
		out = r3.Add(out, r3.Scale(d*float64(u.Params.DiffusionScale), r3.Unit(p)))
	}

	noise := math.Sin(float64(u.NoisePhase)+p.X*float64(u.Params.NoiseFrequency)) *
		float64(u.Params.NoiseAmplitude) * d
	return r3.Add(out, r3.Vec{X: noise, Y: noise, Z: noise})
}

// PointScale is the factor applied to the base point size.
func PointScale(u Uniforms) float32 {
	return 1 + u.Diffusion*u.Params.SizeScale
}

// DisplacedRadius returns the largest distance from the origin of any point
// in buf after displacement. Headless runs log it in place of a frame.
func DisplacedRadius(buf shapes.PointBuffer, u Uniforms) float64 {
	var far float64
	for i := 0; i < buf.Count(); i++ {
		x, y, z := buf.At(i)
		p := Displace(r3.Vec{X: float64(x), Y: float64(y), Z: float64(z)}, u)
		if n := r3.Norm(p); n > far {
			far = n
		}
	}
	return far
}
