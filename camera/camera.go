// Package camera provides an orbit camera around the point cloud.
package camera

import (
	"math"

	"github.com/pthm-cable/nebula/config"
)

// maxPitch keeps the camera off the poles, where the up vector degenerates.
const maxPitch = math.Pi/2 - 0.01

// Camera orbits the origin on a sphere of radius Distance.
// It holds no raylib state; the renderer converts it each frame.
type Camera struct {
	// Orbit angles in radians. Yaw 0 looks down -z from +z.
	Yaw   float32 `inspect:"angle"`
	Pitch float32 `inspect:"angle"`

	// Distance from the origin
	Distance float32 `inspect:"label,fmt:%.2f"`

	// Zoom constraints
	MinDistance float32 `inspect:"skip"`
	MaxDistance float32 `inspect:"skip"`

	// Vertical field of view in degrees
	Fovy float32 `inspect:"skip"`

	// AutoRotate is the yaw speed in radians per second (0 = off)
	AutoRotate float32 `inspect:"label,fmt:%.2f"`

	home struct{ yaw, pitch, distance float32 }
}

// New creates a camera at the given distance, clamped to [minDist, maxDist].
func New(distance, minDist, maxDist, fovy float32) *Camera {
	if maxDist < minDist {
		minDist, maxDist = maxDist, minDist
	}
	c := &Camera{
		Distance:    clamp(distance, minDist, maxDist),
		MinDistance: minDist,
		MaxDistance: maxDist,
		Fovy:        fovy,
	}
	c.home.distance = c.Distance
	return c
}

// NewFromConfig builds a camera from the camera config section.
func NewFromConfig(cfg config.CameraConfig) *Camera {
	c := New(float32(cfg.Distance), float32(cfg.MinDistance), float32(cfg.MaxDistance), float32(cfg.Fovy))
	c.AutoRotate = float32(cfg.AutoRotate)
	c.Pitch = clamp(float32(cfg.Pitch), -maxPitch, maxPitch)
	c.home.pitch = c.Pitch
	return c
}

// Update advances the auto-rotation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.AutoRotate == 0 || dt <= 0 {
		return
	}
	c.Yaw = mod(c.Yaw+c.AutoRotate*dt, 2*math.Pi)
}

// Orbit rotates the camera by the given angles in radians.
func (c *Camera) Orbit(dyaw, dpitch float32) {
	c.Yaw = mod(c.Yaw+dyaw, 2*math.Pi)
	c.Pitch = clamp(c.Pitch+dpitch, -maxPitch, maxPitch)
}

// SetDistance sets the orbit radius, clamped to min/max.
func (c *Camera) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy divides the distance by factor, so factors above 1 move closer.
func (c *Camera) ZoomBy(factor float32) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// Reset returns the camera to its initial orbit.
func (c *Camera) Reset() {
	c.Yaw = c.home.yaw
	c.Pitch = c.home.pitch
	c.Distance = c.home.distance
}

// Position returns the eye position in world coordinates.
func (c *Camera) Position() (x, y, z float32) {
	sy, cy := math.Sincos(float64(c.Yaw))
	sp, cp := math.Sincos(float64(c.Pitch))
	d := float64(c.Distance)
	return float32(d * cp * sy), float32(d * sp), float32(d * cp * cy)
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
