// Package renderer draws the particle cloud.
package renderer

import (
	_ "embed"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/camera"
	"github.com/pthm-cable/nebula/coupling"
	"github.com/pthm-cable/nebula/shapes"
)

//go:embed shaders/points.vs
var pointsVS string

//go:embed shaders/points.fs
var pointsFS string

const (
	nearPlane = 0.1
	farPlane  = 1000.0
)

// PointCloud renders a PointBuffer as camera-facing soft discs. Gesture
// displacement happens in the vertex shader; positions are uploaded as-is.
type PointCloud struct {
	shader rl.Shader

	diffusionLoc  int32
	colorLoc      int32
	noisePhaseLoc int32
	pointSizeLoc  int32
	paramsLoc     int32
	modelLoc      int32
	viewLoc       int32
	projectionLoc int32

	pointSize   float32
	batchSize   int
	initialized bool
}

// NewPointCloud creates a point cloud renderer. batchSize is the number of
// quads submitted before the render batch is flushed.
func NewPointCloud(pointSize float32, batchSize int) *PointCloud {
	if batchSize <= 0 {
		batchSize = 2048
	}
	return &PointCloud{
		pointSize: pointSize,
		batchSize: batchSize,
	}
}

// Init compiles the shader (must be called after raylib window is created).
func (p *PointCloud) Init() {
	if p.initialized {
		return
	}

	p.shader = rl.LoadShaderFromMemory(pointsVS, pointsFS)
	p.diffusionLoc = rl.GetShaderLocation(p.shader, "uHandDistance")
	p.colorLoc = rl.GetShaderLocation(p.shader, "uColor")
	p.noisePhaseLoc = rl.GetShaderLocation(p.shader, "uNoisePhase")
	p.pointSizeLoc = rl.GetShaderLocation(p.shader, "uPointSize")
	p.paramsLoc = rl.GetShaderLocation(p.shader, "uParams")
	p.modelLoc = rl.GetShaderLocation(p.shader, "uModel")
	p.viewLoc = rl.GetShaderLocation(p.shader, "uView")
	p.projectionLoc = rl.GetShaderLocation(p.shader, "uProjection")

	if p.modelLoc < 0 || p.viewLoc < 0 || p.projectionLoc < 0 {
		slog.Warn("point shader is missing transform uniforms",
			"model", p.modelLoc, "view", p.viewLoc, "projection", p.projectionLoc)
	}

	// Static uniforms
	rl.SetShaderValue(p.shader, p.pointSizeLoc, []float32{p.pointSize}, rl.ShaderUniformFloat)

	p.initialized = true
}

// Draw renders positions with the frame's uniforms. model is the cloud's
// rotation, aspect the viewport width over height.
func (p *PointCloud) Draw(positions shapes.PointBuffer, u coupling.Uniforms, model rl.Matrix, cam rl.Camera3D, aspect float32) {
	if !p.initialized {
		p.Init()
	}

	view := rl.GetCameraMatrix(cam)
	projection := rl.MatrixPerspective(cam.Fovy*rl.Deg2rad, aspect, nearPlane, farPlane)

	rl.SetShaderValue(p.shader, p.diffusionLoc, []float32{u.Diffusion}, rl.ShaderUniformFloat)
	rl.SetShaderValue(p.shader, p.colorLoc, u.Color[:], rl.ShaderUniformVec3)
	// Time reaches the shader only as the wrapped noise phase
	rl.SetShaderValue(p.shader, p.noisePhaseLoc, []float32{u.NoisePhase}, rl.ShaderUniformFloat)
	rl.SetShaderValue(p.shader, p.paramsLoc, []float32{
		u.Params.DiffusionScale,
		u.Params.SizeScale,
		u.Params.NoiseAmplitude,
		u.Params.NoiseFrequency,
	}, rl.ShaderUniformVec4)
	rl.SetShaderValueMatrix(p.shader, p.modelLoc, model)
	rl.SetShaderValueMatrix(p.shader, p.viewLoc, view)
	rl.SetShaderValueMatrix(p.shader, p.projectionLoc, projection)

	rl.BeginMode3D(cam)
	rl.BeginShaderMode(p.shader)
	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()

	// Every corner carries the particle centre; the texcoord tells the
	// vertex shader which way to expand.
	rl.Begin(rl.Quads)
	n := positions.Count()
	for i := 0; i < n; i++ {
		x, y, z := positions.At(i)
		rl.TexCoord2f(0, 0)
		rl.Vertex3f(x, y, z)
		rl.TexCoord2f(1, 0)
		rl.Vertex3f(x, y, z)
		rl.TexCoord2f(1, 1)
		rl.Vertex3f(x, y, z)
		rl.TexCoord2f(0, 1)
		rl.Vertex3f(x, y, z)

		if (i+1)%p.batchSize == 0 {
			rl.End()
			rl.DrawRenderBatchActive()
			rl.Begin(rl.Quads)
		}
	}
	rl.End()
	rl.DrawRenderBatchActive()

	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
	rl.EndBlendMode()
	rl.EndShaderMode()
	rl.EndMode3D()
}

// Unload frees resources.
func (p *PointCloud) Unload() {
	if p.initialized {
		rl.UnloadShader(p.shader)
		p.initialized = false
	}
}

// ModelMatrix returns the cloud's auto-rotation at time t, spinning rotY
// radians per second about y and rotZ about z.
func ModelMatrix(t, rotY, rotZ float32) rl.Matrix {
	return rl.MatrixMultiply(rl.MatrixRotateZ(t*rotZ), rl.MatrixRotateY(t*rotY))
}

// Camera3D converts the orbit camera into a raylib camera looking at the origin.
func Camera3D(c *camera.Camera) rl.Camera3D {
	x, y, z := c.Position()
	return rl.NewCamera3D(
		rl.NewVector3(x, y, z),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		c.Fovy,
		rl.CameraPerspective,
	)
}
