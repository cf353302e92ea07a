package projection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DragGain converts pointer delta to degrees.
	DragGain = 0.5
	// AutoRotateStep is the yaw advance in degrees per tick.
	AutoRotateStep = 0.5
)

// Rotation is pitch about the horizontal axis and yaw about the vertical
// axis, both in degrees within [0, 360).
type Rotation struct {
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func (r Rotation) Normalize() Rotation {
	return Rotation{Pitch: wrapDegrees(r.Pitch), Yaw: wrapDegrees(r.Yaw)}
}

// Add applies a delta in degrees and wraps the result.
func (r Rotation) Add(dPitch, dYaw float64) Rotation {
	return Rotation{Pitch: r.Pitch + dPitch, Yaw: r.Yaw + dYaw}.Normalize()
}

// Matrix is the combined yaw-then-pitch transform. The yaw term is negated
// so positive yaw moves +x towards +z.
func (r Rotation) Matrix() mgl64.Mat3 {
	pitch := mgl64.Rotate3DX(mgl64.DegToRad(r.Pitch))
	yaw := mgl64.Rotate3DY(-mgl64.DegToRad(r.Yaw))
	return pitch.Mul3(yaw)
}

func (r Rotation) Apply(v mgl64.Vec3) mgl64.Vec3 {
	return r.Matrix().Mul3x1(v)
}
