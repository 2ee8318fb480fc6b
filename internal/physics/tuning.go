package physics

import "math"

// Epsilon guards the degenerate branches in segment and hull math. It is a
// compile-time constant because the standalone pair query carries no
// per-world state.
const Epsilon float32 = 0.0001

// Tuning collects the solver constants in one place so tests and the debug
// panel can override them per world.
type Tuning struct {
	Gravity        float32 // downward acceleration, world units/s^2
	StepHeight     float32 // highest ledge a grounded mover can climb
	StepProbes     int     // probe heights tested per step-up attempt
	GroundNormalY  float32 // minimum normal Y for a contact to count as ground
	StableSlopeDeg float32 // steepest slope the stabilizer holds on, degrees
}

// DefaultTuning returns the values the sandbox ships with.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:        1.0,
		StepHeight:     0.3,
		StepProbes:     10,
		GroundNormalY:  0.7,
		StableSlopeDeg: 45,
	}
}

// StableSlopeCos returns the ground-normal cosine of the stable slope
// limit. Normals with a larger Y keep the stabilizer engaged.
func (t Tuning) StableSlopeCos() float32 {
	return float32(math.Cos(float64(t.StableSlopeDeg) * math.Pi / 180))
}
