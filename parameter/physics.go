package parameter

// Field forces
const (
	// FieldConcaveFactor scales the force pulling the ball toward the center line
	FieldConcaveFactor = 0.55

	// FieldFriction is the max force of the planar motors emulating rolling friction
	FieldFriction = 0.018
)

// Surface tags
const (
	BallFriction       = 0.0
	BallRestitution    = 0.5
	PenguinFriction    = 0.0
	PenguinRestitution = -0.5
)

// Kickoff
const (
	// KickoffSpeedSq is the squared speed under which a centered ball is kicked off again
	KickoffSpeedSq = 0.0025

	// KickoffCenterDist is the max lateral distance from center for an automatic kickoff
	KickoffCenterDist = 0.05

	KickoffForceX = 100.0
	KickoffForceY = 1000.0
)

// Hard turn
const (
	// HardTurnSteps is the number of simulation steps a hard turn overrides rotation
	HardTurnSteps = 30

	// HardTurnTorquePerPenguin scales motor max torque and the initial kick with penguin count
	HardTurnTorquePerPenguin = 25.0

	// HardTurnVelocity is the hinge motor target angular velocity, rad/s
	HardTurnVelocity = 12.0
)

// Solver
const (
	// StopERP is the fraction of a joint stop violation corrected per step
	StopERP = 0.2

	// ContactERP is the fraction of contact penetration corrected per step
	ContactERP = 0.8

	// ContactSlop is the tolerated penetration depth, in world units
	ContactSlop = 0.001

	// ContactIterations is the number of sequential impulse passes per step
	ContactIterations = 4

	// BounceVelocity is the minimum approach speed for restitution to apply
	BounceVelocity = 0.01

	// HashCellSize is the broad phase cell size, in world units
	HashCellSize = 0.25

	// DefaultInertia is the moment of inertia of bodies created without explicit mass
	DefaultInertia = 1.0
)
