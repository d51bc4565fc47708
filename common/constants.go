package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// FixedStep is the physics timestep in seconds. Every world step uses it
	// regardless of the frame's elapsed time.
	FixedStep = 1.0 / 60.0

	// DefaultGravity is in pixels per second squared, +Y pointing down.
	DefaultGravity = 500.0

	DefaultIterations = 20
)
