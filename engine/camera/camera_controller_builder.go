package camera

// CameraControllerBuilderOption is a functional option for configuring a
// cameraControllerImpl.
type CameraControllerBuilderOption func(*cameraControllerImpl)

// WithSpeed sets the per-update displacement magnitude in world units.
//
// Parameters:
//   - speed: the movement speed
//
// Returns:
//   - CameraControllerBuilderOption: a function that sets the speed
func WithSpeed(speed float32) CameraControllerBuilderOption {
	return func(cc *cameraControllerImpl) {
		cc.speed = speed
	}
}
