package cmu

// controller backs SystemCoreClock. Target code registers it at startup.
var controller *Controller

// SetController registers the controller whose core clock is reported by
// SystemCoreClock.
func SetController(c *Controller) {
	controller = c
}

// MustController returns the registered controller or panics if missing.
func MustController() *Controller {
	if controller == nil {
		panic("cmu controller not configured")
	}
	return controller
}

// SystemCoreClock returns the core clock frequency of the registered
// controller, or 0 before one is registered. Delay loops, baud rate and
// tick calculations read it after every reconfiguration.
func SystemCoreClock() uint32 {
	if controller == nil {
		return 0
	}
	return controller.coreClock
}
