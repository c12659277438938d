package scene

// DefaultMaximumDepth bounds the number of bounces per path
const DefaultMaximumDepth = 50

// Configuration holds render settings shared by every ray of a scene
type Configuration struct {
	MaximumDepth int
}

// DefaultConfiguration returns the standard settings
func DefaultConfiguration() Configuration {
	return Configuration{MaximumDepth: DefaultMaximumDepth}
}
