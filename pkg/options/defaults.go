package options

// DefaultDataDir is the directory used when no WithDataDir option is given.
const DefaultDataDir = "./rivulet-data"

var defaultOptions = Options{
	DataDir: DefaultDataDir,
}

// NewDefaultOptions returns the default configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}
