package constant

// Platform identifiers compared against runtime.GOOS when picking binary names and install hints.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)
