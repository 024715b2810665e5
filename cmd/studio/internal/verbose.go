package internal

import "os"

// IsVerbose checks if verbose mode is enabled via environment variable or flag.
// This is used for panic recovery, before cobra has parsed anything.
func IsVerbose() bool {
	if os.Getenv("STUDIO_VERBOSE") != "" {
		return true
	}

	for _, arg := range os.Args {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}

	return false
}
