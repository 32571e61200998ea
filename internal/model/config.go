package model

import "time"

// Mode selects between a standalone build and one integrated into a host
// project.
type Mode int

const (
	// Standalone writes the descriptor into the project's own build output.
	Standalone Mode = iota
	// Integrated adapts paths to the host build system and writes a build
	// description next to the sources.
	Integrated
)

func (md Mode) String() string {
	if md == Integrated {
		return "integrated"
	}

	return "standalone"
}

// Config is resolved once at startup and passed explicitly to every step.
type Config struct {
	Mode       Mode
	ProjectDir Path

	// Host environment, only consulted in integrated mode.
	HostVersion string
	InstallRoot Path
	Arch        string

	DictionaryName string
	CompilerBin    string
	IncludeHelper  string

	// Timeout bounds each external process. Zero means no bound.
	Timeout time.Duration
}
