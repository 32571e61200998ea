package model

// HostVersion is the integer major component of the host release.
type HostVersion int

// Host version thresholds for path conventions.
const (
	// ModernLayoutVersion is the first host release using the modern
	// descriptor location.
	ModernLayoutVersion HostVersion = 9
	// SelfDictionaryVersion is the first host release that builds and
	// installs the dictionary itself.
	SelfDictionaryVersion HostVersion = 10
)

// OutputPathSet is computed once per invocation.
type OutputPathSet struct {
	HeaderDir     Path
	Descriptor    Path
	IncludePrefix string
	// BuildFile is empty in standalone mode.
	BuildFile Path
}

// Resolution is the outcome of mode resolution.
type Resolution struct {
	Mode    Mode
	Version HostVersion
	Paths   OutputPathSet
	// Rebuild is true when the dictionary has to be compiled and relocated
	// by this tool.
	Rebuild bool
}

// ExternalArtifact locates the compiled dictionary metadata before and after
// relocation.
type ExternalArtifact struct {
	DictSource  Path
	Source      Path
	Destination Path
}

// Step identifies a pipeline stage in progress reports and errors.
type Step string

// Pipeline steps.
const (
	StepResolve    Step = "resolve"
	StepScan       Step = "scan"
	StepDescriptor Step = "descriptor"
	StepBuildFile  Step = "build-file"
	StepRebuild    Step = "rebuild"
)
