package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"mklinkdef.dev/pkg/mklinkdef/internal/adapter"
	m "mklinkdef.dev/pkg/mklinkdef/internal/model"
)

// Project layout, relative to the project directory.
const (
	standaloneHeaderDir = "inc"
	integratedHeaderDir = "interface"
	standaloneOutputDir = "obj"
	legacyOutputDir     = "src"
	buildFileName       = "BuildFile.xml"
)

// Resolver turns a Config into the paths used by the rest of the pipeline.
type Resolver interface {
	Resolve(cfg m.Config) (m.Resolution, error)
}

type resolver struct {
	fsAdapter adapter.SourceFSAdapter
}

// NewResolver constructs a Resolver. The filesystem adapter is used to
// resolve the absolute header directory in standalone mode.
func NewResolver(fsAdapter adapter.SourceFSAdapter) Resolver {
	return &resolver{fsAdapter: fsAdapter}
}

func (r *resolver) Resolve(cfg m.Config) (m.Resolution, error) {
	projectDir, err := filepath.Abs(string(cfg.ProjectDir))
	if err != nil {
		return m.Resolution{}, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	if cfg.Mode == m.Integrated {
		return r.resolveIntegrated(cfg, projectDir)
	}

	return r.resolveStandalone(projectDir)
}

func (r *resolver) resolveStandalone(projectDir string) (m.Resolution, error) {
	headerDir := m.Path(filepath.Join(projectDir, standaloneHeaderDir))

	realDir, err := r.fsAdapter.RealPath(headerDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m.Resolution{}, fmt.Errorf("%w: %s", ErrHeaderDirMissing, headerDir)
		}

		return m.Resolution{}, fmt.Errorf("failed to resolve header directory: %w", err)
	}

	return m.Resolution{
		Mode: m.Standalone,
		Paths: m.OutputPathSet{
			HeaderDir:     headerDir,
			Descriptor:    m.Path(filepath.Join(projectDir, standaloneOutputDir, m.DescriptorFileName)),
			IncludePrefix: string(realDir),
		},
	}, nil
}

func (r *resolver) resolveIntegrated(cfg m.Config, projectDir string) (m.Resolution, error) {
	version, err := ParseHostVersion(cfg.HostVersion)
	if err != nil {
		return m.Resolution{}, err
	}

	res := m.Resolution{
		Mode:    m.Integrated,
		Version: version,
		Rebuild: version < m.SelfDictionaryVersion,
		Paths: m.OutputPathSet{
			HeaderDir:     m.Path(filepath.Join(projectDir, integratedHeaderDir)),
			IncludePrefix: IncludeRoot(projectDir) + "/" + integratedHeaderDir,
			BuildFile:     m.Path(filepath.Join(projectDir, buildFileName)),
		},
	}

	if version < m.ModernLayoutVersion {
		res.Paths.Descriptor = m.Path(filepath.Join(projectDir, legacyOutputDir, m.DescriptorFileName))
	} else {
		res.Paths.Descriptor = m.Path(filepath.Join(projectDir, integratedHeaderDir, m.DescriptorFileName))
	}

	if res.Rebuild {
		if strings.TrimSpace(string(cfg.InstallRoot)) == "" {
			return m.Resolution{}, ErrMissingInstallRoot
		}

		if strings.TrimSpace(cfg.Arch) == "" {
			return m.Resolution{}, ErrMissingArch
		}
	}

	slog.Debug("resolved integrated layout", "version", version, "descriptor", res.Paths.Descriptor, "rebuild", res.Rebuild)

	return res, nil
}

// ParseHostVersion extracts the second component of a release string such as
// "CMSSW_9_4_0" or "x.10.2". Components are separated by '.' or '_'.
func ParseHostVersion(raw string) (m.HostVersion, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrMissingHostVersion
	}

	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '.' || r == '_'
	})
	if len(parts) < 2 {
		return 0, fmt.Errorf("%w: %q has no second component", ErrInvalidHostVersion, raw)
	}

	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidHostVersion, raw, err)
	}

	return m.HostVersion(n), nil
}

// IncludeRoot keeps the last two elements of dir, which is how the host
// build system addresses a package below its source root.
func IncludeRoot(dir string) string {
	dir = strings.TrimRight(filepath.ToSlash(dir), "/")

	last := strings.LastIndex(dir, "/")
	if last < 0 {
		return dir
	}

	return dir[strings.LastIndex(dir[:last], "/")+1:]
}
