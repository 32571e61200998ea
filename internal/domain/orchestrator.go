package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"mklinkdef.dev/pkg/mklinkdef/internal/adapter"
	m "mklinkdef.dev/pkg/mklinkdef/internal/model"
)

const (
	dictSourceSuffix   = ".cc"
	dictArtifactSuffix = "_rdict.pcm"
	includeDirQuery    = "--incdir"
)

// Orchestrator compiles the dictionary for hosts that do not do it themselves
// and moves the resulting metadata next to the installed libraries.
//
// Concurrent runs against the same architecture tag race on the destination
// file; nothing here locks it.
type Orchestrator interface {
	Rebuild(ctx context.Context, cfg m.Config, res m.Resolution) (m.ExternalArtifact, error)
}

type orchestrator struct {
	fsAdapter adapter.SourceFSAdapter
	runner    adapter.ProcessRunnerAdapter
}

// NewOrchestrator constructs an Orchestrator backed by the provided
// filesystem and process runner adapters.
func NewOrchestrator(fsAdapter adapter.SourceFSAdapter, runner adapter.ProcessRunnerAdapter) Orchestrator {
	return &orchestrator{
		fsAdapter: fsAdapter,
		runner:    runner,
	}
}

// ArtifactFor computes where the compiler writes its output and where the
// metadata file is installed.
func ArtifactFor(cfg m.Config, projectDir m.Path) m.ExternalArtifact {
	srcDir := filepath.Join(string(projectDir), legacyOutputDir)

	return m.ExternalArtifact{
		DictSource:  m.Path(filepath.Join(srcDir, cfg.DictionaryName+dictSourceSuffix)),
		Source:      m.Path(filepath.Join(srcDir, cfg.DictionaryName+dictArtifactSuffix)),
		Destination: m.Path(filepath.Join(string(cfg.InstallRoot), "lib", cfg.Arch, cfg.DictionaryName+dictArtifactSuffix)),
	}
}

func (o *orchestrator) Rebuild(ctx context.Context, cfg m.Config, res m.Resolution) (m.ExternalArtifact, error) {
	if err := ctx.Err(); err != nil {
		return m.ExternalArtifact{}, err
	}

	projectDir, err := filepath.Abs(string(cfg.ProjectDir))
	if err != nil {
		return m.ExternalArtifact{}, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	artifact := ArtifactFor(cfg, m.Path(projectDir))

	o.removeStale(artifact.Destination)

	incDir, err := o.queryIncludeDir(ctx, cfg)
	if err != nil {
		return artifact, err
	}

	if err := o.compile(ctx, cfg, res, artifact, incDir); err != nil {
		return artifact, err
	}

	if err := o.relocate(artifact); err != nil {
		return artifact, err
	}

	return artifact, nil
}

// removeStale drops a previously installed artifact. Failure is logged only.
func (o *orchestrator) removeStale(path m.Path) {
	if err := o.fsAdapter.RemoveIfExists(path); err != nil {
		slog.Warn("Failed to remove stale dictionary artifact", "path", path, "error", err)
	}
}

func (o *orchestrator) queryIncludeDir(ctx context.Context, cfg m.Config) (string, error) {
	code, out, err := o.runner.Run(ctx, cfg.IncludeHelper, includeDirQuery)
	if err != nil {
		slog.Error("Failed to run include path helper", "bin", cfg.IncludeHelper, "error", err)
		return "", fmt.Errorf("%w: %v", ErrIncludeHelperFailed, err)
	}

	if code != 0 {
		return "", fmt.Errorf("%w: %s %s exited with status %d", ErrIncludeHelperFailed, cfg.IncludeHelper, includeDirQuery, code)
	}

	return strings.TrimSpace(out), nil
}

func (o *orchestrator) compile(ctx context.Context, cfg m.Config, res m.Resolution, artifact m.ExternalArtifact, incDir string) error {
	args := []string{
		"-f", string(artifact.DictSource),
		"-I" + filepath.Join(string(cfg.InstallRoot), "src"),
		"-I" + incDir,
		string(res.Paths.Descriptor),
	}

	slog.Info("Compiling dictionary", "bin", cfg.CompilerBin, "args", strings.Join(args, " "))

	code, _, err := o.runner.Run(ctx, cfg.CompilerBin, args...)
	if err != nil {
		slog.Error("Failed to run dictionary compiler", "bin", cfg.CompilerBin, "error", err)
		return fmt.Errorf("%w: %v", ErrCompilerFailed, err)
	}

	if code != 0 {
		return fmt.Errorf("%w: %s exited with status %d", ErrCompilerFailed, cfg.CompilerBin, code)
	}

	return nil
}

func (o *orchestrator) relocate(artifact m.ExternalArtifact) error {
	if err := o.fsAdapter.CopyFile(artifact.Source, artifact.Destination); err != nil {
		slog.Error("Failed to install dictionary artifact", "src", artifact.Source, "dst", artifact.Destination, "error", err)
		return fmt.Errorf("failed to install dictionary artifact: %w", err)
	}

	if err := o.fsAdapter.RemoveIfExists(artifact.Source); err != nil {
		return fmt.Errorf("failed to remove compiled artifact: %w", err)
	}

	return nil
}
