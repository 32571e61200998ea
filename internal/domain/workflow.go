package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pmezard/go-difflib/difflib"

	"mklinkdef.dev/pkg/mklinkdef/internal/adapter"
	"mklinkdef.dev/pkg/mklinkdef/internal/controller"
	m "mklinkdef.dev/pkg/mklinkdef/internal/model"
)

const generatedFilePerm = 0o644

// Workflow runs the descriptor pipeline for the CLI commands.
type Workflow interface {
	// Generate resolves paths, scans headers, writes the descriptor and, in
	// integrated mode, the build description and relocated dictionary.
	Generate(ctx context.Context, cfg m.Config) error
	// List shows the headers and the link lines they produce.
	List(ctx context.Context, cfg m.Config) error
	// Diff compares the descriptor on disk with a fresh rendering and
	// reports whether they differ. Nothing is written.
	Diff(ctx context.Context, cfg m.Config) (bool, error)
}

type workflow struct {
	fsAdapter    adapter.SourceFSAdapter
	ui           controller.UI
	resolver     Resolver
	scanner      Scanner
	orchestrator Orchestrator
}

// NewWorkflow wires the pipeline steps together.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	ui controller.UI,
	resolver Resolver,
	scanner Scanner,
	orchestrator Orchestrator,
) Workflow {
	return &workflow{
		fsAdapter:    fsAdapter,
		ui:           ui,
		resolver:     resolver,
		scanner:      scanner,
		orchestrator: orchestrator,
	}
}

func (w *workflow) Generate(ctx context.Context, cfg m.Config) error {
	res, headers, err := w.prepare(ctx, cfg)
	if err != nil {
		return err
	}

	if err := w.writeDescriptor(ctx, res, headers); err != nil {
		return err
	}

	if err := w.writeBuildFile(ctx, res); err != nil {
		return err
	}

	return w.rebuild(ctx, cfg, res)
}

func (w *workflow) List(ctx context.Context, cfg m.Config) error {
	res, headers, err := w.prepare(ctx, cfg)
	if err != nil {
		return err
	}

	return w.ui.DisplayHeaders(ctx, res, headers)
}

func (w *workflow) Diff(ctx context.Context, cfg m.Config) (bool, error) {
	res, headers, err := w.prepare(ctx, cfg)
	if err != nil {
		return false, err
	}

	current, err := w.fsAdapter.ReadFile(res.Paths.Descriptor)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, w.fail(ctx, m.StepDescriptor, fmt.Errorf("failed to read descriptor: %w", err))
	}

	diff, err := DescriptorDiff(res.Paths.Descriptor, current, RenderDescriptor(res, headers))
	if err != nil {
		return false, w.fail(ctx, m.StepDescriptor, err)
	}

	w.ui.DisplayDiff(ctx, res.Paths.Descriptor, diff)

	return diff != "", nil
}

// DescriptorDiff renders a unified diff from the on-disk descriptor to the
// freshly generated one. An empty string means they are identical.
func DescriptorDiff(path m.Path, current, generated []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(generated)),
		FromFile: string(path),
		ToFile:   string(path) + " (generated)",
		Context:  3,
	})
}

// prepare runs the steps shared by every command. Nothing is written here, so
// configuration errors always surface before any output exists.
func (w *workflow) prepare(ctx context.Context, cfg m.Config) (m.Resolution, []m.HeaderFile, error) {
	if err := ctx.Err(); err != nil {
		return m.Resolution{}, nil, err
	}

	res, err := w.resolver.Resolve(cfg)
	if err != nil {
		return m.Resolution{}, nil, w.fail(ctx, m.StepResolve, err)
	}

	w.ui.StepCompleted(ctx, m.StepResolve, fmt.Sprintf("%s mode, descriptor %s", res.Mode, res.Paths.Descriptor))

	headers, err := w.scanner.Scan(res.Paths.HeaderDir)
	if err != nil {
		return m.Resolution{}, nil, w.fail(ctx, m.StepScan, err)
	}

	w.ui.StepCompleted(ctx, m.StepScan, fmt.Sprintf("%d header(s) in %s", len(headers), res.Paths.HeaderDir))

	return res, headers, nil
}

func (w *workflow) writeDescriptor(ctx context.Context, res m.Resolution, headers []m.HeaderFile) error {
	content := RenderDescriptor(res, headers)

	if err := w.fsAdapter.WriteFile(res.Paths.Descriptor, content, generatedFilePerm); err != nil {
		slog.Error("Failed to write descriptor", "path", res.Paths.Descriptor, "error", err)
		return w.fail(ctx, m.StepDescriptor, fmt.Errorf("failed to write descriptor: %w", err))
	}

	slog.Info("Wrote descriptor", "path", res.Paths.Descriptor, "headers", len(headers))
	w.ui.StepCompleted(ctx, m.StepDescriptor, string(res.Paths.Descriptor))

	return nil
}

func (w *workflow) writeBuildFile(ctx context.Context, res m.Resolution) error {
	if res.Mode != m.Integrated {
		w.ui.StepSkipped(ctx, m.StepBuildFile, "standalone mode")
		return nil
	}

	if err := w.fsAdapter.WriteFile(res.Paths.BuildFile, []byte(BuildDescription), generatedFilePerm); err != nil {
		slog.Error("Failed to write build description", "path", res.Paths.BuildFile, "error", err)
		return w.fail(ctx, m.StepBuildFile, fmt.Errorf("failed to write build description: %w", err))
	}

	w.ui.StepCompleted(ctx, m.StepBuildFile, string(res.Paths.BuildFile))

	return nil
}

func (w *workflow) rebuild(ctx context.Context, cfg m.Config, res m.Resolution) error {
	if !res.Rebuild {
		reason := "standalone mode"
		if res.Mode == m.Integrated {
			reason = fmt.Sprintf("host version %d builds its own dictionary", res.Version)
		}

		w.ui.StepSkipped(ctx, m.StepRebuild, reason)

		return nil
	}

	w.ui.StepStarted(ctx, m.StepRebuild, "compiling dictionary with "+cfg.CompilerBin)

	artifact, err := w.orchestrator.Rebuild(ctx, cfg, res)
	if err != nil {
		return w.fail(ctx, m.StepRebuild, err)
	}

	slog.Info("Installed dictionary artifact", "path", artifact.Destination)
	w.ui.StepCompleted(ctx, m.StepRebuild, string(artifact.Destination))

	return nil
}

func (w *workflow) fail(ctx context.Context, step m.Step, err error) error {
	slog.Error("Step failed", "step", step, "error", err)
	w.ui.StepFailed(ctx, step, err)

	return stepErr(step, err)
}
