package domain

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mklinkdef.dev/pkg/mklinkdef/internal/adapter"
	adaptermocks "mklinkdef.dev/pkg/mklinkdef/internal/adapter/mocks"
	"mklinkdef.dev/pkg/mklinkdef/internal/controller"
	domainmocks "mklinkdef.dev/pkg/mklinkdef/internal/domain/mocks"
	m "mklinkdef.dev/pkg/mklinkdef/internal/model"
)

type workflowFixture struct {
	workflow Workflow
	runner   *adaptermocks.MockProcessRunnerAdapter
	out      *bytes.Buffer
	errOut   *bytes.Buffer
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	fsAdapter := adapter.NewLocalSourceFSAdapter()
	runner := adaptermocks.NewMockProcessRunnerAdapter(t)

	return &workflowFixture{
		workflow: NewWorkflow(
			fsAdapter,
			controller.NewSimpleUI(cmd, false),
			NewResolver(fsAdapter),
			NewScanner(fsAdapter),
			NewOrchestrator(fsAdapter, runner),
		),
		runner: runner,
		out:    out,
		errOut: errOut,
	}
}

// newProject lays out <tmp>/CMSSW_X/src/PandaAnalysis/multidraw with the
// given headers in both inc/ and interface/.
func newProject(t *testing.T, headers ...string) (base, project string) {
	t.Helper()

	base = filepath.Join(t.TempDir(), "CMSSW_X")
	project = filepath.Join(base, "src", "PandaAnalysis", "multidraw")

	for _, dir := range []string{"inc", "interface", "src"} {
		require.NoError(t, os.MkdirAll(filepath.Join(project, dir), 0o755))

		for _, h := range headers {
			require.NoError(t, os.WriteFile(filepath.Join(project, dir, h), []byte("#pragma once\n"), 0o644))
		}
	}

	require.NoError(t, os.WriteFile(filepath.Join(project, "inc", "notes.txt"), []byte("x"), 0o644))

	return base, project
}

func integratedConfig(base, project, version string) m.Config {
	return m.Config{
		Mode:           m.Integrated,
		ProjectDir:     m.Path(project),
		HostVersion:    version,
		InstallRoot:    m.Path(base),
		Arch:           "slc7_amd64_gcc700",
		DictionaryName: "MultiDrawDict",
		CompilerBin:    "rootcling",
		IncludeHelper:  "root-config",
	}
}

// expectRebuild makes the fake compiler drop a metadata file where the real
// one would.
func (f *workflowFixture) expectRebuild(project string) {
	f.runner.On("Run", mock.Anything, "root-config", []string{"--incdir"}).
		Return(0, "/opt/root/include\n", nil).Once()
	f.runner.On("Run", mock.Anything, "rootcling", mock.Anything).
		Run(func(args mock.Arguments) {
			pcm := filepath.Join(project, "src", "MultiDrawDict_rdict.pcm")
			_ = os.WriteFile(pcm, []byte("pcm-data"), 0o644)
		}).
		Return(0, "", nil).Once()
}

func TestWorkflow_Generate_Standalone(t *testing.T) {
	f := newWorkflowFixture(t)
	_, project := newProject(t, "Foo.h", "Bar.h", "TTreeFormulaCached.h")

	err := f.workflow.Generate(context.Background(), m.Config{Mode: m.Standalone, ProjectDir: m.Path(project)})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(project, "obj", "LinkDef.h"))
	require.NoError(t, err)

	realInc, err := filepath.EvalSymlinks(filepath.Join(project, "inc"))
	require.NoError(t, err)

	text := string(content)
	assert.Equal(t, 3, strings.Count(text, "#include "))
	assert.Contains(t, text, "#include \""+realInc+"/Foo.h\"")
	assert.Contains(t, text, "#pragma link C++ class TTreeFormulaCached;\n")
	assert.Contains(t, text, "#pragma link C++ class multidraw::Foo;\n")
	assert.Contains(t, text, "#pragma link C++ class multidraw::Bar;\n")
	assert.True(t, strings.HasSuffix(text, "#endif\n"))

	assert.NoFileExists(t, filepath.Join(project, "BuildFile.xml"))
	f.runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	assert.Contains(t, f.out.String(), "[skip rebuild] standalone mode")
}

func TestWorkflow_Generate_IntegratedLegacy(t *testing.T) {
	f := newWorkflowFixture(t)
	base, project := newProject(t, "Cut.h", "TTreeFormulaCached.h")
	f.expectRebuild(project)

	err := f.workflow.Generate(context.Background(), integratedConfig(base, project, "CMSSW_8_0_26"))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(project, "src", "LinkDef.h"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "#include \"PandaAnalysis/multidraw/interface/Cut.h\"\n")
	assert.Contains(t, string(content), "#pragma link C++ class TTreeFormulaCached+;\n")

	buildFile, err := os.ReadFile(filepath.Join(project, "BuildFile.xml"))
	require.NoError(t, err)
	assert.Equal(t, BuildDescription, string(buildFile))

	installed, err := os.ReadFile(filepath.Join(base, "lib", "slc7_amd64_gcc700", "MultiDrawDict_rdict.pcm"))
	require.NoError(t, err)
	assert.Equal(t, "pcm-data", string(installed))
	assert.NoFileExists(t, filepath.Join(project, "src", "MultiDrawDict_rdict.pcm"))
}

func TestWorkflow_Generate_IntegratedModern(t *testing.T) {
	f := newWorkflowFixture(t)
	base, project := newProject(t, "Cut.h")
	f.expectRebuild(project)

	stale := filepath.Join(base, "lib", "slc7_amd64_gcc700", "MultiDrawDict_rdict.pcm")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0o644))

	err := f.workflow.Generate(context.Background(), integratedConfig(base, project, "CMSSW_9_4_0"))
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(project, "interface", "LinkDef.h"))
	assert.NoFileExists(t, filepath.Join(project, "src", "LinkDef.h"))

	installed, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.Equal(t, "pcm-data", string(installed))
}

func TestWorkflow_Generate_IntegratedRecentHostSkipsRebuild(t *testing.T) {
	f := newWorkflowFixture(t)
	base, project := newProject(t, "Cut.h")

	err := f.workflow.Generate(context.Background(), integratedConfig(base, project, "CMSSW_10_2_5"))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(project, "interface", "LinkDef.h"))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "LinkDef.h\"", "descriptor must not include itself")

	assert.FileExists(t, filepath.Join(project, "BuildFile.xml"))
	f.runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	assert.Contains(t, f.out.String(), "host version 10 builds its own dictionary")
}

func TestWorkflow_Generate_RegeneratingSkipsOwnDescriptor(t *testing.T) {
	f := newWorkflowFixture(t)
	base, project := newProject(t, "Cut.h", "Reweight.h")
	cfg := integratedConfig(base, project, "CMSSW_10_2_5")

	require.NoError(t, f.workflow.Generate(context.Background(), cfg))
	first, err := os.ReadFile(filepath.Join(project, "interface", "LinkDef.h"))
	require.NoError(t, err)

	require.NoError(t, f.workflow.Generate(context.Background(), cfg))
	second, err := os.ReadFile(filepath.Join(project, "interface", "LinkDef.h"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, 2, strings.Count(string(second), "#include "))
}

func TestWorkflow_Generate_MissingHostVersionWritesNothing(t *testing.T) {
	f := newWorkflowFixture(t)
	base, project := newProject(t, "Cut.h")

	err := f.workflow.Generate(context.Background(), integratedConfig(base, project, ""))
	require.ErrorIs(t, err, ErrMissingHostVersion)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, m.StepResolve, stepErr.Step)

	for _, path := range []string{
		filepath.Join(project, "src", "LinkDef.h"),
		filepath.Join(project, "interface", "LinkDef.h"),
		filepath.Join(project, "obj", "LinkDef.h"),
		filepath.Join(project, "BuildFile.xml"),
	} {
		assert.NoFileExists(t, path)
	}

	assert.Contains(t, f.errOut.String(), "[failed resolve]")
}

func TestWorkflow_Generate_CompilerFailure(t *testing.T) {
	f := newWorkflowFixture(t)
	base, project := newProject(t, "Cut.h")

	f.runner.On("Run", mock.Anything, "root-config", mock.Anything).Return(0, "/opt/root/include", nil).Once()
	f.runner.On("Run", mock.Anything, "rootcling", mock.Anything).Return(2, "", nil).Once()

	err := f.workflow.Generate(context.Background(), integratedConfig(base, project, "CMSSW_9_4_0"))
	require.ErrorIs(t, err, ErrCompilerFailed)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, m.StepRebuild, stepErr.Step)

	// The descriptor is complete before the compiler runs.
	assert.FileExists(t, filepath.Join(project, "interface", "LinkDef.h"))
}

func TestWorkflow_Generate_MissingHeaderDir(t *testing.T) {
	f := newWorkflowFixture(t)
	project := t.TempDir()

	err := f.workflow.Generate(context.Background(), integratedConfig(project, project, "CMSSW_10_2_5"))
	require.ErrorIs(t, err, ErrHeaderDirMissing)
	assert.NoFileExists(t, filepath.Join(project, "BuildFile.xml"))
}

func TestWorkflow_List(t *testing.T) {
	f := newWorkflowFixture(t)
	_, project := newProject(t, "Cut.h", "TTreeFormulaCached.h")

	err := f.workflow.List(context.Background(), m.Config{Mode: m.Standalone, ProjectDir: m.Path(project)})
	require.NoError(t, err)

	out := f.out.String()
	assert.Contains(t, out, "multidraw::Cut")
	assert.Contains(t, out, "TTreeFormulaCached")
	assert.NoFileExists(t, filepath.Join(project, "obj", "LinkDef.h"))
}

func TestWorkflow_Diff(t *testing.T) {
	f := newWorkflowFixture(t)
	_, project := newProject(t, "Cut.h")
	cfg := m.Config{Mode: m.Standalone, ProjectDir: m.Path(project)}

	changed, err := f.workflow.Diff(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, changed, "missing descriptor differs from a fresh one")
	assert.NoFileExists(t, filepath.Join(project, "obj", "LinkDef.h"))

	require.NoError(t, f.workflow.Generate(context.Background(), cfg))

	f.out.Reset()
	changed, err = f.workflow.Diff(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Contains(t, f.out.String(), "is up to date")
}

func TestWorkflow_Generate_HandsResolutionToOrchestrator(t *testing.T) {
	base, project := newProject(t, "Cut.h", "TTreeFormulaCached.h")
	cfg := integratedConfig(base, project, "CMSSW_9_4_0")

	fsAdapter := adapter.NewLocalSourceFSAdapter()
	orch := domainmocks.NewMockOrchestrator(t)

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	wf := NewWorkflow(fsAdapter, controller.NewSimpleUI(cmd, false), NewResolver(fsAdapter), NewScanner(fsAdapter), orch)

	orch.On("Rebuild", mock.Anything, cfg, mock.MatchedBy(func(res m.Resolution) bool {
		// The descriptor must already be on disk when the compiler is started.
		_, err := os.Stat(string(res.Paths.Descriptor))
		return err == nil && res.Rebuild && res.Version == 9
	})).Return(m.ExternalArtifact{Destination: "/cmssw/lib/arch/MultiDrawDict_rdict.pcm"}, nil).Once()

	require.NoError(t, wf.Generate(context.Background(), cfg))
}
