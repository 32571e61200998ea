package adapter

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "mklinkdef.dev/pkg/mklinkdef/internal/model"
)

func TestLocalSourceFSAdapter_ListFiles(t *testing.T) {
	t.Run("skips directories", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "Cut.h"), "class Cut;\n")
		writeTestFile(t, filepath.Join(root, "notes.txt"), "x\n")
		mustMkdir(t, filepath.Join(root, "detail.h"))

		names, err := adapter.ListFiles(m.Path(root))
		require.NoError(t, err)

		sort.Strings(names)
		assert.Equal(t, []string{"Cut.h", "notes.txt"}, names)
	})

	t.Run("missing directory", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		_, err := adapter.ListFiles(m.Path(filepath.Join(t.TempDir(), "absent")))
		require.Error(t, err)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestLocalSourceFSAdapter_WriteFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	path := filepath.Join(t.TempDir(), "obj", "LinkDef.h")

	require.NoError(t, adapter.WriteFile(m.Path(path), []byte("first version\n"), 0o644))
	require.NoError(t, adapter.WriteFile(m.Path(path), []byte("second\n"), 0o644))

	got, err := adapter.ReadFile(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(got))
}

func TestLocalSourceFSAdapter_RemoveIfExists(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "dict_rdict.pcm")
	writeTestFile(t, path, "pcm")

	require.NoError(t, adapter.RemoveIfExists(m.Path(path)))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, adapter.RemoveIfExists(m.Path(path)), "second removal must be a no-op")
}

func TestLocalSourceFSAdapter_CopyFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	src := filepath.Join(root, "src", "Dict_rdict.pcm")
	dst := filepath.Join(root, "lib", "slc7_amd64_gcc700", "Dict_rdict.pcm")
	writeTestFile(t, src, "\x00\x01binary")

	require.NoError(t, adapter.CopyFile(m.Path(src), m.Path(dst)))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "\x00\x01binary", string(got))

	err = adapter.CopyFile(m.Path(filepath.Join(root, "missing")), m.Path(dst))
	require.Error(t, err)
}

func TestLocalSourceFSAdapter_RealPath(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	target := filepath.Join(root, "interface")
	mustMkdir(t, target)

	link := filepath.Join(root, "inc")
	require.NoError(t, os.Symlink(target, link))

	got, err := adapter.RealPath(m.Path(link))
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, m.Path(want), got)
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	mustMkdir(t, filepath.Dir(path))

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}
