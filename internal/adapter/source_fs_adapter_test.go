package adapter

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/splint/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "main.rs"), "fn main() {}\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.rs"), "fn child() {}\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "child.rs")} {
			assert.Falsef(t, containsPath(visited, forbidden), "Walk() unexpectedly visited %s when recursive is false", forbidden)
		}

		assert.True(t, containsPath(visited, filepath.Join(root, "main.rs")), "Walk() did not visit top-level file")
	})

	t.Run("recursive visits nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "main.rs"), "fn main() {}\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.rs")
		writeTestFile(t, child, "fn child() {}\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		assert.True(t, containsPath(visited, child), "Walk() did not visit nested file when recursive")
	})
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "main.rs")
	content := "fn main() {\n    println!(\"hi\");\n}\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(m.Path(path))
	require.NoError(t, err)

	assert.Equal(t, content, string(got))
}

func TestLocalSourceFSAdapter_HashFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "main.rs")
	content := []byte("fn main() {}\n")
	writeTestBytes(t, path, content)

	expected := fmt.Sprintf("%x", sha256.Sum256(content))

	hash, err := adapter.HashFile(m.Path(path))
	require.NoError(t, err)

	assert.Equal(t, expected, hash)
	assert.Equal(t, expected, HashBytes(content))
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "main.rs")
	writeTestFile(t, path, "fn main() {}\n")

	info, err := adapter.FileInfo(m.Path(path))
	require.NoError(t, err)

	assert.False(t, info.IsDir(), "FileInfo() reported file as directory")

	dirInfo, err := adapter.FileInfo(m.Path(root))
	require.NoError(t, err)
	assert.True(t, dirInfo.IsDir(), "FileInfo() reported directory as file")
}

func TestLocalSourceFSAdapter_Get(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	exts := []string{".rs", ".go"}

	t.Run("recursive pattern walks the tree", func(t *testing.T) {
		chdirProject(t)

		files, err := adapter.Get([]m.Path{"./..."}, exts)
		require.NoError(t, err)

		assert.Equal(t, []m.Path{"lib.go", "main.rs", "src/util.rs"}, filePaths(files))
	})

	t.Run("dot selects current directory non-recursive", func(t *testing.T) {
		chdirProject(t)

		files, err := adapter.Get([]m.Path{"."}, exts)
		require.NoError(t, err)

		assert.Equal(t, []m.Path{"lib.go", "main.rs"}, filePaths(files))
	})

	t.Run("extension filter", func(t *testing.T) {
		chdirProject(t)

		files, err := adapter.Get([]m.Path{"./..."}, []string{".RS"})
		require.NoError(t, err)

		assert.Equal(t, []m.Path{"main.rs", "src/util.rs"}, filePaths(files))
	})

	t.Run("glob", func(t *testing.T) {
		chdirProject(t)

		files, err := adapter.Get([]m.Path{"src/*.rs"}, exts)
		require.NoError(t, err)

		assert.Equal(t, []m.Path{"src/util.rs"}, filePaths(files))
	})

	t.Run("overlapping roots are deduplicated", func(t *testing.T) {
		chdirProject(t)

		files, err := adapter.Get([]m.Path{"main.rs", ".", "./main.rs"}, exts)
		require.NoError(t, err)

		assert.Equal(t, []m.Path{"lib.go", "main.rs"}, filePaths(files))
	})

	t.Run("explicit file with unsupported extension", func(t *testing.T) {
		chdirProject(t)

		_, err := adapter.Get([]m.Path{"notes.txt"}, exts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported file type")
	})

	t.Run("missing path", func(t *testing.T) {
		chdirProject(t)

		_, err := adapter.Get([]m.Path{"missing.rs"}, exts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "root path error")
	})

	t.Run("no roots", func(t *testing.T) {
		files, err := adapter.Get(nil, exts)
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestParseRootPath(t *testing.T) {
	cases := []struct {
		in        string
		path      string
		recursive bool
	}{
		{"...", ".", true},
		{"./...", ".", true},
		{"src/...", "src", true},
		{"src", "src", false},
	}

	for _, tc := range cases {
		path, recursive := parseRootPath(tc.in)
		assert.Equal(t, tc.path, path, tc.in)
		assert.Equal(t, tc.recursive, recursive, tc.in)
	}
}

// chdirProject builds a small project in a temp dir and makes it the working
// directory for the test.
func chdirProject(t *testing.T) {
	t.Helper()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "main.rs"), "fn main() {}\n")
	writeTestFile(t, filepath.Join(root, "lib.go"), "package lib\n")
	writeTestFile(t, filepath.Join(root, "notes.txt"), "todo\n")

	mustMkdir(t, filepath.Join(root, "src"))
	writeTestFile(t, filepath.Join(root, "src", "util.rs"), "pub fn util() {}\n")

	mustMkdir(t, filepath.Join(root, "target"))
	writeTestFile(t, filepath.Join(root, "target", "build.rs"), "fn build() {}\n")

	mustMkdir(t, filepath.Join(root, ".git"))
	writeTestFile(t, filepath.Join(root, ".git", "hook.rs"), "fn hook() {}\n")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func filePaths(files []m.File) []m.Path {
	out := make([]m.Path, 0, len(files))
	for _, f := range files {
		out = append(out, m.Path(filepath.ToSlash(string(f.Path))))
	}

	return out
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
