// Package adapter contains the infrastructure adapters of the splint CLI:
// file discovery, tokenizers, rule loading, persistence and file watching.
package adapter

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "github.com/mouse-blink/splint/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user projects. It hides direct `os` access so the
// workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Get resolves roots (files, directories, "./..." patterns and globs) into
	// the list of files whose extension is one of exts, sorted by path.
	Get(roots []m.Path, exts []string) ([]m.File, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns a stable fingerprint (e.g. SHA-256) for the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories when necessary.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// skippedDirs are never descended into while walking.
var skippedDirs = map[string]struct{}{
	".git":         {},
	"vendor":       {},
	"node_modules": {},
	"target":       {},
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get collects source files for the provided roots.
func (a *LocalSourceFSAdapter) Get(roots []m.Path, exts []string) ([]m.File, error) {
	if len(roots) == 0 {
		return []m.File{}, nil
	}

	c := collector{seen: make(map[m.Path]struct{}), exts: exts}

	for _, root := range roots {
		if err := a.collectRoot(&c, string(root)); err != nil {
			return nil, err
		}
	}

	sort.Slice(c.files, func(i, j int) bool { return c.files[i].Path < c.files[j].Path })

	return c.files, nil
}

type collector struct {
	seen  map[m.Path]struct{}
	exts  []string
	files []m.File
}

func (c *collector) add(path string) {
	display := displayPath(path)
	if _, exists := c.seen[display]; exists {
		return
	}

	c.seen[display] = struct{}{}
	c.files = append(c.files, m.File{Path: display})
}

func (c *collector) accepts(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}

	return false
}

func (a *LocalSourceFSAdapter) collectRoot(c *collector, root string) error {
	if isGlob(root) {
		matches, err := filepath.Glob(root)
		if err != nil {
			return fmt.Errorf("invalid glob %q: %w", root, err)
		}

		for _, match := range matches {
			info, err := a.FileInfo(m.Path(match))
			if err != nil {
				return fmt.Errorf("root path error: %w", err)
			}

			if !info.IsDir() && c.accepts(match) {
				c.add(match)
			}
		}

		return nil
	}

	rootPath, recursive, err := normalizeRootPath(root)
	if err != nil {
		return err
	}

	info, err := a.FileInfo(m.Path(rootPath))
	if err != nil {
		return fmt.Errorf("root path error: %w", err)
	}

	if !info.IsDir() {
		if !c.accepts(rootPath) {
			return fmt.Errorf("unsupported file type: %s", root)
		}

		c.add(rootPath)

		return nil
	}

	return a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if _, skip := skippedDirs[info.Name()]; skip && path != rootPath {
				return filepath.SkipDir
			}

			return nil
		}

		if c.accepts(path) {
			c.add(path)
		}

		return nil
	})
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// HashBytes returns the SHA-256 hash of content, formatted like HashFile.
func HashBytes(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

func isGlob(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

// displayPath shortens absolute paths under the working directory.
func displayPath(path string) m.Path {
	wd, err := os.Getwd()
	if err != nil {
		return m.Path(path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return m.Path(path)
	}

	rel, err := filepath.Rel(wd, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return m.Path(abs)
	}

	return m.Path(rel)
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if len(rootStr) >= 4 && rootStr[len(rootStr)-4:] == "/..." {
		return rootStr[:len(rootStr)-4], true
	}

	return rootStr, false
}
