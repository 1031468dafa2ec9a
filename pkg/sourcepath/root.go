package sourcepath

import (
	"fmt"
	"path/filepath"
)

// ProjectRoot is the absolute directory that VCS queries run in and that
// relative checksum and output directories are resolved against.
type ProjectRoot string

// NewProjectRoot makes dir absolute and cleans it.
func NewProjectRoot(dir string) (ProjectRoot, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve project root %q: %w", dir, err)
	}
	return ProjectRoot(abs), nil
}

// FromInvocation derives the project root from the path the tool was invoked
// as: the parent of the directory holding the executable. A binary installed
// at <project>/bin/pkginfo yields <project>.
func FromInvocation(invokedAs string) (ProjectRoot, error) {
	return NewProjectRoot(filepath.Join(filepath.Dir(invokedAs), ".."))
}

// String returns the root as a string
func (r ProjectRoot) String() string {
	return string(r)
}

// Resolve returns p unchanged when absolute, otherwise p joined onto the root.
func (r ProjectRoot) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(string(r), p)
}

// Join joins path elements onto the root.
func (r ProjectRoot) Join(elem ...string) string {
	return filepath.Join(append([]string{string(r)}, elem...)...)
}
