// Package sources enumerates the files whose content makes up the source
// checksum of a build.
package sources

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	scerr "github.com/utkarsh5026/pkginfo/pkg/common/err"
	"github.com/utkarsh5026/pkginfo/pkg/common/fileops"
	"github.com/utkarsh5026/pkginfo/pkg/common/logger"
	"github.com/utkarsh5026/pkginfo/pkg/sourcepath"
)

const pkgName = "sources"

const (
	DefaultSuffix  = ".java"
	DefaultExclude = "generated-sources"
)

// Scanner selects source files below a checksum root.
type Scanner struct {
	// Suffix a file name must end with. The name needs at least one
	// character before the suffix, so a file named exactly ".java" is skipped.
	Suffix string

	// Exclude drops any file whose canonical path contains it. Empty disables exclusion.
	Exclude string
}

// NewScanner returns a scanner for *.java files outside generated-sources.
func NewScanner() *Scanner {
	return &Scanner{Suffix: DefaultSuffix, Exclude: DefaultExclude}
}

// Matches reports whether a file name qualifies by suffix.
func (s *Scanner) Matches(name string) bool {
	return len(name) > len(s.Suffix) && strings.HasSuffix(name, s.Suffix)
}

// Excluded reports whether a canonical path is dropped by the exclusion marker.
func (s *Scanner) Excluded(p sourcepath.Canonical) bool {
	return s.Exclude != "" && p.Contains(s.Exclude)
}

// Scan walks checksumRoot, resolved against project, and returns every
// qualifying file in canonical sorted order.
//
// Returned paths start with checksumRoot as given (cleaned), not with the
// project root, so that exclusion and ordering see the same strings on every
// machine. A checksum root that does not exist, or is not a directory, has no
// sources; directories that cannot be read are skipped.
func (s *Scanner) Scan(project sourcepath.ProjectRoot, checksumRoot string) ([]sourcepath.Canonical, error) {
	if s.Suffix == "" {
		return nil, scerr.New(pkgName, scerr.CodeInvalidInput, "scan", "empty source suffix", nil)
	}

	dir := project.Resolve(checksumRoot)
	if isDir, err := fileops.IsDirectory(dir); err != nil || !isDir {
		logger.Debug("checksum root is not a readable directory, no sources", "root", dir)
		return nil, nil
	}

	prefix := filepath.Clean(checksumRoot)
	var files []sourcepath.Canonical

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories contribute nothing.
			logger.Debug("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !s.Matches(d.Name()) {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				return nil
			}
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		name := sourcepath.Canonicalize(filepath.Join(prefix, rel))
		if s.Excluded(name) {
			logger.Debug("excluding generated source", "path", name.String())
			return nil
		}

		files = append(files, name)
		return nil
	})
	if walkErr != nil {
		return nil, scerr.New(pkgName, scerr.CodeIO, "walk", dir, walkErr)
	}

	sourcepath.Sort(files)
	logger.Debug("collected source files", "root", dir, "count", len(files))
	return files, nil
}
