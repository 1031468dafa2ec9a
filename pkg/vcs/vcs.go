// Package vcs extracts revision and origin metadata from the version-control
// system that manages a project: git when a .git directory is present,
// Subversion otherwise.
package vcs

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	scerr "github.com/utkarsh5026/pkginfo/pkg/common/err"
	"github.com/utkarsh5026/pkginfo/pkg/common/fileops"
	"github.com/utkarsh5026/pkginfo/pkg/common/logger"
	"github.com/utkarsh5026/pkginfo/pkg/sourcepath"
)

const pkgName = "vcs"

// Kind names a supported version-control system.
type Kind string

const (
	KindAuto Kind = "auto"
	KindGit  Kind = "git"
	KindSVN  Kind = "svn"
)

// GitMarker is the directory whose presence selects the git backend.
const GitMarker = ".git"

// ParseKind validates a backend name. The empty string means auto.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "", KindAuto:
		return KindAuto, nil
	case KindGit, KindSVN:
		return k, nil
	}
	return "", scerr.New(pkgName, scerr.CodeInvalidInput, "parse_kind",
		fmt.Sprintf("unknown vcs %q (want auto, git or svn)", s), nil)
}

// Backend is the capability every supported VCS provides.
type Backend interface {
	Name() Kind
	Revision(ctx context.Context) (string, error)
	OriginURL(ctx context.Context) (string, error)
}

// Info is the metadata recorded in the provenance file.
type Info struct {
	Backend  Kind
	Revision string
	URL      string
}

// Detect probes root for the git marker directory and returns the matching
// backend. Without the marker the Subversion backend is used; it fails later
// if root is not a working copy either.
func Detect(root sourcepath.ProjectRoot, runner Runner) (Backend, error) {
	isGit, err := fileops.IsDirectory(root.Join(GitMarker))
	if err != nil {
		return nil, scerr.WrapWithCode(err, pkgName, scerr.CodeIO, "detect")
	}
	if isGit {
		return NewGit(root, runner), nil
	}
	return NewSubversion(root, runner), nil
}

// Open returns the backend for kind, probing the filesystem for KindAuto.
func Open(kind Kind, root sourcepath.ProjectRoot, runner Runner) (Backend, error) {
	if runner == nil {
		runner = ExecRunner{}
	}

	var (
		b   Backend
		err error
	)
	switch kind {
	case KindGit:
		b = NewGit(root, runner)
	case KindSVN:
		b = NewSubversion(root, runner)
	case KindAuto, "":
		b, err = Detect(root, runner)
	default:
		k, perr := ParseKind(string(kind))
		if perr != nil {
			return nil, perr
		}
		return Open(k, root, runner)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("selected vcs backend", "backend", b.Name(), "root", root.String())
	return b, nil
}

// Collect queries the revision and origin URL concurrently. The first failure
// cancels the other query. A positive timeout bounds the whole collection.
func Collect(ctx context.Context, b Backend, timeout time.Duration) (Info, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	info := Info{Backend: b.Name()}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rev, err := b.Revision(gctx)
		if err != nil {
			return err
		}
		info.Revision = rev
		return nil
	})

	g.Go(func() error {
		url, err := b.OriginURL(gctx)
		if err != nil {
			return err
		}
		info.URL = url
		return nil
	})

	if err := g.Wait(); err != nil {
		return Info{}, err
	}
	return info, nil
}

// findLine returns the trimmed first capture group of a multi-line pattern.
func findLine(re *regexp.Regexp, text, op, what string) (string, error) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", scerr.New(pkgName, scerr.CodePatternNotFound, op,
			fmt.Sprintf("no %s in command output", what), nil)
	}
	return strings.TrimSpace(m[1]), nil
}
