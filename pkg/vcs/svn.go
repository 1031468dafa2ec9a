package vcs

import (
	"context"
	"regexp"
	"sync"

	"github.com/utkarsh5026/pkginfo/pkg/sourcepath"
)

var (
	lastChangedRevPattern = regexp.MustCompile(`(?m)^Last Changed Rev: (.*)$`)
	urlPattern            = regexp.MustCompile(`(?m)^URL: (.*)$`)
)

// Subversion reads metadata from `svn info`. The command runs once per
// backend; Revision and OriginURL share its output.
type Subversion struct {
	root   sourcepath.ProjectRoot
	runner Runner

	mu     sync.Mutex
	cached *string
}

// NewSubversion returns a Subversion backend rooted at root.
func NewSubversion(root sourcepath.ProjectRoot, runner Runner) *Subversion {
	return &Subversion{root: root, runner: runner}
}

// Name returns KindSVN.
func (s *Subversion) Name() Kind {
	return KindSVN
}

func (s *Subversion) info(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return *s.cached, nil
	}

	// Field labels are translated in non-English locales.
	res, err := s.runner.Run(ctx, Command{
		Dir:  s.root.String(),
		Name: "svn",
		Args: []string{"info"},
		Env:  []string{"LC_ALL=C"},
	})
	if err != nil {
		return "", err
	}

	out := res.Output()
	s.cached = &out
	return out, nil
}

// Revision returns the "Last Changed Rev" of the working copy.
func (s *Subversion) Revision(ctx context.Context) (string, error) {
	text, err := s.info(ctx)
	if err != nil {
		return "", err
	}
	return findLine(lastChangedRevPattern, text, "revision", `"Last Changed Rev" line`)
}

// OriginURL returns the repository URL of the working copy.
func (s *Subversion) OriginURL(ctx context.Context) (string, error) {
	text, err := s.info(ctx)
	if err != nil {
		return "", err
	}
	return findLine(urlPattern, text, "origin_url", `"URL" line`)
}
