package vcs

import (
	"context"
	"fmt"
	"regexp"

	"github.com/utkarsh5026/pkginfo/pkg/sourcepath"
)

// currentBranchPattern picks the line git branch marks with "* ".
var currentBranchPattern = regexp.MustCompile(`(?m)^\* (.*)$`)

// Git reads metadata from a git work tree with three commands: the last
// commit hash, the origin remote URL and the branch listing.
type Git struct {
	root   sourcepath.ProjectRoot
	runner Runner
}

// NewGit returns a git backend rooted at root.
func NewGit(root sourcepath.ProjectRoot, runner Runner) *Git {
	return &Git{root: root, runner: runner}
}

// Name returns KindGit.
func (g *Git) Name() Kind {
	return KindGit
}

func (g *Git) output(ctx context.Context, args ...string) (string, error) {
	res, err := g.runner.Run(ctx, Command{Dir: g.root.String(), Name: "git", Args: args})
	if err != nil {
		return "", err
	}
	return res.Output(), nil
}

// Revision returns the full hash of the last commit. The format argument is
// passed with literal quotes, so they are stripped from the output.
func (g *Git) Revision(ctx context.Context) (string, error) {
	out, err := g.output(ctx, "log", "-1", `--pretty=format:"%H"`)
	if err != nil {
		return "", err
	}
	return StripQuotes(out), nil
}

// Origin returns the configured URL of the origin remote.
func (g *Git) Origin(ctx context.Context) (string, error) {
	return g.output(ctx, "config", "--get", "remote.origin.url")
}

// Branch returns the checked-out branch as listed by git branch. In a
// detached HEAD this is git's description, e.g. "(HEAD detached at 1a2b3c4)".
func (g *Git) Branch(ctx context.Context) (string, error) {
	out, err := g.output(ctx, "branch")
	if err != nil {
		return "", err
	}
	return findLine(currentBranchPattern, out, "branch", "current branch marker")
}

// OriginURL returns "<origin> on branch <branch>".
func (g *Git) OriginURL(ctx context.Context) (string, error) {
	origin, err := g.Origin(ctx)
	if err != nil {
		return "", err
	}
	branch, err := g.Branch(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s on branch %s", origin, branch), nil
}
