package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/pkginfo/pkg/sourcepath"
)

// scriptedRunner answers commands from a table keyed by the rendered command
// line and records every call. It is safe for concurrent use.
type scriptedRunner struct {
	mu      sync.Mutex
	outputs map[string]string
	fail    map[string]int
	calls   []Command
}

func newScriptedRunner() *scriptedRunner {
	return &scriptedRunner{outputs: map[string]string{}, fail: map[string]int{}}
}

func (r *scriptedRunner) on(cmdline, stdout string) *scriptedRunner {
	r.outputs[cmdline] = stdout
	return r
}

func (r *scriptedRunner) failing(cmdline string, exitCode int) *scriptedRunner {
	r.fail[cmdline] = exitCode
	return r
}

func (r *scriptedRunner) Run(ctx context.Context, c Command) (Result, error) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()

	key := c.String()
	if code, ok := r.fail[key]; ok {
		res := Result{Stderr: "fatal: scripted failure", ExitCode: code}
		return res, commandFailed(c, res, nil)
	}
	out, ok := r.outputs[key]
	if !ok {
		res := Result{Stderr: "unscripted command " + key, ExitCode: 127}
		return res, commandFailed(c, res, nil)
	}
	return Result{Stdout: out}, nil
}

func (r *scriptedRunner) callCount(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// blockingRunner never finishes on its own; it returns once ctx is done.
type blockingRunner struct{}

func (blockingRunner) Run(ctx context.Context, c Command) (Result, error) {
	<-ctx.Done()
	return Result{ExitCode: -1}, commandFailed(c, Result{ExitCode: -1}, ctx.Err())
}

func tempRoot(t *testing.T) sourcepath.ProjectRoot {
	t.Helper()
	root, err := sourcepath.NewProjectRoot(t.TempDir())
	require.NoError(t, err)
	return root
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available in PATH")
	}
}

// runGit runs git in dir with a fixed identity and no signing.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	base := []string{"-c", "user.name=Test Author", "-c", "user.email=test@example.com", "-c", "commit.gpgsign=false"}
	cmd := exec.Command("git", append(base, args...)...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(string(out))
}

func initGitRepo(t *testing.T, branch string) sourcepath.ProjectRoot {
	t.Helper()
	requireGit(t)

	root := tempRoot(t)
	dir := root.String()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "symbolic-ref", "HEAD", "refs/heads/"+branch)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("hello\n"), 0644))
	runGit(t, dir, "add", "README")
	runGit(t, dir, "commit", "-q", "-m", "initial")
	return root
}
