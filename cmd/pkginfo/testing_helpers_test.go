package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	scerr "github.com/utkarsh5026/pkginfo/pkg/common/err"
	"github.com/utkarsh5026/pkginfo/pkg/config"
	"github.com/utkarsh5026/pkginfo/pkg/vcs"
)

const (
	testRevision = "0123456789abcdef0123456789abcdef01234567"
	testOrigin   = "https://example.com/project.git"

	// md5(md5("x") + md5("z")) as hex strings: A.java and b/C.java.
	exampleChecksum = "d02dfe4870d3a55bdf851d19e2b2ba5b"
)

// fakeRunner answers the git queries without running git.
type fakeRunner struct {
	mu     sync.Mutex
	calls  []string
	failOn string
}

func (r *fakeRunner) Run(_ context.Context, c vcs.Command) (vcs.Result, error) {
	line := c.String()
	r.mu.Lock()
	r.calls = append(r.calls, line)
	r.mu.Unlock()

	if r.failOn != "" && strings.HasPrefix(line, r.failOn) {
		return vcs.Result{ExitCode: 1}, scerr.New("vcs", scerr.CodeCommandFailed, "run", line, nil)
	}
	switch {
	case strings.HasPrefix(line, "git log"):
		return vcs.Result{Stdout: `"` + testRevision + `"`}, nil
	case strings.HasPrefix(line, "git config"):
		return vcs.Result{Stdout: testOrigin + "\n"}, nil
	case line == "git branch":
		return vcs.Result{Stdout: "* main\n"}, nil
	}
	return vcs.Result{ExitCode: 127}, fmt.Errorf("unexpected command %q", line)
}

func (r *fakeRunner) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// TestHelper drives the command against a temporary project.
type TestHelper struct {
	t      *testing.T
	root   string
	runner *fakeRunner
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// NewTestHelper creates an empty project root and clears PKGINFO_*
// variables so the host environment cannot leak into settings.
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	for _, key := range []string{
		config.KeyProjectRoot, config.KeyConfig, config.KeySuffix, config.KeyExclude,
		config.KeyOutputName, config.KeyVCS, config.KeyVCSTimeout, config.KeyDryRun,
		config.KeyShowFiles, config.KeyLogLevel, config.KeyLogFormat, config.KeyVerbose,
	} {
		t.Setenv(config.EnvPrefix+"_"+strings.ToUpper(key), "")
	}

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return &TestHelper{t: t, root: root, runner: &fakeRunner{}}
}

// WriteFile creates a file under the project root.
func (h *TestHelper) WriteFile(name, content string) {
	h.t.Helper()
	path := filepath.Join(h.root, filepath.FromSlash(name))
	require.NoError(h.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(h.t, os.WriteFile(path, []byte(content), 0644))
}

// WriteExampleTree lays out two checksummed sources and one generated one.
func (h *TestHelper) WriteExampleTree() {
	h.WriteFile("src/A.java", "x")
	h.WriteFile("src/b/C.java", "z")
	h.WriteFile("src/generated-sources/G.java", "y")
	h.WriteFile("src/notes.txt", "ignored")
}

// Run executes the command as if the binary lived in <root>/bin.
func (h *TestHelper) Run(args ...string) int {
	h.t.Helper()
	h.stdout.Reset()
	h.stderr.Reset()

	a := newApp(&h.stdout, &h.stderr)
	a.invokedAs = filepath.Join(h.root, "bin", "pkginfo")
	a.runner = h.runner
	return a.execute(context.Background(), args)
}

// Output returns the content of the generated file under dir.
func (h *TestHelper) Output(dir, name string) string {
	h.t.Helper()
	data, err := os.ReadFile(filepath.Join(h.root, dir, name))
	require.NoError(h.t, err)
	return string(data)
}

// Entries lists the project root, for asserting that nothing was created.
func (h *TestHelper) Entries() []string {
	h.t.Helper()
	entries, err := os.ReadDir(h.root)
	require.NoError(h.t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available in PATH")
	}
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	base := []string{"-c", "user.name=Test Author", "-c", "user.email=test@example.com", "-c", "commit.gpgsign=false"}
	cmd := exec.Command("git", append(base, args...)...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
}
