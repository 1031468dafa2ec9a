package vcs

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	scerr "github.com/utkarsh5026/pkginfo/pkg/common/err"
)

const (
	gitRevisionCmd = `git log -1 --pretty=format:"%H"`
	gitOriginCmd   = "git config --get remote.origin.url"
	gitBranchCmd   = "git branch"
	svnInfoCmd     = "svn info"
)

const sampleSVNInfo = `Path: .
Working Copy Root Path: /home/builder/hadoop-common
URL: http://svn.apache.org/repos/asf/hadoop/common/trunk
Relative URL: ^/hadoop/common/trunk
Repository Root: http://svn.apache.org/repos/asf
Repository UUID: 13f79535-47bb-0310-9956-ffa450edef68
Revision: 1471000
Node Kind: directory
Schedule: normal
Last Changed Author: cnauroth
Last Changed Rev: 1470985
Last Changed Date: 2013-04-22 23:06:54 +0000 (Mon, 22 Apr 2013)
`

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `"abc123"`, want: "abc123"},
		{in: `'abc123'`, want: "abc123"},
		{in: `\"abc123"`, want: `"abc123`},
		{in: `abc123`, want: "abc123"},
		{in: `"abc123'`, want: `"abc123'`},
		{in: `"`, want: `"`},
		{in: ``, want: ``},
		{in: `""`, want: ``},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, StripQuotes(tt.in))
		})
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"": KindAuto, "auto": KindAuto, "GIT": KindGit, " svn ": KindSVN} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("hg")
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeInvalidInput))
}

func TestGit_Metadata(t *testing.T) {
	runner := newScriptedRunner().
		on(gitRevisionCmd, `"0123456789abcdef0123456789abcdef01234567"`).
		on(gitOriginCmd, "https://github.com/apache/hadoop-common.git\n").
		on(gitBranchCmd, "  branch-0.21\n* trunk\n  feature/x\n")

	g := NewGit(tempRoot(t), runner)

	info, err := Collect(context.Background(), g, 0)
	require.NoError(t, err)
	assert.Equal(t, Info{
		Backend:  KindGit,
		Revision: "0123456789abcdef0123456789abcdef01234567",
		URL:      "https://github.com/apache/hadoop-common.git on branch trunk",
	}, info)
	assert.Equal(t, 3, runner.callCount("git"))
}

func TestGit_CommandsRunInProjectRoot(t *testing.T) {
	root := tempRoot(t)
	runner := newScriptedRunner().on(gitRevisionCmd, `"abc"`)

	_, err := NewGit(root, runner).Revision(context.Background())
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, root.String(), runner.calls[0].Dir)
}

func TestGit_DetachedHead(t *testing.T) {
	runner := newScriptedRunner().
		on(gitOriginCmd, "git@example.com:repo.git").
		on(gitBranchCmd, "* (HEAD detached at 1a2b3c4)\n  main")

	url, err := NewGit(tempRoot(t), runner).OriginURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "git@example.com:repo.git on branch (HEAD detached at 1a2b3c4)", url)
}

func TestGit_NoCurrentBranch(t *testing.T) {
	runner := newScriptedRunner().
		on(gitOriginCmd, "git@example.com:repo.git").
		on(gitBranchCmd, "")

	_, err := NewGit(tempRoot(t), runner).OriginURL(context.Background())
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodePatternNotFound))
}

func TestGit_MissingOriginFails(t *testing.T) {
	runner := newScriptedRunner().
		on(gitRevisionCmd, `"abc"`).
		failing(gitOriginCmd, 1).
		on(gitBranchCmd, "* main")

	_, err := Collect(context.Background(), NewGit(tempRoot(t), runner), 0)
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeCommandFailed))

	var ce *CommandError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 1, ce.ExitCode)
	assert.Equal(t, gitOriginCmd, ce.Command.String())
}

func TestSubversion_Metadata(t *testing.T) {
	runner := newScriptedRunner().on(svnInfoCmd, sampleSVNInfo)
	s := NewSubversion(tempRoot(t), runner)

	info, err := Collect(context.Background(), s, 0)
	require.NoError(t, err)
	assert.Equal(t, Info{
		Backend:  KindSVN,
		Revision: "1470985",
		URL:      "http://svn.apache.org/repos/asf/hadoop/common/trunk",
	}, info)
	assert.Equal(t, 1, runner.callCount("svn"), "svn info runs once for both fields")
	assert.Equal(t, []string{"LC_ALL=C"}, runner.calls[0].Env)
}

func TestSubversion_CRLFOutput(t *testing.T) {
	runner := newScriptedRunner().on(svnInfoCmd, "URL: svn://host/repo\r\nLast Changed Rev: 42\r\n")
	s := NewSubversion(tempRoot(t), runner)

	rev, err := s.Revision(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "42", rev)

	url, err := s.OriginURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "svn://host/repo", url)
}

func TestSubversion_MissingFields(t *testing.T) {
	runner := newScriptedRunner().on(svnInfoCmd, "Path: .\nRevision: 7\n")
	s := NewSubversion(tempRoot(t), runner)

	_, err := s.Revision(context.Background())
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodePatternNotFound))

	_, err = s.OriginURL(context.Background())
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodePatternNotFound))
}

func TestSubversion_NotAWorkingCopy(t *testing.T) {
	runner := newScriptedRunner().failing(svnInfoCmd, 1)

	_, err := Collect(context.Background(), NewSubversion(tempRoot(t), runner), 0)
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeCommandFailed))
}

func TestDetect(t *testing.T) {
	t.Run("git directory", func(t *testing.T) {
		root := tempRoot(t)
		require.NoError(t, os.Mkdir(root.Join(GitMarker), 0755))

		b, err := Detect(root, newScriptedRunner())
		require.NoError(t, err)
		assert.Equal(t, KindGit, b.Name())
	})

	t.Run("git file is not a marker directory", func(t *testing.T) {
		root := tempRoot(t)
		require.NoError(t, os.WriteFile(root.Join(GitMarker), []byte("gitdir: ../x"), 0644))

		b, err := Detect(root, newScriptedRunner())
		require.NoError(t, err)
		assert.Equal(t, KindSVN, b.Name())
	})

	t.Run("no marker", func(t *testing.T) {
		b, err := Detect(tempRoot(t), newScriptedRunner())
		require.NoError(t, err)
		assert.Equal(t, KindSVN, b.Name())
	})
}

func TestOpen_ExplicitKindSkipsProbe(t *testing.T) {
	root := tempRoot(t)

	b, err := Open(KindGit, root, newScriptedRunner())
	require.NoError(t, err)
	assert.Equal(t, KindGit, b.Name())

	b, err = Open(KindSVN, root, nil)
	require.NoError(t, err)
	assert.Equal(t, KindSVN, b.Name())

	b, err = Open(Kind("GIT"), root, nil)
	require.NoError(t, err)
	assert.Equal(t, KindGit, b.Name())

	_, err = Open(Kind("cvs"), root, nil)
	assert.Error(t, err)
}

func TestCollect_Timeout(t *testing.T) {
	b := NewGit(tempRoot(t), blockingRunner{})

	start := time.Now()
	_, err := Collect(context.Background(), b, 50*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)
}
