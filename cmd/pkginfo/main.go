package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/utkarsh5026/pkginfo/cmd/ui"
	scerr "github.com/utkarsh5026/pkginfo/pkg/common/err"
	"github.com/utkarsh5026/pkginfo/pkg/common/logger"
)

var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	CommitSHA = "unknown"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return newApp(stdout, stderr).execute(ctx, args)
}

func (a *app) execute(ctx context.Context, args []string) int {
	cmd := a.rootCmd()
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	switch {
	case a.helpShown:
		return exitUsage
	case err == nil:
		return exitOK
	case scerr.IsCode(err, scerr.CodeUsage):
		a.printError(err)
		fmt.Fprintln(a.stderr)
		a.printUsage(cmd)
		return exitUsage
	default:
		logger.Debug("run failed", "code", scerr.GetCode(err), "error", err)
		a.printError(err)
		return exitFailure
	}
}

func (a *app) printError(err error) {
	fmt.Fprintln(a.stderr, ui.ErrorMessage(fmt.Sprintf("%s Error: %v", ui.IconCross, err)))
}

// invocationPath is the path the tool was invoked as. See resolveInvocation.
func invocationPath() string {
	return resolveInvocation(os.Args[0], os.Executable)
}

// resolveInvocation returns argv0 unchanged when it has a directory part, so a
// symlinked binary anchors at the link's location. A bare command name found
// on PATH carries no location; the OS-reported executable is used instead,
// falling back to argv0 if that fails.
func resolveInvocation(argv0 string, executable func() (string, error)) string {
	if strings.ContainsAny(argv0, "/"+string(filepath.Separator)) {
		return argv0
	}
	if exe, err := executable(); err == nil {
		return exe
	}
	return argv0
}
