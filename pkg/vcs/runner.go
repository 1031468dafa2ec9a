package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	scerr "github.com/utkarsh5026/pkginfo/pkg/common/err"
	"github.com/utkarsh5026/pkginfo/pkg/common/logger"
)

// Command describes one invocation of a VCS tool.
type Command struct {
	Dir  string
	Name string
	Args []string

	// Env entries are appended to the current process environment.
	Env []string
}

// String renders the command line for logs and errors.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result is the captured outcome of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Output returns stdout with surrounding whitespace removed.
func (r Result) Output() string {
	return strings.TrimSpace(r.Stdout)
}

// CommandError reports a command that could not be started or exited non-zero.
// ExitCode is -1 when the process never ran.
type CommandError struct {
	Command  Command
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: exit code %d", e.Command, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Runner executes commands. Tests substitute a scripted implementation.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands as subprocesses with os/exec.
type ExecRunner struct{}

// Run blocks until the subprocess exits or ctx is done. A failed command
// returns its captured Result together with a COMMAND_FAILED error wrapping
// a *CommandError.
func (ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running vcs command", "cmd", c.String(), "dir", c.Dir)
	runErr := cmd.Run()

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if runErr == nil {
		return res, nil
	}

	res.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		runErr = fmt.Errorf("%w: %w", ctxErr, runErr)
	}

	return res, commandFailed(c, res, runErr)
}

func commandFailed(c Command, res Result, cause error) error {
	ce := &CommandError{Command: c, ExitCode: res.ExitCode, Stderr: res.Stderr, Err: cause}
	return scerr.New(pkgName, scerr.CodeCommandFailed, "run", "", ce).
		WithContext("command", c.String()).
		WithContext("exit_code", res.ExitCode)
}
