package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	scerr "github.com/utkarsh5026/pkginfo/pkg/common/err"
	"github.com/utkarsh5026/pkginfo/pkg/common/logger"
	"github.com/utkarsh5026/pkginfo/pkg/config"
	"github.com/utkarsh5026/pkginfo/pkg/provenance"
	"github.com/utkarsh5026/pkginfo/pkg/sourcepath"
	"github.com/utkarsh5026/pkginfo/pkg/vcs"
)

const example = "pkginfo @HadoopVersionAnnotation 1.1.0 src org.apache.hadoop build"

// app holds the state of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// invokedAs locates the default project root.
	invokedAs string

	// runner overrides the VCS command runner; nil runs real commands.
	runner vcs.Runner

	settings  config.Settings
	helpShown bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:    stdout,
		stderr:    stderr,
		invokedAs: invocationPath(),
	}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pkginfo [flags] <annotation> <version> <src_checksum_root_dir> <package> <build_dir>",
		Short: "Generate package-info.java with build provenance",
		Long: `Generate a package-info.java carrying the build version, VCS revision and URL,
build user and date, and an MD5 checksum over the project's sources.`,
		Example: "  " + example,
		Version: fmt.Sprintf("%s (built: %s, commit: %s)", Version, BuildTime, CommitSHA),
		Args: func(cmd *cobra.Command, args []string) error {
			_, err := provenance.ParseParams(args)
			return err
		},
		PersistentPreRunE: a.loadSettings,
		RunE:              a.generate,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	config.RegisterFlags(cmd.Flags())

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		a.helpShown = true
		a.printUsage(c)
	})
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return scerr.New("cli", scerr.CodeUsage, "parse_flags", "", err)
	})

	return cmd
}

// printUsage writes the usage text to stderr.
func (a *app) printUsage(cmd *cobra.Command) {
	fmt.Fprintf(a.stderr, "Usage: %s\nEg:    %s\n\nFlags:\n%s", cmd.UseLine(), example, cmd.Flags().FlagUsages())
}

// loadSettings resolves flags, environment and config file into settings and
// configures logging. It runs after argument validation, so usage errors never
// reach the filesystem.
func (a *app) loadSettings(cmd *cobra.Command, _ []string) error {
	root, err := sourcepath.FromInvocation(a.invokedAs)
	if err != nil {
		return err
	}

	loader := config.Loader{Flags: cmd.Flags(), DefaultProjectRoot: root.String()}
	s, err := loader.Load()
	if err != nil {
		return err
	}
	a.settings = s

	setupLogging(s, a.stderr)
	logger.Debug("settings loaded",
		"project_root", s.ProjectRoot,
		"config_file", s.ConfigFile,
		"vcs", s.VCS,
		"suffix", s.Suffix,
		"exclude", s.Exclude,
	)
	return nil
}

func setupLogging(s config.Settings, w io.Writer) {
	cfg := s.LoggerConfig()
	cfg.Output = w
	logger.Default = logger.New(cfg)
}
