// Package config resolves pkginfo settings from, in increasing precedence,
// built-in defaults, an optional config file, PKGINFO_* environment variables
// and command-line flags.
package config

import (
	"errors"
	"strings"
	"time"

	scerr "github.com/utkarsh5026/pkginfo/pkg/common/err"
	"github.com/utkarsh5026/pkginfo/pkg/common/logger"
	"github.com/utkarsh5026/pkginfo/pkg/provenance"
	"github.com/utkarsh5026/pkginfo/pkg/sources"
	"github.com/utkarsh5026/pkginfo/pkg/vcs"
)

// Setting keys, shared by the config file and environment (upper-cased,
// prefixed with PKGINFO_).
const (
	KeyProjectRoot = "project_root"
	KeyConfig      = "config"
	KeySuffix      = "suffix"
	KeyExclude     = "exclude"
	KeyOutputName  = "output_name"
	KeyVCS         = "vcs"
	KeyVCSTimeout  = "vcs_timeout"
	KeyDryRun      = "dry_run"
	KeyShowFiles   = "show_files"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
	KeyVerbose     = "verbose"
)

// Settings is the resolved configuration of one run.
type Settings struct {
	ProjectRoot string
	ConfigFile  string

	Suffix     string
	Exclude    string
	OutputName string

	VCS        vcs.Kind
	VCSTimeout time.Duration

	DryRun    bool
	ShowFiles bool

	LogLevel  string
	LogFormat string
	Verbose   bool
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Suffix:     sources.DefaultSuffix,
		Exclude:    sources.DefaultExclude,
		OutputName: provenance.DefaultOutputName,
		VCS:        vcs.KindAuto,
		LogLevel:   "info",
		LogFormat:  string(logger.FormatText),
	}
}

// Validate checks every setting and reports all problems at once.
func (s Settings) Validate() error {
	var errs []error

	if s.ProjectRoot == "" {
		errs = append(errs, invalid(KeyProjectRoot, "must not be empty"))
	}
	if s.Suffix == "" {
		errs = append(errs, invalid(KeySuffix, "must not be empty"))
	}
	if s.OutputName == "" || strings.ContainsAny(s.OutputName, `/\`) {
		errs = append(errs, invalid(KeyOutputName, "must be a bare file name"))
	}
	if _, err := vcs.ParseKind(string(s.VCS)); err != nil {
		errs = append(errs, NewConfigError("validate", scerr.CodeInvalidInput, KeyVCS, "", err))
	}
	if s.VCSTimeout < 0 {
		errs = append(errs, invalid(KeyVCSTimeout, "must not be negative"))
	}
	if _, err := logger.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, NewConfigError("validate", scerr.CodeInvalidInput, KeyLogLevel, "", err))
	}
	if _, err := logger.ParseFormat(s.LogFormat); err != nil {
		errs = append(errs, NewConfigError("validate", scerr.CodeInvalidInput, KeyLogFormat, "", err))
	}

	return errors.Join(errs...)
}

func invalid(key, msg string) error {
	return NewConfigError("validate", scerr.CodeInvalidInput, key, "", errors.New(msg))
}

// Scanner returns the source scanner described by the settings.
func (s Settings) Scanner() *sources.Scanner {
	return &sources.Scanner{Suffix: s.Suffix, Exclude: s.Exclude}
}

// LoggerConfig returns the logger configuration; Verbose forces debug level.
// Call Validate first; unknown names fall back to info and text.
func (s Settings) LoggerConfig() logger.Config {
	level, _ := logger.ParseLevel(s.LogLevel)
	if s.Verbose {
		level = logger.LevelDebug
	}
	format, _ := logger.ParseFormat(s.LogFormat)
	return logger.Config{Level: level, Format: format}
}
