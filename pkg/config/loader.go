package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	scerr "github.com/utkarsh5026/pkginfo/pkg/common/err"
	"github.com/utkarsh5026/pkginfo/pkg/common/fileops"
	"github.com/utkarsh5026/pkginfo/pkg/vcs"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. PKGINFO_SUFFIX.
	EnvPrefix = "PKGINFO"

	// DefaultFileName is looked up in the project root when no config file is given.
	DefaultFileName = ".pkginfo.json"
)

// flagKeys maps command-line flag names to setting keys.
var flagKeys = map[string]string{
	"project-root": KeyProjectRoot,
	"config":       KeyConfig,
	"suffix":       KeySuffix,
	"exclude":      KeyExclude,
	"output-name":  KeyOutputName,
	"vcs":          KeyVCS,
	"vcs-timeout":  KeyVCSTimeout,
	"dry-run":      KeyDryRun,
	"show-files":   KeyShowFiles,
	"log-level":    KeyLogLevel,
	"log-format":   KeyLogFormat,
	"verbose":      KeyVerbose,
}

// RegisterFlags adds every setting flag to fs. Flag defaults are left empty
// so that unset flags do not mask the config file or environment.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("project-root", "", "Project root for VCS queries and relative paths (default: parent of the executable's directory)")
	fs.String("config", "", "Config file (default: <project-root>/"+DefaultFileName+" when present)")
	fs.String("suffix", "", "File name suffix of checksummed sources (default "+Defaults().Suffix+")")
	fs.String("exclude", "", "Skip sources whose path contains this marker (default "+Defaults().Exclude+")")
	fs.String("output-name", "", "Name of the generated file (default "+Defaults().OutputName+")")
	fs.String("vcs", "", "Version control system: auto, git or svn (default auto)")
	fs.Duration("vcs-timeout", 0, "Abort VCS queries after this long (0 waits indefinitely)")
	fs.Bool("dry-run", false, "Print the generated file instead of writing it")
	fs.Bool("show-files", false, "List every checksummed file with its digest")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	fs.String("log-format", "", "Log format (text, json)")
	fs.BoolP("verbose", "v", false, "Enable verbose output (sets log level to debug)")
}

// Loader resolves Settings. DefaultProjectRoot is used when neither a flag,
// the environment nor an explicit config file names one.
type Loader struct {
	Flags              *pflag.FlagSet
	DefaultProjectRoot string
}

func (l Loader) newViper() (*viper.Viper, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault(KeyProjectRoot, l.DefaultProjectRoot)
	v.SetDefault(KeySuffix, d.Suffix)
	v.SetDefault(KeyExclude, d.Exclude)
	v.SetDefault(KeyOutputName, d.OutputName)
	v.SetDefault(KeyVCS, string(d.VCS))
	v.SetDefault(KeyVCSTimeout, d.VCSTimeout)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if l.Flags != nil {
		for name, key := range flagKeys {
			f := l.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, NewConfigError("bind_flag", scerr.CodeInternal, key, "", err)
			}
		}
	}
	return v, nil
}

// Load resolves and validates the settings.
func (l Loader) Load() (Settings, error) {
	v, err := l.newViper()
	if err != nil {
		return Settings{}, err
	}

	file, err := l.configFile(v)
	if err != nil {
		return Settings{}, err
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, NewConfigError("read", scerr.CodeInvalidInput, "", file, err)
		}
	}

	s := Settings{
		ProjectRoot: v.GetString(KeyProjectRoot),
		ConfigFile:  file,
		Suffix:      v.GetString(KeySuffix),
		Exclude:     v.GetString(KeyExclude),
		OutputName:  v.GetString(KeyOutputName),
		VCS:         vcs.Kind(strings.ToLower(strings.TrimSpace(v.GetString(KeyVCS)))),
		VCSTimeout:  v.GetDuration(KeyVCSTimeout),
		DryRun:      v.GetBool(KeyDryRun),
		ShowFiles:   v.GetBool(KeyShowFiles),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		Verbose:     v.GetBool(KeyVerbose),
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// configFile returns the explicit config file, or the default file in the
// project root if it exists, or "".
func (l Loader) configFile(v *viper.Viper) (string, error) {
	if explicit := v.GetString(KeyConfig); explicit != "" {
		ok, err := fileops.Exists(explicit)
		if err != nil {
			return "", NewConfigError("locate", scerr.CodeIO, KeyConfig, explicit, err)
		}
		if !ok {
			return "", NewConfigError("locate", scerr.CodeNotFound, KeyConfig, explicit, nil)
		}
		return explicit, nil
	}

	root := v.GetString(KeyProjectRoot)
	if root == "" {
		return "", nil
	}
	candidate := filepath.Join(root, DefaultFileName)
	ok, err := fileops.Exists(candidate)
	if err != nil || !ok {
		return "", err
	}
	return candidate, nil
}
