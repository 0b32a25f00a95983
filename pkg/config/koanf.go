package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/pagesmith/pkg/errors"
	"github.com/arthur-debert/pagesmith/pkg/logging"
)

// EnvPrefix is the prefix for settings read from the environment
const EnvPrefix = "PAGESMITH_"

// settingsFileNames are looked up in the working directory, in order
var settingsFileNames = []string{"pagesmith.yaml", "pagesmith.yml", "pagesmith.toml", ".pagesmith.yaml"}

// userSettingsFile is looked up under the XDG config directories
const userSettingsFile = "pagesmith/config.yaml"

// Settings are the options of a build, as opposed to the configuration tree
// handed to templates.
type Settings struct {
	Config   string   `koanf:"config"`
	Outdir   string   `koanf:"outdir"`
	Indexes  bool     `koanf:"indexes"`
	Format   string   `koanf:"format"`
	Jobs     int      `koanf:"jobs"`
	Partials []string `koanf:"partials"`
	Sitemap  string   `koanf:"sitemap"`
	Verbose  int      `koanf:"verbose"`
}

// Sources says where LoadSettings reads from
type Sources struct {
	// File is an explicit settings file; it must exist when set
	File string
	// EnvFile is a dotenv file loaded into the environment first
	EnvFile string
	// WorkDir is searched for settingsFileNames when File is empty
	WorkDir string
	// Flags holds command-line values that were explicitly set
	Flags map[string]interface{}
}

// DefaultSettings returns the built-in defaults
func DefaultSettings() map[string]interface{} {
	return map[string]interface{}{
		"format": "auto",
		"jobs":   1,
	}
}

// LoadSettings layers defaults, settings file, environment and flags.
func LoadSettings(src Sources) (*Settings, error) {
	logger := logging.GetLogger("config.settings")
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(DefaultSettings(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettings, "failed to load default settings")
	}

	// 2. Settings file
	path, err := findSettingsFile(src)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrSettings, "failed to load settings from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("loaded settings file")
	}

	// 3. Environment, after an optional dotenv file
	if src.EnvFile != "" {
		if err := godotenv.Load(src.EnvFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrSettings, "failed to load env file %s", src.EnvFile).
				WithDetail("path", src.EnvFile)
		}
	}
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettings, "failed to load environment settings")
	}

	// 4. Explicit flags
	if len(src.Flags) > 0 {
		if err := k.Load(confmap.Provider(src.Flags, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrSettings, "failed to load flag settings")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettings, "failed to unmarshal settings")
	}

	if s.Jobs < 1 {
		s.Jobs = 1
	}
	return &s, nil
}

// Validate checks the settings needed before any input is processed
func (s *Settings) Validate() error {
	if s.Outdir == "" {
		return errors.New(errors.ErrMissingOutdir, "missing required parameter: outdir")
	}
	return nil
}

func findSettingsFile(src Sources) (string, error) {
	if src.File != "" {
		if _, err := os.Stat(src.File); err != nil {
			return "", errors.Wrapf(err, errors.ErrSettings, "settings file %s not found", src.File).
				WithDetail("path", src.File)
		}
		return src.File, nil
	}

	for _, name := range settingsFileNames {
		path := filepath.Join(src.WorkDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	xdg.Reload()
	if path, err := xdg.SearchConfigFile(userSettingsFile); err == nil {
		return path, nil
	}
	return "", nil
}

func parserFor(path string) koanf.Parser {
	if filepath.Ext(path) == ".toml" {
		return toml.Parser()
	}
	return yaml.Parser()
}
