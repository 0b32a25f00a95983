package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/pagesmith/pkg/errors"
	"github.com/arthur-debert/pagesmith/pkg/filesystem"
	"github.com/arthur-debert/pagesmith/pkg/logging"
	"github.com/arthur-debert/pagesmith/pkg/overrides"
	"github.com/arthur-debert/pagesmith/pkg/tree"
)

// Format is the serialization of a base configuration file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// DetectFormat picks the parser for path. Only an exact ".json" extension
// selects JSON; unknown extensions fall through to YAML.
func DetectFormat(path string) Format {
	switch filepath.Ext(path) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	case ".hcl":
		return FormatHCL
	default:
		return FormatYAML
	}
}

// Load reads the base configuration at path. An empty path yields an empty
// mapping. Read failures are CONFIG_LOAD errors, parse failures and
// non-mapping documents are CONFIG_PARSE errors; both name the file.
func Load(fsys filesystem.FS, path string) (*tree.Mapping, error) {
	logger := logging.GetLogger("config")

	if path == "" {
		logger.Debug().Msg("Config not specified, an empty mapping will be passed to templates")
		return tree.NewMapping(), nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config file %s", path).
			WithDetail("path", path)
	}

	format := DetectFormat(path)
	native, err := decode(format, path, data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s config file %s", format, path).
			WithDetail("path", path)
	}

	if native == nil {
		logger.Debug().Str("path", path).Msg("config file is empty")
		return tree.NewMapping(), nil
	}

	node, err := tree.FromNative(native)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to read config file %s", path).
			WithDetail("path", path)
	}

	root, ok := node.(*tree.Mapping)
	if !ok {
		return nil, errors.Newf(errors.ErrConfigParse,
			"config file %s must contain a mapping at the top level, got a %s", path, node.Kind()).
			WithDetail("path", path)
	}

	logger.Debug().
		Str("path", path).
		Str("format", string(format)).
		Int("keys", len(root.Entries)).
		Msg("loaded base config")

	return root, nil
}

// Compose loads the base configuration and applies overrides in order.
// The result is the single tree shared by every template in the run.
func Compose(fsys filesystem.FS, path string, tokens []string) (*tree.Mapping, error) {
	root, err := Load(fsys, path)
	if err != nil {
		return nil, err
	}
	if err := overrides.ApplyAll(root, tokens); err != nil {
		return nil, err
	}
	return root, nil
}

func decode(format Format, path string, data []byte) (any, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatTOML:
		var out map[string]any
		if err := toml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return out, nil
	case FormatHCL:
		return decodeHCL(path, data)
	default:
		var out any
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return out, nil
}
