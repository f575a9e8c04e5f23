package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/compactsheet/pkg/block"
	"github.com/matzehuels/compactsheet/pkg/config"
	"github.com/matzehuels/compactsheet/pkg/errors"
)

// Format is a supported input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath returns the format implied by path's extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported file extension %q", filepath.Ext(path)).
		Suggest("use a .json or .toml file")
}

type unitFile struct {
	Units []block.Unit `toml:"unit"`
}

// ReadUnits decodes content units from r.
// ReadUnits does not close r.
func ReadUnits(r io.Reader, f Format) ([]block.Unit, error) {
	var units []block.Unit
	switch f {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&units); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode units")
		}
	case FormatTOML:
		var file unitFile
		if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode units")
		}
		units = file.Units
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
	}

	if units == nil {
		units = []block.Unit{}
	}
	return units, nil
}

// ImportUnits reads content units from the file at path.
func ImportUnits(path string) ([]block.Unit, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadUnits(file, f)
}

// ReadConfig decodes a sparse configuration from r. Unknown TOML keys are
// rejected so that typos do not silently fall back to defaults.
// ReadConfig does not close r.
func ReadConfig(r io.Reader, f Format) (config.Partial, error) {
	var p config.Partial
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return config.Partial{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&p)
		if err != nil {
			return config.Partial{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return config.Partial{}, errors.New(errors.ErrCodeInvalidFormat, "unknown config key %q", undecoded[0].String()).
				Suggest("check the key against the documented configuration fields")
		}
	default:
		return config.Partial{}, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
	}
	return p, nil
}

// ImportConfig reads a sparse configuration from the file at path.
func ImportConfig(path string) (config.Partial, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return config.Partial{}, err
	}
	file, err := open(path)
	if err != nil {
		return config.Partial{}, err
	}
	defer file.Close()
	return ReadConfig(file, f)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	return f, nil
}
