package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hitset/pkg/errors"
	"github.com/matzehuels/hitset/pkg/hitset"
	"github.com/matzehuels/hitset/pkg/set"
)

type jsonInstance struct {
	Sets *[][]string `json:"sets"`
}

type tomlInstance struct {
	Sets [][]string `toml:"sets"`
}

// ReadJSON decodes a JSON instance from r.
//
// ReadJSON returns an INVALID_INPUT error if the JSON is malformed or lacks
// the "sets" key, and an INVALID_ELEMENT error for a bad label. It does not
// close r.
func ReadJSON(r io.Reader) (hitset.Instance[string], error) {
	var data jsonInstance
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON instance")
	}
	if data.Sets == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "instance has no \"sets\" array")
	}
	return build(*data.Sets)
}

// ReadTOML decodes a TOML instance from r. Errors are reported as for
// [ReadJSON].
func ReadTOML(r io.Reader) (hitset.Instance[string], error) {
	var data tomlInstance
	md, err := toml.NewDecoder(r).Decode(&data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode TOML instance")
	}
	if !md.IsDefined("sets") {
		return nil, errors.New(errors.ErrCodeInvalidInput, "instance has no \"sets\" array")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown key %q in instance", undecoded[0].String())
	}
	return build(data.Sets)
}

// ImportFile reads the instance file at path. The format is chosen by
// extension; anything other than .json or .toml is an INVALID_FORMAT error,
// and a missing file is a FILE_NOT_FOUND error.
func ImportFile(path string) (hitset.Instance[string], error) {
	ext, err := errors.ValidateInstancePath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "instance file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if ext == "toml" {
		return ReadTOML(f)
	}
	return ReadJSON(f)
}

func build(raw [][]string) (hitset.Instance[string], error) {
	inst := make(hitset.Instance[string], len(raw))
	for i, labels := range raw {
		for _, l := range labels {
			if err := errors.ValidateElement(l); err != nil {
				return nil, fmt.Errorf("set %d: %w", i, err)
			}
		}
		inst[i] = set.Of(labels...)
	}
	return inst, nil
}
