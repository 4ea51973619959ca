package fileutil

import (
	"encoding/json"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mthorborn/skel/internal/errors"
)

// WriteJSONFile writes v as indented JSON through the safe-write
// sequence. Output uses 2-space indentation and ends with a newline.
func WriteJSONFile(path string, v any, opts ...Option) (*Result, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling JSON")
	}
	data = append(data, '\n')
	return WriteFile(path, data, opts...)
}

// WriteYAMLFile writes v as YAML through the safe-write sequence.
func WriteYAMLFile(path string, v any, opts ...Option) (_ *Result, err error) {
	// yaml.Marshal panics on unmarshalable types; recover and return error
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling YAML")
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return WriteFile(path, data, opts...)
}

// WriteTOMLFile writes v as TOML through the safe-write sequence.
func WriteTOMLFile(path string, v any, opts ...Option) (*Result, error) {
	data, err := toml.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling TOML")
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return WriteFile(path, data, opts...)
}
