package display

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/padgen/errors"
)

// Output formats accepted by Render
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// MarshalJSON marshals JSON with pretty formatting for human-readable output
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Marshal renders v in one of the structured formats.
func Marshal(v interface{}, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return MarshalJSON(v)
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatTOML:
		return toml.Marshal(v)
	}
	return nil, errors.WithHint(
		errors.Newf("unknown output format %q", format),
		"use json, yaml or toml")
}

// Render writes v to w in format, ending with a newline.
func Render(w io.Writer, v interface{}, format string) error {
	data, err := Marshal(v, format)
	if err != nil {
		return err
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "write output")
}
