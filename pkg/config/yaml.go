package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML decodes the YAML file at path into v. Unknown keys are rejected
// so that typos in configuration files fail at startup.
func LoadYAML[T any](path string, v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrReadingFile, err)
	}

	return DecodeYAML(bytes.NewReader(data), v)
}

// DecodeYAML decodes YAML from r into v with the same strictness as LoadYAML.
// An empty document leaves v untouched.
func DecodeYAML[T any](r io.Reader, v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}
