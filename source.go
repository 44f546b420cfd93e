package goexpect

import (
	json "github.com/goccy/go-json"
	yaml "gopkg.in/yaml.v3"
)

// Subject sources decode wire payloads into plain any values so structural
// assertions ("to satisfy", "to contain", ...) can run against serialized
// fixtures without hand-building maps.

// JSONBytes decodes a JSON payload into an assertion subject.
func JSONBytes(b []byte) (any, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// YAMLBytes decodes a YAML payload into an assertion subject. Mappings decode
// as map[string]any, matching what "to satisfy" patterns expect.
func YAMLBytes(b []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// MustJSON is JSONBytes for fixtures known to be well-formed; it panics on
// decode errors.
func MustJSON(b []byte) any {
	v, err := JSONBytes(b)
	if err != nil {
		panic(err)
	}
	return v
}

// MustYAML is YAMLBytes for fixtures known to be well-formed.
func MustYAML(b []byte) any {
	v, err := YAMLBytes(b)
	if err != nil {
		panic(err)
	}
	return v
}
