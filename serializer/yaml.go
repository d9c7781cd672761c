package serializer

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// YAML encodes bodies as YAML. Mappings decode to map[string]any.
type YAML struct{}

var yamlContentTypes = []string{
	"text/yaml",
	"text/x-yaml",
	"application/yaml",
	"application/x-yaml",
}

// Name implements Serializer.
func (YAML) Name() string { return "yaml" }

// ContentType implements Serializer.
func (YAML) ContentType() string { return "text/yaml" }

// ContentTypes implements Serializer.
func (YAML) ContentTypes() []string { return yamlContentTypes }

// Dumps implements Serializer.
func (YAML) Dumps(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serializer: yaml encode: %w", err)
	}
	return data, nil
}

// Loads implements Serializer.
func (YAML) Loads(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("serializer: yaml decode: %w", err)
	}
	return normalizeYAML(v), nil
}

// normalizeYAML rewrites non-string-keyed mappings so callers only ever see map[string]any.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}
