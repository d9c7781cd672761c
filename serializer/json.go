package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSON encodes bodies as JSON. Numbers decode to float64.
type JSON struct{}

var jsonContentTypes = []string{
	"application/json",
	"application/x-javascript",
	"text/javascript",
	"text/x-javascript",
	"text/x-json",
}

// Name implements Serializer.
func (JSON) Name() string { return "json" }

// ContentType implements Serializer.
func (JSON) ContentType() string { return "application/json" }

// ContentTypes implements Serializer.
func (JSON) ContentTypes() []string { return jsonContentTypes }

// Dumps implements Serializer.
func (JSON) Dumps(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serializer: json encode: %w", err)
	}
	return data, nil
}

// Loads implements Serializer.
func (JSON) Loads(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(bytes.TrimSpace(data), &v); err != nil {
		return nil, fmt.Errorf("serializer: json decode: %w", err)
	}
	return v, nil
}
