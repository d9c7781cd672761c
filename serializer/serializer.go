package serializer

import (
	"fmt"
	"mime"
	"strings"
)

// DefaultFormat is the format used when none is configured.
const DefaultFormat = "json"

// Serializer converts structured values to and from one wire format.
type Serializer interface {
	// Name is the format name, e.g. "json".
	Name() string
	// ContentType is the MIME type sent in Accept and Content-Type headers.
	ContentType() string
	// ContentTypes lists every MIME type this serializer can decode.
	ContentTypes() []string
	// Dumps encodes v.
	Dumps(v any) ([]byte, error)
	// Loads decodes data into generic values (maps, slices, scalars).
	Loads(data []byte) (any, error)
}

// available is built once and never mutated.
var available = []Serializer{JSON{}, YAML{}}

// Available returns the built-in serializers.
func Available() []Serializer {
	out := make([]Serializer, len(available))
	copy(out, available)
	return out
}

// Registry resolves serializers by format name or content type.
// It is immutable once built and safe for concurrent use.
type Registry struct {
	serializers []Serializer
	byName      map[string]Serializer
	byType      map[string]Serializer
	def         Serializer
}

// NewRegistry builds a registry whose default serializer is defaultFormat.
// With no variants it uses the built-in table. An empty defaultFormat means
// DefaultFormat.
func NewRegistry(defaultFormat string, variants ...Serializer) (*Registry, error) {
	if len(variants) == 0 {
		variants = available
	}
	if len(variants) == 0 {
		return nil, ErrNoneAvailable
	}

	r := &Registry{
		serializers: make([]Serializer, 0, len(variants)),
		byName:      make(map[string]Serializer, len(variants)),
		byType:      make(map[string]Serializer),
	}
	for _, s := range variants {
		if s == nil {
			continue
		}
		r.serializers = append(r.serializers, s)
		r.byName[strings.ToLower(s.Name())] = s
		for _, ct := range s.ContentTypes() {
			ct = strings.ToLower(ct)
			// first registration wins for shared aliases
			if _, ok := r.byType[ct]; !ok {
				r.byType[ct] = s
			}
		}
	}
	if len(r.serializers) == 0 {
		return nil, ErrNoneAvailable
	}

	if defaultFormat == "" {
		defaultFormat = DefaultFormat
	}
	def, ok := r.byName[strings.ToLower(defaultFormat)]
	if !ok {
		return nil, fmt.Errorf("%w: format %q", ErrNotAvailable, defaultFormat)
	}
	r.def = def

	return r, nil
}

// Default returns the registry's default serializer.
func (r *Registry) Default() Serializer {
	return r.def
}

// ByName returns the serializer for a format name. An empty name yields the default.
func (r *Registry) ByName(name string) (Serializer, error) {
	if name == "" {
		return r.def, nil
	}
	s, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: format %q", ErrNotAvailable, name)
	}
	return s, nil
}

// ByContentType returns the serializer accepting the given MIME type.
// Media type parameters such as charset are ignored.
func (r *Registry) ByContentType(contentType string) (Serializer, error) {
	mediaType := mediaTypeOf(contentType)
	s, ok := r.byType[mediaType]
	if !ok {
		return nil, fmt.Errorf("%w: content type %q", ErrNotAvailable, contentType)
	}
	return s, nil
}

// Names returns the registered format names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.serializers))
	for i, s := range r.serializers {
		names[i] = s.Name()
	}
	return names
}

func mediaTypeOf(contentType string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		return mt
	}
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
