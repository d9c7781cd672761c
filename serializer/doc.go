// Package serializer encodes and decodes request and response bodies.
//
// A Serializer handles one wire format. The package ships JSON and YAML
// variants in a read-only table (see Available); a Registry picks one by
// format name for outgoing bodies and by Content-Type for incoming ones:
//
//	reg, err := serializer.NewRegistry("yaml")
//	s, err := reg.ByContentType("application/json; charset=utf-8")
//	v, err := s.Loads(body)
package serializer
