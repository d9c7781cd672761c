package util

import (
	"fmt"
	"maps"
	"net/url"
	"reflect"
	"slices"
	"strings"
)

// Param is a single query parameter as supplied by a caller.
// Value may be a scalar or a slice/array, which expands to one pair per element.
type Param struct {
	Key   string
	Value any
}

// Pair is a single key/value entry of an encoded query string.
type Pair struct {
	Key   string
	Value string
}

// TransformParams flattens params into ordered key/value pairs.
// Keys keep the order they were given in; list values expand in element order.
// Nil values produce no pair.
func TransformParams(params ...Param) []Pair {
	pairs := make([]Pair, 0, len(params))
	for _, p := range params {
		pairs = appendParam(pairs, p.Key, p.Value)
	}
	return pairs
}

// ParamsFromMap converts m into params ordered by key.
func ParamsFromMap(m map[string]any) []Param {
	params := make([]Param, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		params = append(params, Param{Key: k, Value: m[k]})
	}
	return params
}

// EncodeQuery encodes pairs as a query string, preserving their order.
func EncodeQuery(pairs []Pair) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

func appendParam(pairs []Pair, key string, value any) []Pair {
	switch v := value.(type) {
	case nil:
		return pairs
	case string:
		return append(pairs, Pair{Key: key, Value: v})
	case []byte:
		return append(pairs, Pair{Key: key, Value: string(v)})
	case []string:
		for _, s := range v {
			pairs = append(pairs, Pair{Key: key, Value: s})
		}
		return pairs
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := range rv.Len() {
			pairs = appendParam(pairs, key, rv.Index(i).Interface())
		}
		return pairs
	}
	return append(pairs, Pair{Key: key, Value: fmt.Sprint(value)})
}
