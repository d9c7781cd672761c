package util

import (
	"fmt"
	"strings"
)

// segmentEscaper keeps query and fragment delimiters inside a segment part of the path.
var segmentEscaper = strings.NewReplacer("?", "%3F", "#", "%23")

// Join appends path segments to base and returns the resulting URL.
//
// The base keeps its scheme, authority, query and fragment untouched; an empty
// path is treated as "/". Segments are stringified with fmt.Sprint and joined
// with "/" unless the path already ends in one. A leading "/" on a segment is
// dropped instead of replacing the base path, and a trailing "/" on the last
// segment is kept:
//
//	Join("http://x", "a", 1, "b/") // "http://x/a/1/b/"
func Join(base string, segments ...any) string {
	parts := splitURL(base)
	if parts.path == "" {
		parts.path = "/"
	}
	for _, seg := range segments {
		parts.path = joinPath(parts.path, segmentEscaper.Replace(fmt.Sprint(seg)))
	}
	return parts.String()
}

func joinPath(p, segment string) string {
	segment = strings.TrimLeft(segment, "/")
	if strings.HasSuffix(p, "/") {
		return p + segment
	}
	return p + "/" + segment
}

// urlParts holds a URL split the way urlsplit does it: nothing is decoded or re-encoded.
type urlParts struct {
	prefix   string // "scheme:" and "//authority", when present
	path     string
	query    string
	fragment string
}

func (u urlParts) String() string {
	var b strings.Builder
	b.Grow(len(u.prefix) + len(u.path) + len(u.query) + len(u.fragment) + 2)
	b.WriteString(u.prefix)
	b.WriteString(u.path)
	if u.query != "" {
		b.WriteByte('?')
		b.WriteString(u.query)
	}
	if u.fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.fragment)
	}
	return b.String()
}

func splitURL(raw string) urlParts {
	var u urlParts
	rest := raw
	if before, after, ok := strings.Cut(rest, "#"); ok {
		rest, u.fragment = before, after
	}
	if before, after, ok := strings.Cut(rest, "?"); ok {
		rest, u.query = before, after
	}
	if n := schemeLen(rest); n > 0 {
		u.prefix, rest = rest[:n+1], rest[n+1:]
	}
	if strings.HasPrefix(rest, "//") {
		end := strings.IndexByte(rest[2:], '/')
		if end < 0 {
			u.prefix += rest
			rest = ""
		} else {
			u.prefix += rest[:2+end]
			rest = rest[2+end:]
		}
	}
	u.path = rest
	return u
}

// schemeLen returns the length of a leading RFC 3986 scheme terminated by ':', or 0.
func schemeLen(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' || c == '+' || c == '-' || c == '.':
			if i == 0 {
				return 0
			}
		case c == ':':
			return i
		default:
			return 0
		}
	}
	return 0
}
