// Package util holds the URL and query helpers the client is built on:
// Join composes a base URL with path segments, TransformParams flattens
// query parameters into ordered pairs, and MaskSecret redacts
// credentials for display.
package util
