// Package version holds nap's build version, set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/nap/version.Version=1.0.0"
//
// The version is sent in the default User-Agent of every request.
package version
