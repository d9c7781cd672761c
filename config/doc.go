// Package config loads client configuration from a YAML file, a .env
// file and the environment using Viper.
//
// Files are searched in standard locations for the given client name
// unless passed explicitly. Environment variables prefixed with the
// upper-cased client name override file values; nested keys are matched
// by underscore, so GITHUB_AUTH_TOKEN sets auth.token for client "github".
//
// # Usage
//
//	var cfg rest.Config
//	err := config.LoadConfig("github", &cfg, config.WithConfigFile("github.yml"))
package config
