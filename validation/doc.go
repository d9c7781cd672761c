// Package validation validates nap configuration.
//
// Struct tag validation uses go-playground/validator; field names in
// errors come from the mapstructure tag, so they match the keys a user
// writes in config.yml.
//
//	type Config struct {
//	    BaseURL string `mapstructure:"base_url" validate:"required"`
//	    Format  string `mapstructure:"format" validate:"omitempty,oneof=json yaml"`
//	}
//	err := validation.Validate(cfg)
//
// Checks that tags cannot express are collected with a Validator:
//
//	v := validation.New()
//	v.OneOf("auth.in", in, []string{"header", "query"})
//	err := v.Error()
package validation
