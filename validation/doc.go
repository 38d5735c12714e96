// Package validation checks configuration and step definitions before a
// chain is built.
//
// Struct tag validation uses go-playground/validator and reports field names
// by their mapstructure key, so messages match the configuration file:
//
//	type OutputConfig struct {
//	    Path string `mapstructure:"path" validate:"required"`
//	}
//	err := validation.Struct(cfg)
//
// Rules that depend on several fields are collected programmatically:
//
//	v := validation.New()
//	v.Required("steps[0].op", step.Op)
//	v.Check(step.Column == "" || isArithmetic, "steps[0].column", "only arithmetic ops take a column")
//	err := v.Err()
package validation
