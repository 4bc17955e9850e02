package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// Validator wraps go-playground/validator with the shard's own tags
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the "identifier" tag: letters, digits, '_' and '-', the
// alphabet of player ids, shard names and wormhole names
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		_, err := shared.NewPlayerID(fl.Field().String())
		return err == nil
	})
	return &Validator{validate: v}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

func (v *Validator) formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf("%s: failed %q (value: '%v')", e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// ValidateConfig checks tags first, then the rules that span sections
func ValidateConfig(cfg *Config) error {
	if err := NewValidator().Validate(cfg); err != nil {
		return err
	}

	var problems []string
	if cfg.Database.Enabled && cfg.Database.Type == "postgres" && cfg.Database.URL == "" && cfg.Database.Host == "" {
		problems = append(problems, "postgres database needs a url or a host")
	}
	if len(cfg.Wormholes) > 0 && cfg.Shard.PublicURI == "" {
		problems = append(problems, "shard.public_uri is required when wormholes are configured")
	}
	if _, self := cfg.Wormholes[cfg.Shard.Name]; self {
		problems = append(problems, fmt.Sprintf("wormhole %q points back at this shard", cfg.Shard.Name))
	}
	if len(problems) > 0 {
		return fmt.Errorf("validation failed:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}
