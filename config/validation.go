package config

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"

	"github.com/whiskers-launcher/companion/errors"
)

// Validate checks the configuration struct tags and returns a CONFIG_INVALID
// error describing the first violation.
func (c *Config) Validate() error {
	v := validator.New()
	v.RegisterTagNameFunc(useYAMLFieldNames)

	if err := v.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if stderrors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			return errors.ConfigInvalid(describe(first)).
				WithDetail("field", first.Namespace()).
				WithDetail("value", fmt.Sprintf("%v", first.Value()))
		}
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "configuration validation failed")
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of [%s]", fe.Field(), fe.Param())
	case "excludesall":
		return fmt.Sprintf("field '%s' must be a bare file name", fe.Field())
	case "gte", "lte":
		return fmt.Sprintf("value of field '%s' is not in the expected range", fe.Field())
	default:
		return fmt.Sprintf("field '%s' failed '%s' validation", fe.Field(), fe.Tag())
	}
}

func useYAMLFieldNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
