package settings

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/whiskers-launcher/companion/schema"
)

// DecodeExtension decodes the rows of one extension into a typed struct.
// Fields are matched by their `setting` tag; string values are converted
// to the field type ("true" to bool, "42" to int).
//
// Example:
//
//	var cfg struct {
//		Precision int  `setting:"precision"`
//		Degrees   bool `setting:"degrees"`
//	}
//	err := settings.DecodeExtension(s, "calc", &cfg)
func DecodeExtension(settings schema.Settings, extensionID string, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "setting",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(ForExtension(settings, extensionID)); err != nil {
		return fmt.Errorf("failed to decode settings of extension '%s': %w", extensionID, err)
	}
	return nil
}
