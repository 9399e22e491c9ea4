package kasane

import (
	"github.com/go-viper/mapstructure/v2"
)

// Decode materializes the merged configuration into v, which must be
// a pointer to a struct or map. Field mapping uses the "config"
// struct tag; string values decode into time.Duration and any
// encoding.TextUnmarshaler implementation.
//
// Example:
//
//	type ServerConfig struct {
//	    Host    string        `config:"host"`
//	    Timeout time.Duration `config:"timeout"`
//	}
//	var sc ServerConfig
//	if err := cfg.Decode(&sc); err != nil { ... }
func (c *Config) Decode(v any) error {
	merged, err := c.Merged()
	if err != nil {
		return err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "config",
		Result:  v,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(merged)
}
