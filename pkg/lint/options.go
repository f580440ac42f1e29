package lint

import (
	"errors"
	"slices"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeOptions decodes a rule's option map into out, a pointer to a struct
// with `mapstructure` tags. Values are weakly typed so that options read from
// environment variables ("true", "10") decode into bool and int fields.
// Keys with no matching field are reported as a ConfigError.
func DecodeOptions(ruleID string, opts map[string]any, out any) error {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return &ConfigError{RuleID: ruleID, Err: err}
	}
	if err := dec.Decode(opts); err != nil {
		return &ConfigError{RuleID: ruleID, Err: err}
	}
	if len(md.Unused) > 0 {
		slices.Sort(md.Unused)
		return &ConfigError{RuleID: ruleID, Key: md.Unused[0], Err: errors.New("unknown option")}
	}
	return nil
}
