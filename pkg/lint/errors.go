package lint

import "fmt"

// ConfigError reports a rule that cannot be built from its configuration.
type ConfigError struct {
	RuleID string
	Key    string // option key, empty when the error is not about one option
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("rule %s: %v", e.RuleID, e.Err)
	}
	return fmt.Sprintf("rule %s: option %q: %v", e.RuleID, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
