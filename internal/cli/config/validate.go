package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/esqllint/pkg/lint"
)

// OutputFormats lists the accepted values of the output key.
var OutputFormats = []string{"auto", "text", "markdown", "json", "github"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, strings.ToLower(c.OutputFormat)) {
		return fmt.Errorf("invalid output format %q (expected one of %s)", c.OutputFormat, strings.Join(OutputFormats, ", "))
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.Lint == nil {
		return nil
	}
	for id, sev := range c.Lint.Severity {
		if strings.EqualFold(sev, "off") {
			continue
		}
		if _, ok := lint.ParseSeverity(sev); !ok {
			return fmt.Errorf("lint.severity.%s: unknown severity %q", id, sev)
		}
	}
	return nil
}
