// Package config provides configuration management for the esqllint CLI.
//
// Values are layered, lowest to highest precedence: built-in defaults,
// the YAML config file, ESQLLINT_ environment variables and explicitly set
// command-line flags.
package config

// RuleOptions holds the free-form options of a single rule.
type RuleOptions = map[string]any

// LintConfig holds rule selection and per-rule settings.
type LintConfig struct {
	Disabled []string               `koanf:"disabled" yaml:"disabled,omitempty"`
	Severity map[string]string      `koanf:"severity" yaml:"severity,omitempty"`
	Rules    map[string]RuleOptions `koanf:"rules" yaml:"rules,omitempty"`
}

// Config holds all CLI configuration options.
type Config struct {
	Include      []string    `koanf:"include" yaml:"include"`
	Exclude      []string    `koanf:"exclude" yaml:"exclude,omitempty"`
	OutputFormat string      `koanf:"output" yaml:"output"`
	Verbose      bool        `koanf:"verbose" yaml:"verbose,omitempty"`
	Concurrency  int         `koanf:"concurrency" yaml:"concurrency,omitempty"`
	DocsURL      string      `koanf:"docs_url" yaml:"docs_url,omitempty"`
	Lint         *LintConfig `koanf:"lint" yaml:"lint,omitempty"`

	// ProjectRoot is the directory holding the config file, or the working
	// directory when there is none.
	ProjectRoot string `koanf:"-" yaml:"-"`
}

// Default configuration values.
const (
	DefaultConfigFile = ".esqllint.yaml"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultInclude    = "**/*.esql"
	EnvPrefix         = "ESQLLINT_"
)

// ConfigFileNames lists the file names searched for, in order.
var ConfigFileNames = []string{".esqllint.yaml", ".esqllint.yml", "esqllint.yaml", "esqllint.yml"}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Include:      []string{DefaultInclude},
		OutputFormat: DefaultOutput,
		Lint:         &LintConfig{},
	}
}
