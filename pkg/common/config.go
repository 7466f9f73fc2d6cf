package common

import (
	"os"

	"gopkg.in/yaml.v3"
)

type PrintOptions struct {
	Format            string `yaml:"option-format,omitempty"`
	Indent            int    `yaml:"option-indent,omitempty"`
	IncludeSpans      bool   `yaml:"option-include-spans,omitempty"`
	TrimTokenOnOutput int    `yaml:"option-trim-token-on-output,omitempty"`
}

// Config is the optional YAML configuration shared by the lox tools.
type Config struct {
	Print  PrintOptions `yaml:"print,omitempty"`
	Bundle string       `yaml:"bundle,omitempty"`
	Debug  bool         `yaml:"debug,omitempty"`
}

const DEFAULT_FORMAT = "JSON"

func DefaultConfig() *Config {
	return &Config{
		Print: PrintOptions{
			Format:       DEFAULT_FORMAT,
			Indent:       2,
			IncludeSpans: true,
		},
	}
}

// LoadConfig reads a YAML configuration file on top of the defaults.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename) // #nosec G304 - CLI tool reads user-specified config files
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	if config.Print.Format == "" {
		config.Print.Format = DEFAULT_FORMAT
	}
	return config, nil
}

// IndentString returns the indentation step used by the tree writers.
func (o *PrintOptions) IndentString() string {
	if o.Indent <= 0 {
		return ""
	}
	b := make([]byte, o.Indent)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
