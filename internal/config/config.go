// Package config holds the CLI's configuration. The library packages under
// pkg/ take no configuration at all; everything here concerns the graft
// command only.
package config

import "github.com/spf13/viper"

// Config is the full configuration for the graft command.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

// LoggerConfig controls the global zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// OutputConfig controls how command results are written.
type OutputConfig struct {
	// Format is "json" or "text".
	Format string `mapstructure:"format" yaml:"format"`
	// Pretty indents JSON output.
	Pretty bool `mapstructure:"pretty" yaml:"pretty"`
}

// NewDefaultConfig returns the configuration used when no config file or
// environment overrides are present.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			ServiceName: "graft",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      7,
		},
		Output: OutputConfig{
			Format: "json",
			Pretty: true,
		},
	}
}

// SetDefaults registers the default values with a viper instance so partial
// config files only override what they mention.
func SetDefaults(v *viper.Viper) {
	def := NewDefaultConfig()
	v.SetDefault("logger.level", def.Logger.Level)
	v.SetDefault("logger.format", def.Logger.Format)
	v.SetDefault("logger.service_name", def.Logger.ServiceName)
	v.SetDefault("logger.max_size", def.Logger.MaxSize)
	v.SetDefault("logger.max_backups", def.Logger.MaxBackups)
	v.SetDefault("logger.max_age", def.Logger.MaxAge)
	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("output.pretty", def.Output.Pretty)
}
