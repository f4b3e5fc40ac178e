package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. SUMMARIZE_FORMAT.
const EnvPrefix = "SUMMARIZE"

// Keys shared by flags, environment and config file.
const (
	KeyFormat     = "format"
	KeySignatures = "signatures"
	KeyNoColor    = "no_color"
	KeyLogLevel   = "log.level"
)

// Settings is the resolved configuration for one invocation.
type Settings struct {
	Format     string
	Signatures string
	NoColor    bool
	LogLevel   string
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyFormat, "text")
	v.SetDefault(KeySignatures, "")
	v.SetDefault(KeyNoColor, false)
	v.SetDefault(KeyLogLevel, "warn")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile loads configFile, or .summarize.yaml from the working directory
// when configFile is empty. A missing default file is not an error.
func ReadFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".summarize")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Load resolves Settings from v.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		Format:     strings.ToLower(v.GetString(KeyFormat)),
		Signatures: v.GetString(KeySignatures),
		NoColor:    v.GetBool(KeyNoColor),
		LogLevel:   strings.ToLower(v.GetString(KeyLogLevel)),
	}
	switch s.Format {
	case "text", "json":
	default:
		return Settings{}, fmt.Errorf("unsupported format %q (want text or json)", s.Format)
	}
	return s, nil
}
