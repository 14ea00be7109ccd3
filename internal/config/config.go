package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Format   *FormatConfig   `mapstructure:"format"`
}

type APIConfig struct {
	Environment        string `mapstructure:"environment"`
	BaseURL            string `mapstructure:"base_url"`
	Port               string `mapstructure:"port"`
	JWTSigningKey      string `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// FormatConfig carries the format-specific rules the engine treats as
// injected configuration: how many teams debate, which judge roles hold
// decision-making standing, and how individual ballots are combined.
type FormatConfig struct {
	SidesPerDebate int      `mapstructure:"sides_per_debate"`
	TeamsPerSide   int      `mapstructure:"teams_per_side"`
	Aggregation    string   `mapstructure:"aggregation"` // "consensus" or "majority"
	DecisiveRoles  []string `mapstructure:"decisive_roles"`
}

func Load(path string) (*AppConfig, error) {
	viper.SetConfigFile(path)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	config := &AppConfig{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	if config.Format == nil {
		config.Format = &FormatConfig{}
	}
	config.Format.applyDefaults()

	return config, nil
}

func (f *FormatConfig) applyDefaults() {
	if f.SidesPerDebate == 0 {
		f.SidesPerDebate = 2
	}
	if f.TeamsPerSide == 0 {
		f.TeamsPerSide = 1
	}
	if f.Aggregation == "" {
		f.Aggregation = "consensus"
	}
	if len(f.DecisiveRoles) == 0 {
		f.DecisiveRoles = []string{"C", "P"}
	}
}
