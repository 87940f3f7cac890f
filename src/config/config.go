package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	Auth            AuthConfig           `mapstructure:"auth"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Secrets         SecretsConfig        `mapstructure:"secrets"`
	Logging         LoggingConfig        `mapstructure:"logging"`
}

type ServiceConfig struct {
	Port           string        `mapstructure:"port"`
	FrontendURL    string        `mapstructure:"frontendUrl"`
	UseHTTPS       bool          `mapstructure:"useHttps"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`
}

type DatabasesConfig struct {
	SQL SQLConfig `mapstructure:"sql"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
	MaxConns         int32  `mapstructure:"maxConns"`
	MinConns         int32  `mapstructure:"minConns"`
	AutoMigrate      bool   `mapstructure:"autoMigrate"`
}

// DSN returns the connection string, building a postgres keyword/value DSN from
// the individual fields when no explicit connection string is configured.
func (c SQLConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host,
		c.Username,
		c.Password,
		c.Database,
		c.Port)
}

type AuthConfig struct {
	JWTSecretKey             string `mapstructure:"jwtSecretKey"`
	JWTRefreshSecretKey      string `mapstructure:"jwtRefreshSecretKey"`
	JWTAlgorithm             string `mapstructure:"jwtAlgorithm"`
	AccessTokenExpireMinutes int    `mapstructure:"accessTokenExpireMinutes"`
	RefreshTokenExpireDays   int    `mapstructure:"refreshTokenExpireDays"`
	SessionSecret            string `mapstructure:"sessionSecret"`
}

type ExternalClientConfig struct {
	Google GoogleConfig `mapstructure:"google"`
}

type GoogleConfig struct {
	ClientID         string `mapstructure:"clientId"`
	ClientSecret     string `mapstructure:"clientSecret"`
	RedirectURI      string `mapstructure:"redirectUri"`
	ClockSkewSeconds int    `mapstructure:"clockSkewSeconds"`
}

type SecretsConfig struct {
	AWS AWSSecretsConfig `mapstructure:"aws"`
}

type AWSSecretsConfig struct {
	Region   string `mapstructure:"region"`
	SecretID string `mapstructure:"secretId"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	ToFile   bool   `mapstructure:"toFile"`
	FilePath string `mapstructure:"filePath"`
}

const envPrefix = "AMIGO"

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.port", "8000")
	v.SetDefault("service.frontendUrl", "http://localhost:3000")
	v.SetDefault("service.requestTimeout", 10*time.Second)
	v.SetDefault("databases.sql.driver", "postgres")
	v.SetDefault("databases.sql.maxConns", 5)
	v.SetDefault("databases.sql.minConns", 1)
	v.SetDefault("auth.jwtAlgorithm", "HS256")
	v.SetDefault("auth.accessTokenExpireMinutes", 15)
	v.SetDefault("auth.refreshTokenExpireDays", 7)
	v.SetDefault("externalClients.google.clockSkewSeconds", 5)
	v.SetDefault("logging.level", "info")
}

// LoadConfig reads appsettings.yaml from path and, when env is not empty, merges
// appsettings.<env>.yaml on top of it. Environment variables prefixed with AMIGO_
// override both (e.g. AMIGO_AUTH_JWTSECRETKEY).
func LoadConfig(path string, env string) (*Config, error) {
	var cfg Config

	// A missing .env is fine, deployments set real environment variables.
	if err := godotenv.Load(filepath.Join(path, "..", ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(path)
	v.SetConfigName("appsettings")
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	if env != "" {
		v.SetConfigName("appsettings." + env)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the server cannot start without. It runs after
// secrets have been applied.
func (c *Config) Validate() error {
	if c.Auth.JWTSecretKey == "" {
		return errors.New("auth.jwtSecretKey is required")
	}
	if c.Auth.JWTAlgorithm != "HS256" && c.Auth.JWTAlgorithm != "HS384" && c.Auth.JWTAlgorithm != "HS512" {
		return fmt.Errorf("unsupported jwt algorithm %q", c.Auth.JWTAlgorithm)
	}
	switch c.Databases.SQL.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported sql driver %q", c.Databases.SQL.Driver)
	}
	return nil
}

// AccessTokenTTL is the lifetime of issued access tokens.
func (c AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// RefreshTokenTTL is the lifetime of issued refresh tokens.
func (c AuthConfig) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenExpireDays) * 24 * time.Hour
}

// ClockSkew is the tolerance applied when validating Google identity tokens.
func (c GoogleConfig) ClockSkew() time.Duration {
	return time.Duration(c.ClockSkewSeconds) * time.Second
}

// ApplySecrets overrides credentials with values fetched from a secret store.
// Keys are the upper-case environment variable names of each setting.
func (c *Config) ApplySecrets(values map[string]string) {
	if v, ok := values["JWT_SECRET_KEY"]; ok && v != "" {
		c.Auth.JWTSecretKey = v
	}
	if v, ok := values["JWT_REFRESH_SECRET_KEY"]; ok && v != "" {
		c.Auth.JWTRefreshSecretKey = v
	}
	if v, ok := values["GOOGLE_CLIENT_ID"]; ok && v != "" {
		c.ExternalClients.Google.ClientID = v
	}
	if v, ok := values["GOOGLE_CLIENT_SECRET"]; ok && v != "" {
		c.ExternalClients.Google.ClientSecret = v
	}
	if v, ok := values["SESSION_SECRET"]; ok && v != "" {
		c.Auth.SessionSecret = v
	}
	if v, ok := values["DATABASE_URL"]; ok && v != "" {
		c.Databases.SQL.ConnectionString = v
	}
}
