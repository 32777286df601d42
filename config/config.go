package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Provider    ProviderConfig
	FatSecret   FatSecretConfig
	Nutritionix NutritionixConfig
	Firestore   FirestoreConfig
	Cache       CacheConfig
	Auth        AuthConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProviderConfig selects which nutrition provider backs the deployment
type ProviderConfig struct {
	Name string `mapstructure:"name"` // "fatsecret" or "nutritionix"
}

// FatSecretConfig holds FatSecret API credentials and endpoints
type FatSecretConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	BaseURL      string `mapstructure:"base_url"`
	TokenURL     string `mapstructure:"token_url"`
}

// NutritionixConfig holds Nutritionix API credentials
type NutritionixConfig struct {
	AppID   string `mapstructure:"app_id"`
	AppKey  string `mapstructure:"app_key"`
	BaseURL string `mapstructure:"base_url"`
}

// FirestoreConfig holds document store configuration
type FirestoreConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
	UsersCollection string `mapstructure:"users_collection"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// AuthConfig holds JWT verification configuration
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/proteinbuddy/")

	// Environment variable settings
	v.SetEnvPrefix("PROTEINBUDDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Provider defaults
	v.SetDefault("provider.name", "fatsecret")

	// FatSecret defaults. Credentials default to empty so env-only values
	// are visible to Unmarshal.
	v.SetDefault("fatsecret.client_id", "")
	v.SetDefault("fatsecret.client_secret", "")
	v.SetDefault("fatsecret.base_url", "https://platform.fatsecret.com/rest")
	v.SetDefault("fatsecret.token_url", "https://oauth.fatsecret.com/connect/token")

	// Nutritionix defaults
	v.SetDefault("nutritionix.app_id", "")
	v.SetDefault("nutritionix.app_key", "")
	v.SetDefault("nutritionix.base_url", "https://trackapi.nutritionix.com/v2")

	// Firestore defaults
	v.SetDefault("firestore.project_id", "")
	v.SetDefault("firestore.credentials_file", "")
	v.SetDefault("firestore.users_collection", "users")

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "")

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Provider.Name {
	case "fatsecret":
		if config.FatSecret.ClientID == "" || config.FatSecret.ClientSecret == "" {
			return fmt.Errorf("FatSecret credentials are required (set PROTEINBUDDY_FATSECRET_CLIENT_ID and PROTEINBUDDY_FATSECRET_CLIENT_SECRET)")
		}
	case "nutritionix":
		if config.Nutritionix.AppID == "" || config.Nutritionix.AppKey == "" {
			return fmt.Errorf("Nutritionix credentials are required (set PROTEINBUDDY_NUTRITIONIX_APP_ID and PROTEINBUDDY_NUTRITIONIX_APP_KEY)")
		}
	default:
		return fmt.Errorf("provider must be 'fatsecret' or 'nutritionix', got: %s", config.Provider.Name)
	}

	if config.Firestore.ProjectID == "" {
		return fmt.Errorf("Firestore project ID is required (set PROTEINBUDDY_FIRESTORE_PROJECT_ID)")
	}

	if config.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required (set PROTEINBUDDY_AUTH_JWT_SECRET)")
	}

	return nil
}
