// Package config loads backend configuration from file or environment.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration for the backend.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`
	DataDir     string `mapstructure:"DATA_DIR"`
	LogFile     string `mapstructure:"LOG_FILE"`

	// Store backend: "sqlite" or "memory"
	StoreBackend string `mapstructure:"STORE_BACKEND"`

	// Annotation provider configuration. Provider "simulated" runs without
	// network access; "openai" talks to an OpenAI-compatible endpoint.
	AIProvider    string `mapstructure:"AI_PROVIDER"`
	AIAPIKey      string `mapstructure:"AI_API_KEY"`
	AIAPIEndpoint string `mapstructure:"AI_API_ENDPOINT"`
	AIModelName   string `mapstructure:"AI_MODEL_NAME"`

	// Timeouts in seconds. Annotation expiry is recoverable: an entry still
	// saves without enrichment when the model call runs out of time.
	AnnotationTimeoutSecs int `mapstructure:"ANNOTATION_TIMEOUT_SECS"`
	UploadTimeoutSecs     int `mapstructure:"UPLOAD_TIMEOUT_SECS"`
}

// AnnotationTimeout returns the model invocation timeout as a duration.
func (c Config) AnnotationTimeout() time.Duration {
	return time.Duration(c.AnnotationTimeoutSecs) * time.Second
}

// UploadTimeout returns the file upload timeout as a duration.
func (c Config) UploadTimeout() time.Duration {
	return time.Duration(c.UploadTimeoutSecs) * time.Second
}

// Load reads configuration from a .env file in path (optional) and the
// environment. Environment variables win over the file.
func Load(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	setDefaults()

	if err = viper.ReadInConfig(); err != nil {
		// The config file is optional; environment variables alone are fine.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SERVER_PORT", "8090")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("STORE_BACKEND", "sqlite")
	viper.SetDefault("AI_PROVIDER", "simulated")
	viper.SetDefault("AI_API_ENDPOINT", "https://api.openai.com/v1")
	viper.SetDefault("AI_MODEL_NAME", "gpt-4o-mini")
	viper.SetDefault("ANNOTATION_TIMEOUT_SECS", 30)
	viper.SetDefault("UPLOAD_TIMEOUT_SECS", 15)
}
