package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	JWT       JWTConfig
	WhatsApp  WhatsAppConfig
	Generator GeneratorConfig
	Worker    WorkerConfig
	LogLevel  string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// WhatsAppConfig holds WhatsApp Cloud API configuration
type WhatsAppConfig struct {
	BaseURL       string
	PhoneNumberID string
	AccessToken   string
	VerifyToken   string
	MockGateway   bool
}

// GeneratorConfig holds AI campaign generator configuration
type GeneratorConfig struct {
	APIKey string
	Model  string
}

// WorkerConfig holds campaign executor configuration
type WorkerConfig struct {
	PollInterval   int // seconds
	SendRatePerSec int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine, environment variables take over.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "campaignhq")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("WhatsApp.BaseURL", "https://graph.facebook.com/v19.0")
	viper.SetDefault("WhatsApp.MockGateway", true)
	viper.SetDefault("Generator.Model", "gemini-2.0-flash")
	viper.SetDefault("Worker.PollInterval", 30)
	viper.SetDefault("Worker.SendRatePerSec", 10)
	viper.SetDefault("LogLevel", "info")
}
