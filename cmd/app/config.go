package main

import (
	"fmt"
	"strings"

	"earnhub_backend/internal/repository"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config `yaml:"database"`
	Server   ServerConfig      `yaml:"server"`

	IdentityAuth IdentityAuthConfig `yaml:"identityAuth"`
	Mailer       MailerConfig       `yaml:"mailer"`
	Redis        RedisConfig        `yaml:"redis"`
	Referral     ReferralConfig     `yaml:"referral"`
	Admin        AdminConfig        `yaml:"admin"`

	LogLevel string `yaml:"logLevel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type IdentityAuthConfig struct {
	Secret    string `yaml:"secret"`
	DebugMode bool   `yaml:"debugMode"`
}

type MailerConfig struct {
	Domain        string `yaml:"domain"`
	APIKey        string `yaml:"apiKey"`
	Sender        string `yaml:"sender"`
	OperatorEmail string `yaml:"operatorEmail"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ReferralConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

type AdminConfig struct {
	// Subjects lists the identity-provider subject ids allowed to call
	// admin endpoints.
	Subjects []string `yaml:"subjects"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
