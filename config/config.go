package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Weather   WeatherConfig   `mapstructure:"weather"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type APIConfig struct {
	Port int `mapstructure:"port"`
}

type WeatherConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	Units     string        `mapstructure:"units"`
	Lang      string        `mapstructure:"lang"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
	RateBurst int           `mapstructure:"rate_burst"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
}

type TelemetryConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	ZipkinURL string `mapstructure:"zipkin_url"`
}

func Load(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/minitrip")
	}

	// Set defaults
	viper.SetDefault("api.port", 5001)
	viper.SetDefault("weather.api_key", "")
	viper.SetDefault("weather.units", "metric")
	viper.SetDefault("weather.lang", "en")
	viper.SetDefault("weather.timeout", "10s")
	// OpenWeather free tier allows 60 calls/minute
	viper.SetDefault("weather.rate_limit", 1.0)
	viper.SetDefault("weather.rate_burst", 5)
	viper.SetDefault("openai.api_key", "")
	viper.SetDefault("openai.model", "gpt-4o")
	viper.SetDefault("openai.temperature", 0.6)
	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.zipkin_url", "http://localhost:9411/api/v2/spans")

	// API keys come from the environment (or a .env file) in deployments
	viper.BindEnv("weather.api_key", "OPENWEATHER_API_KEY")
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
