package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Scheduling SchedulingConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SchedulingConfig tunes the booking engine. Zero values fall back to
// the usecase defaults (30m slots, 10 search attempts, 4h emergency
// horizon, 5m availability cache).
type SchedulingConfig struct {
	SlotDuration         time.Duration
	SearchStep           time.Duration
	SearchMaxAttempts    int
	EmergencyHorizon     time.Duration
	AvailabilityCacheTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  durationOrDefault("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: durationOrDefault("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Scheduling: SchedulingConfig{
			SlotDuration:         durationOrDefault("SCHEDULING_SLOT_DURATION", 30*time.Minute),
			SearchStep:           durationOrDefault("SCHEDULING_SEARCH_STEP", 30*time.Minute),
			SearchMaxAttempts:    intOrDefault("SCHEDULING_SEARCH_MAX_ATTEMPTS", 10),
			EmergencyHorizon:     durationOrDefault("SCHEDULING_EMERGENCY_HORIZON", 4*time.Hour),
			AvailabilityCacheTTL: durationOrDefault("AVAILABILITY_CACHE_TTL", 5*time.Minute),
		},
	}

	return config, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}

func intOrDefault(key string, fallback int) int {
	if v := viper.GetInt(key); v > 0 {
		return v
	}
	return fallback
}
