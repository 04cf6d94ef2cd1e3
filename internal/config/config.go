package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
	CORSOrigin     string `mapstructure:"cors_origin"`
	BodyLimitBytes int    `mapstructure:"body_limit_bytes"`
}

type MongoConf struct {
	URI               string `mapstructure:"uri"`
	Database          string `mapstructure:"database"`
	UserCollection    string `mapstructure:"user_collection"`
	PatientCollection string `mapstructure:"patient_collection"`
}

type JWTConf struct {
	Secret   string `mapstructure:"secret"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

type Config struct {
	App   AppConf   `mapstructure:"app"`
	Mongo MongoConf `mapstructure:"mongo"`
	JWT   JWTConf   `mapstructure:"jwt"`

	// derived
	ShutdownTimeout time.Duration
	TokenTTL        time.Duration
}

// Load reads an optional config file, then lets environment variables
// override it. MONGO_URI and JWT_SECRET are required.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 5001)
	v.SetDefault("app.shutdown_seconds", 10)
	v.SetDefault("app.cors_origin", "http://localhost:5173")
	v.SetDefault("app.body_limit_bytes", 1<<20)
	v.SetDefault("mongo.database", "medilink")
	v.SetDefault("mongo.user_collection", "users")
	v.SetDefault("mongo.patient_collection", "patients")
	v.SetDefault("jwt.ttl_hours", 168)

	// The config file is optional; env vars alone are enough to run.
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	v.AutomaticEnv()
	bindings := map[string]string{
		"app.env":         "APP_ENV",
		"app.port":        "PORT",
		"app.cors_origin": "CORS_ORIGIN",
		"mongo.uri":       "MONGO_URI",
		"mongo.database":  "MONGO_DB",
		"jwt.secret":      "JWT_SECRET",
		"jwt.ttl_hours":   "JWT_TTL_HOURS",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGO_URI is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	cfg.TokenTTL = time.Duration(cfg.JWT.TTLHours) * time.Hour
	return &cfg, nil
}
