package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Env                 string `mapstructure:"env"`
	Port                int    `mapstructure:"port"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
	IdleTimeoutSeconds  int    `mapstructure:"idle_timeout_seconds"`
	BaseURL             string `mapstructure:"base_url"`
}

type JWTCfg struct {
	Secret              string `mapstructure:"secret"`
	SessionTTLHours     int    `mapstructure:"session_ttl_hours"`
	RegVerifyTTLMinutes int    `mapstructure:"reg_verify_ttl_minutes"`
}

type PostgresCfg struct {
	DSN string `mapstructure:"dsn"`
}

type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type BrevoCfg struct {
	APIKey    string `mapstructure:"api_key"`
	FromEmail string `mapstructure:"from_email"`
	FromName  string `mapstructure:"from_name"`
}

type S3Cfg struct {
	Region            string `mapstructure:"region"`
	Bucket            string `mapstructure:"bucket"`
	Endpoint          string `mapstructure:"endpoint"`
	PresignTTLMinutes int    `mapstructure:"presign_ttl_minutes"`
}

type KafkaCfg struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type SecurityCfg struct {
	ConfirmCodeTTLMinutes  int      `mapstructure:"confirm_code_ttl_minutes"`
	CodeRateLimitPerHour   int      `mapstructure:"code_rate_limit_per_hour"`
	AuthRateLimitPerMinute int      `mapstructure:"auth_rate_limit_per_minute"`
	CORSAllowedOrigins     []string `mapstructure:"cors_allowed_origins"`
	PasswordMinLength      int      `mapstructure:"password_min_length"`
}

type Config struct {
	App      AppCfg      `mapstructure:"app"`
	JWT      JWTCfg      `mapstructure:"jwt"`
	Postgres PostgresCfg `mapstructure:"postgres"`
	Redis    RedisCfg    `mapstructure:"redis"`
	Brevo    BrevoCfg    `mapstructure:"brevo"`
	S3       S3Cfg       `mapstructure:"s3"`
	Kafka    KafkaCfg    `mapstructure:"kafka"`
	Security SecurityCfg `mapstructure:"security"`

	// derived
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	SessionTTL     time.Duration
	RegVerifyTTL   time.Duration
	ConfirmCodeTTL time.Duration
	PresignTTL     time.Duration
}

// Load reads the YAML config, applies environment overrides, fills defaults
// and derives duration fields. Security rules (CORS origins, rate limits) live
// here so the HTTP layer receives them as plain injected values.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("VYBE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	for env, target := range map[string]*string{
		"JWT_SECRET":    &cfg.JWT.Secret,
		"POSTGRES_DSN":  &cfg.Postgres.DSN,
		"REDIS_ADDR":    &cfg.Redis.Addr,
		"BREVO_API_KEY": &cfg.Brevo.APIKey,
		"S3_BUCKET":     &cfg.S3.Bucket,
	} {
		if val := v.GetString(env); val != "" {
			*target = val
		}
	}

	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret is required (VYBE_JWT_SECRET or config)")
	}
	if cfg.Postgres.DSN == "" {
		return nil, errors.New("postgres dsn is required (VYBE_POSTGRES_DSN or config)")
	}

	if cfg.App.Port == 0 {
		cfg.App.Port = 8080
	}
	if cfg.App.ReadTimeoutSeconds == 0 {
		cfg.App.ReadTimeoutSeconds = 15
	}
	if cfg.App.WriteTimeoutSeconds == 0 {
		cfg.App.WriteTimeoutSeconds = 15
	}
	if cfg.App.IdleTimeoutSeconds == 0 {
		cfg.App.IdleTimeoutSeconds = 60
	}
	if cfg.JWT.SessionTTLHours == 0 {
		cfg.JWT.SessionTTLHours = 24
	}
	if cfg.JWT.RegVerifyTTLMinutes == 0 {
		cfg.JWT.RegVerifyTTLMinutes = 60
	}
	if cfg.Security.ConfirmCodeTTLMinutes == 0 {
		cfg.Security.ConfirmCodeTTLMinutes = 5
	}
	if cfg.Security.CodeRateLimitPerHour == 0 {
		cfg.Security.CodeRateLimitPerHour = 5
	}
	if cfg.Security.AuthRateLimitPerMinute == 0 {
		cfg.Security.AuthRateLimitPerMinute = 30
	}
	if cfg.Security.PasswordMinLength == 0 {
		cfg.Security.PasswordMinLength = 8
	}
	if cfg.S3.PresignTTLMinutes == 0 {
		cfg.S3.PresignTTLMinutes = 60
	}

	cfg.ReadTimeout = time.Duration(cfg.App.ReadTimeoutSeconds) * time.Second
	cfg.WriteTimeout = time.Duration(cfg.App.WriteTimeoutSeconds) * time.Second
	cfg.IdleTimeout = time.Duration(cfg.App.IdleTimeoutSeconds) * time.Second
	cfg.SessionTTL = time.Duration(cfg.JWT.SessionTTLHours) * time.Hour
	cfg.RegVerifyTTL = time.Duration(cfg.JWT.RegVerifyTTLMinutes) * time.Minute
	cfg.ConfirmCodeTTL = time.Duration(cfg.Security.ConfirmCodeTTLMinutes) * time.Minute
	cfg.PresignTTL = time.Duration(cfg.S3.PresignTTLMinutes) * time.Minute

	return &cfg, nil
}
