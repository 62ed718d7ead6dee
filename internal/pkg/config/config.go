package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string   `env:"PORT,          default=8080"`
	Env          string   `env:"ENV,           default=development"`
	LogLevel     string   `env:"LOG_LEVEL,     default=info"`
	AllowOrigins []string `env:"CORS_ORIGINS"`

	Auth       AuthConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	Mail       MailConfig
	Cloudinary CloudinaryConfig
	Paystack   PaystackConfig
	RabbitMQ   RabbitMQConfig
	Laundry    LaundryConfig
	Notify     NotifyConfig
	Refs       RefsConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET, required"`
	Issuer    string        `env:"JWT_ISSUER,       default=cc-hotel"`
	AccessTTL time.Duration `env:"ACCESS_TOKEN_TTL, default=24h"`
	ResetTTL  time.Duration `env:"RESET_TOKEN_TTL,  default=1h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017/?replicaSet=rs0"`
	Database string `env:"MONGO_DB,  default=cc_hotel"`
}

// RedisConfig prefers URL (redis:// or rediss://) over the discrete fields.
type RedisConfig struct {
	URL      string        `env:"REDIS_URL"`
	Addr     string        `env:"REDIS_ADDR,        default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,          default=0"`
	DedupTTL time.Duration `env:"WEBHOOK_DEDUP_TTL, default=24h"`
}

// MailConfig leaves Host empty to disable email delivery.
type MailConfig struct {
	Host        string `env:"SMTP_HOST"`
	Port        int    `env:"SMTP_PORT,     default=587"`
	Username    string `env:"SMTP_USER"`
	Password    string `env:"SMTP_PASS"`
	From        string `env:"SMTP_FROM,     default=no-reply@cc-hotel.local"`
	FromName    string `env:"SMTP_FROM_NAME, default=CC Hotel"`
	FrontendURL string `env:"FRONTEND_URL,  default=http://localhost:3000"`
}

// CloudinaryConfig leaves URL empty to disable image uploads.
type CloudinaryConfig struct {
	URL    string `env:"CLOUDINARY_URL"`
	Folder string `env:"CLOUDINARY_FOLDER, default=cc-hotel"`
}

type PaystackConfig struct {
	SecretKey   string        `env:"PAYSTACK_SECRET_KEY"`
	BaseURL     string        `env:"PAYSTACK_BASE_URL,     default=https://api.paystack.co"`
	CallbackURL string        `env:"PAYSTACK_CALLBACK_URL"`
	Currency    string        `env:"PAYSTACK_CURRENCY,     default=NGN"`
	Timeout     time.Duration `env:"PAYSTACK_TIMEOUT,      default=15s"`
}

// RabbitMQConfig leaves URL empty to disable domain event publishing.
type RabbitMQConfig struct {
	URL      string `env:"AMQP_URL"`
	Exchange string `env:"AMQP_EXCHANGE, default=hotel.events"`
}

type LaundryConfig struct {
	RejectUnknownItems bool `env:"LAUNDRY_REJECT_UNKNOWN_ITEMS, default=false"`
}

type NotifyConfig struct {
	Workers int           `env:"NOTIFY_WORKERS, default=4"`
	Buffer  int           `env:"NOTIFY_BUFFER,  default=256"`
	Timeout time.Duration `env:"NOTIFY_TIMEOUT, default=10s"`
}

type RefsConfig struct {
	Salt string `env:"REFERENCE_SALT, default=cc-hotel"`
}

// IsDevelopment enables pretty console logs.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadContext(context.Background())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadContext returns errors instead of panicking. An optional lookuper
// replaces the process environment.
func LoadContext(ctx context.Context, lookuper ...envconfig.Lookuper) (*Config, error) {
	var cfg Config
	c := &envconfig.Config{Target: &cfg}
	if len(lookuper) > 0 {
		c.Lookuper = lookuper[0]
	}
	if err := envconfig.ProcessWith(ctx, c); err != nil {
		return nil, err
	}
	return &cfg, nil
}
