package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `env:"ENV" env-required:"true"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer HttpServer
	Database   Database
	Limiter    Limiter
	Cache      Cache
	ESP        ESP
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"30s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
}

type Database struct {
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER" env-required:"true"`
	DBName             string        `env:"DB_NAME" env-required:"true"`
	User               string        `env:"DB_USER" env-required:"true"`
	Password           string        `env:"DB_PASSWORD" env-required:"true"`
	TimeZone           string        `env:"DB_TIMEZONE"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"40"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"40"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type Cache struct {
	Enabled  bool          `env:"CACHE_ENABLED" env-default:"false"`
	ListsTTL time.Duration `env:"CACHE_LISTS_TTL" env-default:"60s"`
	Type     string        `env:"REDIS_TYPE" env-default:"redis" env-description:"specifies provider, one of redis/redisCluster"`
	Redis    struct {
		Address  string `env:"REDIS_ADDR" env-default:"" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

// ESP holds the upstream provider client settings. Base URLs are overridable
// so tests can point the adapters at local servers.
type ESP struct {
	ValidateTimeout    time.Duration `env:"ESP_VALIDATE_TIMEOUT" env-default:"8s"`
	ListsTimeout       time.Duration `env:"ESP_LISTS_TIMEOUT" env-default:"10s"`
	RetryAttempts      int           `env:"ESP_RETRY_ATTEMPTS" env-default:"2"`
	RetryBaseDelay     time.Duration `env:"ESP_RETRY_BASE_DELAY" env-default:"500ms"`
	ListsPageSize      int           `env:"ESP_LISTS_PAGE_SIZE" env-default:"1000"`
	MailchimpBaseURL   string        `env:"ESP_MAILCHIMP_BASE_URL" env-default:"https://%s.api.mailchimp.com/3.0" env-description:"format string, %s is the datacenter"`
	GetResponseBaseURL string        `env:"ESP_GETRESPONSE_BASE_URL" env-default:"https://api.getresponse.com/v3"`
}

func MustLoad() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return &cfg
}
