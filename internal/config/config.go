package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	DSN         string            `yaml:"dsn" env:"DSN" env-required:"true"`
	HTTP        HTTPConfig        `yaml:"http"`
	JWT         JWTConfig         `yaml:"jwt"`
	Cache       CacheConfig       `yaml:"cache"`
	FileStorage FileStorageConfig `yaml:"file_storage"`
	Redis       RedisConf         `yaml:"redis"`
}

type HTTPConfig struct {
	Host    string        `yaml:"host" env:"HTTP_HOST"`
	Port    string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
	// LoginRate допустимое число попыток входа в секунду с одного адреса
	LoginRate float64 `yaml:"login_rate" env-default:"1"`
}

type JWTConfig struct {
	Secret       string        `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	AccessTTL    time.Duration `yaml:"access_ttl" env-default:"15m"`
	RefreshTTL   time.Duration `yaml:"refresh_ttl" env-default:"168h"`
	CookieSecure bool          `yaml:"cookie_secure" env:"JWT_COOKIE_SECURE" env-default:"false"`
}

type CacheConfig struct {
	Backend   string        `yaml:"backend" env:"CACHE_BACKEND" env-default:"memory"`
	ParentTTL time.Duration `yaml:"parent_ttl" env-default:"900s"`
}

type FileStorageConfig struct {
	BaseDir string `yaml:"base_dir" env-default:"./media"`
	BaseURL string `yaml:"base_url" env-default:"/media"`
	MaxSize int64  `yaml:"max_size"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

// Load читает YAML-файл, переменные окружения перекрывают его значения.
// Необязательный .env в рабочем каталоге загружается до чтения конфигурации.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &LoadError{Path: configPath, Reason: "config file does not exist"}
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, &LoadError{Path: configPath, Reason: "cannot read config: " + err.Error()}
	}

	if cfg.Cache.Backend != CacheMemory && cfg.Cache.Backend != CacheRedis {
		return nil, &LoadError{Path: configPath, Reason: "cache.backend must be memory or redis"}
	}

	return &cfg, nil
}

type LoadError struct {
	Path   string
	Reason string
}

func (e *LoadError) Error() string {
	return e.Reason + ": " + e.Path
}

// fetchConfigPath читает путь из флага --config или CONFIG_PATH
func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
