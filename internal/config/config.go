// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string        `yaml:"env" env:"APP_ENV" env-default:"local"`
	CacheTTL        time.Duration `yaml:"cache_ttl" env-default:"30s"`
	ClubAPI         `yaml:"club_api"`
	RedisConnection `yaml:"redis_connection"`
	HTTPServer      `yaml:"http_server"`
	Session         `yaml:"session"`
	RateLimit       `yaml:"rate_limit"`
	AfExam          `yaml:"afexam"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// ClubAPI структура для настройки клиента удалённого API клуба
type ClubAPI struct {
	BaseURL    string        `yaml:"base_url" env:"CLUB_API_BASE_URL" env-default:"http://localhost:8000/api/"`
	TimeoutAPI time.Duration `yaml:"timeout" env-default:"10s"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кеширование ответов API.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// Session структура для настройки сессий посетителей
type Session struct {
	CookieName string        `yaml:"cookie_name" env-default:"horseclub_session"`
	SessionTTL time.Duration `yaml:"ttl" env-default:"30m"`
}

// RateLimit структура для ограничения частоты изменяющих запросов
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"5"`
	Burst int     `yaml:"burst" env-default:"10"`
}

// AfExam подпись страницы экзаменов
type AfExam struct {
	Author string `yaml:"author" env-default:"Фролов Александр Дмитриевич"`
	Group  string `yaml:"group" env-default:"231-322"`
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла, переменные окружения имеют приоритет.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CacheEnabled сообщает, настроен ли redis для кеша ответов API.
func (c *Config) CacheEnabled() bool {
	return c.AddressRedis != ""
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"ClubAPI:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"CacheTTL: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Session:\n"+
			"  Cookie: %s\n"+
			"  TTL: %s\n",
		c.Env,
		c.BaseURL,
		c.TimeoutAPI,
		c.AddressRedis,
		c.DB,
		c.CacheTTL,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.CookieName,
		c.SessionTTL,
	)
}
