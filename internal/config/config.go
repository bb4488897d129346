package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Game     GameConfig
}

var (
	instance *Config
	once     sync.Once
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
}

type JWTConfig struct {
	Secret         string
	ExpirationTime time.Duration
}

type GameConfig struct {
	// PingInterval is how often each connection is probed for liveness
	PingInterval time.Duration
	// SendBuffer is the per-client outbound queue length
	SendBuffer int
}

func LoadConfig() (*Config, error) {
	once.Do(func() {
		viper.SetDefault("GAME_HOST", "")
		viper.SetDefault("GAME_PORT", "8080")
		viper.SetDefault("GAME_READ_TIMEOUT", 30*time.Second)
		viper.SetDefault("GAME_WRITE_TIMEOUT", 30*time.Second)
		viper.SetDefault("GAME_IDLE_TIMEOUT", 60*time.Second)
		viper.SetDefault("GAME_JWT_SECRET", "secret")
		viper.SetDefault("GAME_JWT_EXPIRE", "168h")
		viper.SetDefault("GAME_PING_INTERVAL", 30*time.Second)
		viper.SetDefault("GAME_SEND_BUFFER", 256)
		viper.SetDefault("MYSQL_HOST", "localhost")
		viper.SetDefault("MYSQL_PORT", "3306")
		viper.SetDefault("MYSQL_USER", "root")
		viper.SetDefault("MYSQL_PASSWORD", "password")
		viper.SetDefault("MYSQL_DB", "game")
		viper.SetDefault("REDIS_HOST", "localhost")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("REDIS_MAX_RETRIES", 3)
		viper.SetDefault("REDIS_POOL_SIZE", 100)
		viper.SetDefault("REDIS_MIN_IDLE_CONNS", 10)
		viper.SetDefault("REDIS_DIAL_TIMEOUT", 5*time.Second)
		viper.SetDefault("REDIS_READ_TIMEOUT", 3*time.Second)
		viper.SetDefault("REDIS_WRITE_TIMEOUT", 3*time.Second)
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Host:         viper.GetString("GAME_HOST"),
				Port:         viper.GetString("GAME_PORT"),
				ReadTimeout:  viper.GetDuration("GAME_READ_TIMEOUT"),
				WriteTimeout: viper.GetDuration("GAME_WRITE_TIMEOUT"),
				IdleTimeout:  viper.GetDuration("GAME_IDLE_TIMEOUT"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("MYSQL_HOST"),
				Port:     viper.GetString("MYSQL_PORT"),
				User:     viper.GetString("MYSQL_USER"),
				Password: viper.GetString("MYSQL_PASSWORD"),
				DBName:   viper.GetString("MYSQL_DB"),
			},
			Redis: RedisConfig{
				Host:         viper.GetString("REDIS_HOST"),
				Port:         viper.GetString("REDIS_PORT"),
				Password:     viper.GetString("REDIS_PASSWORD"),
				DB:           viper.GetInt("REDIS_DB"),
				MaxRetries:   viper.GetInt("REDIS_MAX_RETRIES"),
				DialTimeout:  viper.GetDuration("REDIS_DIAL_TIMEOUT"),
				ReadTimeout:  viper.GetDuration("REDIS_READ_TIMEOUT"),
				WriteTimeout: viper.GetDuration("REDIS_WRITE_TIMEOUT"),
				PoolSize:     viper.GetInt("REDIS_POOL_SIZE"),
				MinIdleConns: viper.GetInt("REDIS_MIN_IDLE_CONNS"),
			},
			JWT: JWTConfig{
				Secret:         viper.GetString("GAME_JWT_SECRET"),
				ExpirationTime: viper.GetDuration("GAME_JWT_EXPIRE"),
			},
			Game: GameConfig{
				PingInterval: viper.GetDuration("GAME_PING_INTERVAL"),
				SendBuffer:   viper.GetInt("GAME_SEND_BUFFER"),
			},
		}
	})

	return instance, nil
}
