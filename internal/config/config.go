package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB          DBConfig
	Server      ServerConfig
	Redis       RedisConfig
	Evaluator   EvaluatorConfig
	Auth        AuthConfig
	Leaderboard LeaderboardConfig
	Logger      LoggerConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// EvaluatorConfig points at the remote badge evaluation service. An empty
// BaseURL disables the remote path entirely and evaluation runs locally.
type EvaluatorConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AuthConfig struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// LeaderboardConfig tunes the synthetic entry generator and the page cache.
type LeaderboardConfig struct {
	BasePoints int
	Decrement  int
	Noise      int
	CacheTTL   time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("evaluator.timeout", 5)
	viper.SetDefault("auth.access_token_ttl", 15)
	viper.SetDefault("auth.refresh_token_ttl", 10080)
	viper.SetDefault("leaderboard.base_points", 1000)
	viper.SetDefault("leaderboard.decrement", 50)
	viper.SetDefault("leaderboard.noise", 20)
	viper.SetDefault("leaderboard.cache_ttl", 300)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
		},
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Evaluator: EvaluatorConfig{
			BaseURL: viper.GetString("evaluator.base_url"),
			Timeout: viper.GetDuration("evaluator.timeout") * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:       viper.GetString("auth.jwt_secret"),
			AccessTokenTTL:  viper.GetDuration("auth.access_token_ttl") * time.Minute,
			RefreshTokenTTL: viper.GetDuration("auth.refresh_token_ttl") * time.Minute,
		},
		Leaderboard: LeaderboardConfig{
			BasePoints: viper.GetInt("leaderboard.base_points"),
			Decrement:  viper.GetInt("leaderboard.decrement"),
			Noise:      viper.GetInt("leaderboard.noise"),
			CacheTTL:   viper.GetDuration("leaderboard.cache_ttl") * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Override with environment variables if set
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if evaluatorURL := os.Getenv("EVALUATOR_BASE_URL"); evaluatorURL != "" {
		config.Evaluator.BaseURL = evaluatorURL
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		config.Auth.JWTSecret = jwtSecret
	}

	return config, nil
}

func (c *Config) GetDSN() string {
	// Oracle DSN format: user/password@host:port/service
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}
