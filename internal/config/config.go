package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type RewardConfig struct {
	Env          string `yaml:"env" env:"ENV" env-default:"dev"`
	HTTPServer   `yaml:"http_server"`
	LedgerDB     `yaml:"ledger_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	Migrations   `yaml:"migrations"`
}

type HTTPServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"8080"`
}

type LedgerDB struct {
	Dsn string `yaml:"dsn" env:"LEDGER_DB_DSN"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
	LogOutput string `yaml:"log_output" env-default:"stdout"`
}

type KafkaService struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	RewardTopic string `yaml:"reward_topic" env-default:"reward-events"`
	PayoutTopic string `yaml:"payout_topic" env-default:"payout-events"`
	Enabled     bool   `yaml:"enabled" env-default:"false"`
}

type Migrations struct {
	Path string `yaml:"path"`
}

func MustLoad() *RewardConfig {
	configPath := os.Getenv("REWARD_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("REWARD_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg RewardConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
