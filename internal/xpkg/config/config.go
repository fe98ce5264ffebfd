package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DB        *Postgres  `yaml:"database"`
	RMQ       *RabbitMQ  `yaml:"rabbitmq"`
	Reporting *Reporting `yaml:"reporting"`
}

type Postgres struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQ struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	VHost    string `yaml:"vhost"`
}

type Reporting struct {
	Timezone string `yaml:"timezone"`
}

func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadEnv builds the config from environment variables, for deployments
// that ship no YAML file. Pair with godotenv in main.
func LoadEnv() *Config {
	cfg := &Config{
		DB: &Postgres{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "admin"),
			Password: getEnv("POSTGRES_PASSWORD", "admin"),
			Database: getEnv("POSTGRES_DBNAME", "sembrador_db"),
		},
		Reporting: &Reporting{
			Timezone: getEnv("REPORTING_TZ", "America/Mexico_City"),
		},
	}
	if host := os.Getenv("RABBITMQ_HOST"); host != "" {
		cfg.RMQ = &RabbitMQ{
			Host:     host,
			Port:     getEnv("RABBITMQ_PORT_APP", "5672"),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			VHost:    getEnv("RABBITMQ_VHOST", ""),
		}
	}
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Reporting == nil {
		c.Reporting = &Reporting{}
	}
	if c.Reporting.Timezone == "" {
		c.Reporting.Timezone = "America/Mexico_City"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
