package config

import "os"

type Config struct {
	Port           string
	PropertyDBHost string
	PropertyDBPort string
	CacheHost      string
	CachePort      string
	JaegerAddress  string
}

func NewConfig() *Config {
	return &Config{
		Port:           os.Getenv("REALESTATE_SERVICE_PORT"),
		PropertyDBHost: os.Getenv("PROPERTY_DB_HOST"),
		PropertyDBPort: os.Getenv("PROPERTY_DB_PORT"),
		CacheHost:      os.Getenv("REDIS_HOST"),
		CachePort:      os.Getenv("REDIS_PORT"),
		JaegerAddress:  os.Getenv("JAEGER_ADDRESS"),
	}
}
