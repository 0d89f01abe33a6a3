package config

import (
	"github.com/spf13/viper"
)

// Config holds the configuration for the routing service.
type Config struct {
	DB struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"db"`
	Kafka struct {
		Brokers             []string `mapstructure:"brokers"`
		ClassificationTopic string   `mapstructure:"classification_topic"`
		DecisionsTopic      string   `mapstructure:"decisions_topic"`
		ConsumerGroup       string   `mapstructure:"consumer_group"`
	} `mapstructure:"kafka"`
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	TLS struct {
		Enable    bool     `mapstructure:"enable"`
		CertFile  string   `mapstructure:"cert_file"`
		KeyFile   string   `mapstructure:"key_file"`
		Hostnames []string `mapstructure:"hostnames"`
	} `mapstructure:"tls"`
}

// LoadConfig loads the configuration from a file and the environment.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("db.name", "document_db")
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.classification_topic", "classification-results")
	viper.SetDefault("kafka.decisions_topic", "routing-decisions")
	viper.SetDefault("kafka.consumer_group", "routing-engine")
	viper.SetDefault("server.addr", ":8002")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults plus environment apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
