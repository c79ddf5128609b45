package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Broadcast struct {
		IntervalMinutes int `yaml:"interval_minutes"`
	} `yaml:"broadcast"`
	Steam struct {
		MaxEntries int    `yaml:"max_entries"`
		Currency   string `yaml:"currency"`
	} `yaml:"steam"`
	HTTP struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"http"`
	Cache struct {
		TTLMinutes    int    `yaml:"ttl_minutes"`
		Prefix        string `yaml:"prefix"`
		MemoryEntries int    `yaml:"memory_entries"`
	} `yaml:"cache"`
	State struct {
		MaxMessageCount int `yaml:"max_message_count"`
	} `yaml:"state"`
}

func defaults() *Config {
	c := &Config{}
	c.Broadcast.IntervalMinutes = 60
	c.Steam.MaxEntries = 50
	c.Steam.Currency = "원"
	c.HTTP.TimeoutSeconds = 15
	c.Cache.TTLMinutes = 10
	c.Cache.Prefix = "servermaster"
	c.Cache.MemoryEntries = 256
	c.State.MaxMessageCount = 500
	return c
}

// LoadConfig reads the YAML settings file. A missing file yields the defaults;
// keys left out of the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	config := defaults()

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(file, config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.Broadcast.IntervalMinutes <= 0 {
		return fmt.Errorf("broadcast.interval_minutes must be positive, got %d", c.Broadcast.IntervalMinutes)
	}
	if c.Steam.MaxEntries <= 0 {
		return fmt.Errorf("steam.max_entries must be positive, got %d", c.Steam.MaxEntries)
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be positive, got %d", c.HTTP.TimeoutSeconds)
	}
	return nil
}

func (c *Config) BroadcastInterval() time.Duration {
	return time.Duration(c.Broadcast.IntervalMinutes) * time.Minute
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}
