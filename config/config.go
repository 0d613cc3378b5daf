// Package config loads client and collector settings from a JSON file, with
// environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Sink kinds.
const (
	SinkLog    = "log"
	SinkNoop   = "noop"
	SinkRemote = "remote"
)

// Collector holds the effect collector's listen address.
type Collector struct {
	Host           string `json:"host"`
	Port           string `json:"port"`
	WelcomeMessage string `json:"welcome_message"`
}

type Config struct {
	ForumName     string    `json:"forum_name"`
	Tagline       string    `json:"tagline"`
	LogFile       string    `json:"log_file"`
	LogLevel      string    `json:"log_level"`
	Sink          string    `json:"sink"`
	RemoteHost    string    `json:"remote_host"`
	RemoteRetries int       `json:"remote_retries"`
	DatasetPath   string    `json:"dataset_path"`
	Collector     Collector `json:"collector"`
	mu            sync.RWMutex
	configFile    string
}

func NewConfig(filename string) *Config {
	if filename == "" {
		filename = "zethon.json"
	}
	return &Config{
		configFile: filename,
		// Defaults
		ForumName:     "Zethon.vip",
		Tagline:       "Your premier destination for gaming tools and community",
		LogFile:       "logs/client.log",
		LogLevel:      "info",
		Sink:          SinkLog,
		RemoteHost:    "localhost:8999",
		RemoteRetries: 3,
		Collector: Collector{
			Host:           "localhost",
			Port:           "8999",
			WelcomeMessage: "Zethon effect collector. Effects are logged, never stored.",
		},
	}
}

// Load reads the config file, creating it from defaults if it does not
// exist, then applies environment overrides. The file is rewritten so new
// fields show up with their defaults.
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(c.configFile); os.IsNotExist(err) {
		if err := c.saveInternal(); err != nil {
			return err
		}
	} else {
		data, err := os.ReadFile(c.configFile)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", c.configFile, err)
		}
		if err := c.saveInternal(); err != nil {
			return err
		}
	}

	_ = godotenv.Load()
	if err := c.applyEnv(); err != nil {
		return err
	}
	return c.validate()
}

func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.saveInternal()
}

func (c *Config) saveInternal() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.configFile, data, 0644)
}

// applyEnv overrides fields from ZETHON_* variables. Overrides are not
// written back to the file.
func (c *Config) applyEnv() error {
	str := map[string]*string{
		"ZETHON_FORUM_NAME":     &c.ForumName,
		"ZETHON_LOG_FILE":       &c.LogFile,
		"ZETHON_LOG_LEVEL":      &c.LogLevel,
		"ZETHON_SINK":           &c.Sink,
		"ZETHON_REMOTE_HOST":    &c.RemoteHost,
		"ZETHON_DATASET":        &c.DatasetPath,
		"ZETHON_COLLECTOR_HOST": &c.Collector.Host,
		"ZETHON_COLLECTOR_PORT": &c.Collector.Port,
	}
	for key, field := range str {
		if v, ok := os.LookupEnv(key); ok {
			*field = v
		}
	}
	if v, ok := os.LookupEnv("ZETHON_REMOTE_RETRIES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ZETHON_REMOTE_RETRIES: %w", err)
		}
		c.RemoteRetries = n
	}
	return nil
}

func (c *Config) validate() error {
	c.Sink = strings.ToLower(strings.TrimSpace(c.Sink))
	switch c.Sink {
	case SinkLog, SinkNoop, SinkRemote:
	default:
		return fmt.Errorf("unknown sink %q", c.Sink)
	}
	if c.Sink == SinkRemote && c.RemoteHost == "" {
		return fmt.Errorf("sink %q needs remote_host", SinkRemote)
	}
	return nil
}

// Addr is the collector's listen address.
func (c *Config) Addr() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fmt.Sprintf("%s:%s", c.Collector.Host, c.Collector.Port)
}
