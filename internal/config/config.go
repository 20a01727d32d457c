package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/sir_venger/filedrop_lite/pkg/chunkplan"
)

const (
	BackendS3     = "s3"
	BackendMemory = "memory"
)

type Config struct {
	ListenAddr string `yaml:"listen_addr" json:"listen_addr"`
	LogLevel   string `yaml:"log_level" json:"log_level"`

	// Backend выбирает реализацию хранилища: s3 или memory (для локальной
	// разработки и тестов).
	Backend         string `yaml:"backend" json:"backend"`
	Bucket          string `yaml:"bucket" json:"bucket"`
	Region          string `yaml:"region" json:"region"`
	Endpoint        string `yaml:"endpoint" json:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id" json:"-"`
	SecretAccessKey string `yaml:"secret_access_key" json:"-"`

	// ChunkSize — номинальный размер части; MaxPartBodyBytes — потолок тела
	// запроса части, должен превышать ChunkSize с запасом на оверхед формы.
	ChunkSize        int64 `yaml:"chunk_size" json:"chunk_size"`
	MaxPartBodyBytes int64 `yaml:"max_part_body_bytes" json:"max_part_body_bytes"`
}

// Default возвращает конфигурацию, пригодную для запуска без файла:
// слушаем :8080 и храним объекты в памяти.
func Default() *Config {
	return &Config{
		ListenAddr:       ":8080",
		LogLevel:         "info",
		Backend:          BackendMemory,
		ChunkSize:        chunkplan.DefaultChunkSize,
		MaxPartBodyBytes: 5 << 20,
	}
}

// Load читает YAML-конфигурацию, применяет ENV-переопределения и валидирует результат.
// Отсутствие файла не ошибка — стартуем с дефолтов.
func Load() (*Config, error) {
	c := Default()

	path := getenv("CONFIG_PATH", "./config.yaml")
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err = yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	// ENV override
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		c.Bucket = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		c.Region = v
	}
	if v := os.Getenv("S3_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("S3_ACCESS_KEY_ID"); v != "" {
		c.AccessKeyID = v
	}
	if v := os.Getenv("S3_SECRET_ACCESS_KEY"); v != "" {
		c.SecretAccessKey = v
	}
	if v := os.Getenv("CHUNK_SIZE"); v != "" {
		sz, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid CHUNK_SIZE: %w", err)
		}
		c.ChunkSize = sz
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendS3:
		if c.Bucket == "" {
			return fmt.Errorf("s3 backend requires bucket")
		}
		if c.Region == "" {
			return fmt.Errorf("s3 backend requires region")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be > 0")
	}
	if c.MaxPartBodyBytes <= c.ChunkSize {
		return fmt.Errorf("max_part_body_bytes (%d) must exceed chunk_size (%d)", c.MaxPartBodyBytes, c.ChunkSize)
	}

	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
