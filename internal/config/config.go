package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Server  ServerConfig  `yaml:"server"`
	Content ContentConfig `yaml:"content"`
	Theme   ThemeConfig   `yaml:"theme"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

type SiteConfig struct {
	Name        string `yaml:"name" default:"Letterpress"`
	Description string `yaml:"description" default:"A personal portfolio and blog"`
	BaseURL     string `yaml:"base_url" default:"http://localhost:12700"`
	Author      string `yaml:"author" default:""`
}

type ServerConfig struct {
	Host string `yaml:"host" default:"0.0.0.0"`
	Port string `yaml:"port" default:"12700"`
}

type ContentConfig struct {
	// PostsDir is the secondary store: published markdown files live here.
	PostsDir string `yaml:"posts_dir" default:"content/posts"`
	// Store selects the secondary store backend: "fs" or "s3".
	Store        string `yaml:"store" default:"fs"`
	S3Bucket     string `yaml:"s3_bucket" default:""`
	S3Endpoint   string `yaml:"s3_endpoint" default:""`
	PostsPerPage int    `yaml:"posts_per_page" default:"50"`
}

type ThemeConfig struct {
	SyntaxTheme string `yaml:"syntax_theme" default:"catppuccin-latte"`
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled" default:"true"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`
}

func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.Server,
		validation.Field(&c.Server.Port, validation.Required),
	); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return validation.ValidateStruct(&c.Content,
		validation.Field(&c.Content.Store, validation.Required, validation.In("fs", "s3")),
		validation.Field(&c.Content.PostsPerPage, validation.Min(1)),
	)
}

var AppConfig *Config

func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	ApplyDefaults(config)

	// Try to read and parse the config file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			configLogger.Warn().Str("path", path).Msg("Config file not found, using defaults")
			AppConfig = config
			return config.Validate()
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	AppConfig = config
	return nil
}

// ApplyDefaults walks the struct and fills zero-valued fields from their
// `default` tags.
func ApplyDefaults(v interface{}) {
	applyDefaultsToValue(reflect.ValueOf(v).Elem())
}

func applyDefaultsToValue(v reflect.Value) {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if field.Kind() == reflect.Struct {
			applyDefaultsToValue(field)
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" || !field.CanSet() || !field.IsZero() {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if b, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(b)
			}
		case reflect.Int, reflect.Int64:
			if n, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(n)
			}
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				field.Set(reflect.ValueOf(parts))
			}
		}
	}
}
