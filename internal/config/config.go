package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/glabrego/termfolio/internal/nav"
)

const EnvPrefix = "TERMFOLIO"

const (
	KeyContent     = "content"
	KeyDB          = "db"
	KeyProfile     = "profile"
	KeySection     = "section"
	KeyLocation    = "location"
	KeyLogLevel    = "log-level"
	KeyLogFile     = "log-file"
	KeyTipInterval = "tip-interval"
	KeyHeadLines   = "head-lines"
)

const (
	defaultContent     = "./site"
	defaultDBPath      = "termfolio.db"
	defaultTipInterval = 20 * time.Second
	defaultHeadLines   = 10
)

// Config holds runtime settings for the CLI app.
type Config struct {
	Content     string
	DBPath      string
	ProfilePath string
	Section     string
	Location    string
	LogLevel    string
	LogFile     string
	TipInterval time.Duration
	HeadLines   int
}

// NewViper returns a viper instance with defaults and TERMFOLIO_* environment
// lookup. Flags are bound onto it by the caller.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyContent, defaultContent)
	v.SetDefault(KeyDB, defaultDBPath)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyTipInterval, defaultTipInterval)
	v.SetDefault(KeyHeadLines, defaultHeadLines)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads the optional config file into v and returns the validated
// settings. Without an explicit file, termfolio.yaml is looked up in the
// working directory and the user config directory.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("termfolio")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "termfolio"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		Content:     strings.TrimSpace(v.GetString(KeyContent)),
		DBPath:      strings.TrimSpace(v.GetString(KeyDB)),
		ProfilePath: strings.TrimSpace(v.GetString(KeyProfile)),
		Section:     strings.ToLower(strings.TrimSpace(v.GetString(KeySection))),
		Location:    strings.TrimSpace(v.GetString(KeyLocation)),
		LogLevel:    strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFile:     strings.TrimSpace(v.GetString(KeyLogFile)),
		TipInterval: v.GetDuration(KeyTipInterval),
		HeadLines:   v.GetInt(KeyHeadLines),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Content == "" {
		return errors.New("content source is required")
	}
	if strings.Contains(c.Content, "://") {
		u, err := url.Parse(c.Content)
		if err != nil {
			return fmt.Errorf("content source is not a valid URL: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "file" {
			return fmt.Errorf("content source scheme must be http, https or file: %s", u.Scheme)
		}
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if c.Section != "" {
		if _, ok := nav.SectionByName(c.Section); !ok {
			return fmt.Errorf("unknown section: %s", c.Section)
		}
	}
	if c.Location != "" {
		if _, err := nav.ParseLocation(c.Location); err != nil {
			return err
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log level must be debug, info, warn or error: %s", c.LogLevel)
	}
	if c.TipInterval < time.Second {
		return fmt.Errorf("tip interval must be at least 1s: %s", c.TipInterval)
	}
	if c.HeadLines < 1 {
		return fmt.Errorf("head lines must be positive: %d", c.HeadLines)
	}
	return nil
}

// StartLocation combines Location and Section into the address the app
// starts at. Section wins over the location's own fragment.
func (c Config) StartLocation() (nav.Location, error) {
	loc, err := nav.ParseLocation(c.Location)
	if err != nil {
		return nav.Location{}, err
	}
	if c.Section != "" {
		section, _ := nav.SectionByName(c.Section)
		loc = loc.WithFragment(section.Fragment())
	}
	return loc, nil
}
