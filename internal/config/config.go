package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/activitycal/internal/calendar"
	"github.com/idilsaglam/activitycal/internal/log"
	"github.com/idilsaglam/activitycal/internal/store/jsonstore"
)

const (
	DefaultConfigFile = "activitycal.yaml"
	DefaultEnvFile    = ".env"
	envPrefix         = "ACTIVITYCAL_"
)

// ValidThemes mirrors the themes known to the ui package.
var ValidThemes = []string{"classic", "neon", "mono"}

// Config is the runtime configuration. Layers, lowest first: defaults, YAML
// file, .env file, process environment, then command-line flags applied by
// the caller.
type Config struct {
	DataFile    string `yaml:"data_file"`
	JournalFile string `yaml:"journal_file"`
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"` // empty means stderr
	Theme       string `yaml:"theme"`
	Locale      string `yaml:"locale"`
}

// Sources says where to look. Empty fields fall back to the defaults in the
// working directory; a missing default file is not an error, a missing
// explicit one is.
type Sources struct {
	ConfigFile string
	EnvFile    string
}

// Default puts both documents in the working directory.
func Default() *Config {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return &Config{
		DataFile:    filepath.Join(wd, jsonstore.DefaultActivitiesFile),
		JournalFile: filepath.Join(wd, jsonstore.DefaultJournalFile),
		LogLevel:    "info",
		Theme:       "classic",
		Locale:      "en",
	}
}

// Load builds a Config from every layer except flags.
func Load(src Sources) (*Config, error) {
	cfg := Default()

	env := envLookup(os.Getenv)
	envFile, explicitEnv := src.EnvFile, src.EnvFile != ""
	if !explicitEnv {
		envFile = DefaultEnvFile
	}
	dotenv, err := godotenv.Read(envFile)
	switch {
	case err == nil:
		env = layered(env, dotenv)
	case explicitEnv || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read env file %s: %w", envFile, err)
	}

	cfgFile, explicitCfg := src.ConfigFile, src.ConfigFile != ""
	if !explicitCfg {
		cfgFile = env("CONFIG")
		explicitCfg = cfgFile != ""
	}
	if cfgFile == "" {
		cfgFile = DefaultConfigFile
	}
	if err := cfg.loadFile(cfgFile); err != nil {
		if explicitCfg || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg.applyEnv(env)
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(b, &fileCfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	// relative document paths are relative to the config file
	base := filepath.Dir(path)
	fileCfg.DataFile = resolve(base, fileCfg.DataFile)
	fileCfg.JournalFile = resolve(base, fileCfg.JournalFile)
	fileCfg.LogFile = resolve(base, fileCfg.LogFile)
	c.Merge(fileCfg)
	return nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Merge copies the non-empty fields of o onto c.
func (c *Config) Merge(o Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.DataFile, o.DataFile)
	set(&c.JournalFile, o.JournalFile)
	set(&c.LogLevel, o.LogLevel)
	set(&c.LogFile, o.LogFile)
	set(&c.Theme, o.Theme)
	set(&c.Locale, o.Locale)
}

func (c *Config) applyEnv(env func(string) string) {
	c.Merge(Config{
		DataFile:    env("DATA_FILE"),
		JournalFile: env("JOURNAL_FILE"),
		LogLevel:    env("LOG_LEVEL"),
		LogFile:     env("LOG_FILE"),
		Theme:       env("THEME"),
		Locale:      env("LOCALE"),
	})
}

// envLookup reads prefixed variables from get.
func envLookup(get func(string) string) func(string) string {
	return func(key string) string {
		return strings.TrimSpace(get(envPrefix + key))
	}
}

// layered lets the process environment win over the .env file.
func layered(primary func(string) string, fallback map[string]string) func(string) string {
	return func(key string) string {
		if v := primary(key); v != "" {
			return v
		}
		return strings.TrimSpace(fallback[envPrefix+key])
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.DataFile) == "" {
		problems = append(problems, "data file cannot be empty")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}
	if !contains(ValidThemes, c.Theme) {
		problems = append(problems, fmt.Sprintf("invalid theme '%s': must be one of %v", c.Theme, ValidThemes))
	}
	if !calendar.SupportedLocale(c.Locale) {
		problems = append(problems, fmt.Sprintf("invalid locale '%s': must be one of %v", c.Locale, calendar.Locales()))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
