package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/tristendillon/create-common-app/core/logger"
	"gopkg.in/yaml.v3"
)

const (
	FileName  = "create-common-app.yaml"
	EnvPrefix = "CREATE_COMMON_APP_"
)

type Config struct {
	PackageManager    string   `yaml:"package_manager" validate:"oneof=npm pnpm yarn"`
	RegistryTool      string   `yaml:"registry_tool" validate:"required"`
	PeerFailurePolicy string   `yaml:"peer_failure_policy" validate:"oneof=retry cache"`
	LintConfigFormat  string   `yaml:"lint_config_format" validate:"oneof=json yaml"`
	Install           bool     `yaml:"install"`
	Git               bool     `yaml:"git"`
	CommitMessage     string   `yaml:"commit_message" validate:"required"`
	VersionRange      string   `yaml:"version_range" validate:"required"`
	TemplateExcludes  []string `yaml:"template_excludes"`
}

func Default() *Config {
	return &Config{
		PackageManager:    "npm",
		RegistryTool:      "npm",
		PeerFailurePolicy: "retry",
		LintConfigFormat:  "json",
		Install:           true,
		Git:               true,
		CommitMessage:     "Initial commit from Create Common App",
		VersionRange:      "latest",
		TemplateExcludes:  []string{"**/.DS_Store"},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads FileName from dir, falling back to Default when it is absent.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile reads the config at path. A missing file yields Default. A .env
// next to the file is loaded first, then CREATE_COMMON_APP_* variables
// override whatever the file set.
func LoadFile(path string) (*Config, error) {
	envFile := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envFile); err == nil {
		logger.Debug("Loaded environment from %s", envFile)
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("No config file found, using default config")
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
		logger.Debug("Config file found: %s", path)
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Config: %+v", *cfg)
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	boolean := func(key string, dst *bool) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
		}
		*dst = b
		return nil
	}

	str("PACKAGE_MANAGER", &cfg.PackageManager)
	str("REGISTRY_TOOL", &cfg.RegistryTool)
	str("PEER_FAILURE_POLICY", &cfg.PeerFailurePolicy)
	str("LINT_CONFIG_FORMAT", &cfg.LintConfigFormat)
	str("COMMIT_MESSAGE", &cfg.CommitMessage)
	str("VERSION_RANGE", &cfg.VersionRange)

	if v, ok := lookup(EnvPrefix + "TEMPLATE_EXCLUDES"); ok && strings.TrimSpace(v) != "" {
		cfg.TemplateExcludes = nil
		for _, pattern := range strings.Split(v, ",") {
			if pattern = strings.TrimSpace(pattern); pattern != "" {
				cfg.TemplateExcludes = append(cfg.TemplateExcludes, pattern)
			}
		}
	}

	if err := boolean("INSTALL", &cfg.Install); err != nil {
		return err
	}
	return boolean("GIT", &cfg.Git)
}
