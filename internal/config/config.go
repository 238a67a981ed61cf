package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Arbiter/pkg/curve"
)

const (
	ModeStrict = "strict"
	ModeFuzzy  = "fuzzy"

	DefaultProfile = "default"
)

type Config struct {
	Server    ServerConfig             `yaml:"server"`
	Database  DatabaseConfig           `yaml:"database"`
	Hermes    HermesConfig             `yaml:"hermes"`
	Selection SelectionConfig          `yaml:"selection"`
	Profiles  map[string]ProfileConfig `yaml:"profiles"`
	Logging   LoggingConfig            `yaml:"logging"`
}

type ServerConfig struct {
	Port               int    `yaml:"port"`
	MetricsPort        int    `yaml:"metrics_port"`
	AdminToken         string `yaml:"admin_token"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

// SelectionConfig holds the defaults used when a profile or request does not
// say how to choose.
type SelectionConfig struct {
	DefaultMode      string  `yaml:"default_mode"`
	DefaultFuzziness float64 `yaml:"default_fuzziness"`
	// Seed for the offset source; negative picks a random seed at startup.
	Seed int64 `yaml:"seed"`
}

// ProfileConfig describes how options are scored for one kind of decision.
// Mode and Fuzziness fall back to the selection defaults when empty.
type ProfileConfig struct {
	Mode           string                `yaml:"mode"`
	Fuzziness      *float64              `yaml:"fuzziness"`
	Considerations []ConsiderationConfig `yaml:"considerations"`
}

type ConsiderationConfig struct {
	Name   string     `yaml:"name"`
	Weight float64    `yaml:"weight"`
	Veto   bool       `yaml:"veto"`
	Curve  curve.Spec `yaml:"curve"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               8700,
			MetricsPort:        8701,
			RateLimitPerMinute: 120,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Selection: SelectionConfig{
			DefaultMode:      ModeFuzzy,
			DefaultFuzziness: 0.1,
			Seed:             -1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if len(cfg.Profiles) == 0 {
		cfg.Profiles = map[string]ProfileConfig{DefaultProfile: defaultProfile()}
	}

	applyEnv(cfg)
	return cfg, nil
}

// defaultProfile scores a single pre-normalized "utility" measurement.
func defaultProfile() ProfileConfig {
	return ProfileConfig{
		Considerations: []ConsiderationConfig{
			{
				Name:   "utility",
				Weight: 1.0,
				Curve:  curve.Spec{Kind: curve.KindLinear, Max: 1.0},
			},
		},
	}
}

// ModeFor returns the selection mode a profile uses.
func (c *Config) ModeFor(p ProfileConfig) string {
	if p.Mode != "" {
		return p.Mode
	}
	return c.Selection.DefaultMode
}

// FuzzinessFor returns the fuzziness a profile uses.
func (c *Config) FuzzinessFor(p ProfileConfig) float64 {
	if p.Fuzziness != nil {
		return *p.Fuzziness
	}
	return c.Selection.DefaultFuzziness
}

// Validate checks server and selection settings and each profile's modes and
// curves. Consideration weights are checked when the scorers are built.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Server.MetricsPort <= 0 || c.Server.MetricsPort > 65535 {
		errs = append(errs, fmt.Errorf("server.metrics_port out of range: %d", c.Server.MetricsPort))
	}
	if c.Server.RateLimitPerMinute <= 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit_per_minute must be positive: %d", c.Server.RateLimitPerMinute))
	}
	if err := validateMode(c.Selection.DefaultMode); err != nil {
		errs = append(errs, fmt.Errorf("selection.default_mode: %w", err))
	}
	if err := validateFuzziness(c.Selection.DefaultFuzziness); err != nil {
		errs = append(errs, fmt.Errorf("selection.default_fuzziness: %w", err))
	}

	for name, p := range c.Profiles {
		if p.Mode != "" {
			if err := validateMode(p.Mode); err != nil {
				errs = append(errs, fmt.Errorf("profile %s: %w", name, err))
			}
		}
		if p.Fuzziness != nil {
			if err := validateFuzziness(*p.Fuzziness); err != nil {
				errs = append(errs, fmt.Errorf("profile %s: %w", name, err))
			}
		}
		if len(p.Considerations) == 0 {
			errs = append(errs, fmt.Errorf("profile %s: no considerations", name))
		}
		for _, cc := range p.Considerations {
			if err := cc.Curve.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("profile %s: consideration %s: %w", name, cc.Name, err))
			}
		}
	}
	return errors.Join(errs...)
}

func validateMode(mode string) error {
	switch mode {
	case ModeStrict, ModeFuzzy:
		return nil
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

func validateFuzziness(f float64) error {
	if !(f >= 0 && f <= 1) {
		return fmt.Errorf("fuzziness must be in [0, 1], got %v", f)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ARBITER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("ARBITER_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("ARBITER_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("ARBITER_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("ARBITER_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("ARBITER_DEFAULT_MODE"); v != "" {
		cfg.Selection.DefaultMode = v
	}
	if v := os.Getenv("ARBITER_DEFAULT_FUZZINESS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Selection.DefaultFuzziness = f
		}
	}
	if v := os.Getenv("ARBITER_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Selection.Seed = n
		}
	}
	if v := os.Getenv("ARBITER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ARBITER_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
