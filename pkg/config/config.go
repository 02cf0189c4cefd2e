// Package config loads umlgraph settings.
//
// Sources, lowest precedence first:
//
//  1. built-in defaults ([Default])
//  2. a TOML file, $XDG_CONFIG_HOME/umlgraph/config.toml unless a path is given
//  3. a .env file in the working directory
//  4. UMLGRAPH_* environment variables
//
// Command line flags override the loaded values in internal/cli.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	uerrors "github.com/matzehuels/umlgraph/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "UMLGRAPH_"

// Config is the full set of settings.
type Config struct {
	LogLevel string       `toml:"log_level" validate:"oneof=debug info warn error"`
	Cache    CacheConfig  `toml:"cache"`
	Server   ServerConfig `toml:"server"`
	Render   RenderConfig `toml:"render"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend   string   `toml:"backend" validate:"oneof=file redis none"`
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr" validate:"omitempty,hostname_port"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string `toml:"addr" validate:"required"`
	MaxBodyBytes int    `toml:"max_body_bytes" validate:"gt=0"`

	// RateLimit is the sustained diagram requests per second; 0 disables
	// limiting.
	RateLimit float64 `toml:"rate_limit" validate:"gte=0"`
	Burst     int     `toml:"burst" validate:"gte=0"`
}

// RenderConfig holds output defaults.
type RenderConfig struct {
	Format string `toml:"format" validate:"oneof=json yaml dot svg"`
}

// Duration is a time.Duration written as "24h" in TOML.
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Cache: CacheConfig{
			Backend:   "file",
			TTL:       Duration{24 * time.Hour},
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: uerrors.DefaultMaxSourceBytes,
			Burst:        1,
		},
		Render: RenderConfig{Format: "json"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/umlgraph/config.toml or its platform
// equivalent.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "umlgraph", "config.toml"), nil
}

// Loaded is a Config plus what Load noticed along the way.
type Loaded struct {
	Config
	// Path is the TOML file that was read, or "" if none.
	Path string
	// Unknown lists keys in the file that match no setting.
	Unknown []string
}

// Load reads the configuration. An empty path uses [DefaultPath] and a
// missing default file is not an error; a missing explicit file is.
func Load(path string) (*Loaded, error) {
	l := &Loaded{Config: Default()}

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		md, err := toml.DecodeFile(path, &l.Config)
		switch {
		case err == nil:
			l.Path = path
			for _, k := range md.Undecoded() {
				l.Unknown = append(l.Unknown, k.String())
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		case errors.Is(err, fs.ErrNotExist):
			return nil, uerrors.Wrap(uerrors.ErrCodeFileNotFound, err, "config file %s", path)
		default:
			return nil, uerrors.Wrap(uerrors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	}

	// .env never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, uerrors.Wrap(uerrors.ErrCodeInvalidConfig, err, "load .env")
	}
	if err := l.Config.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := l.Config.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Parse decodes TOML text on top of the defaults. It is Load without the
// file system and environment.
func Parse(data string) (Config, []string, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return cfg, nil, uerrors.Wrap(uerrors.ErrCodeInvalidConfig, err, "parse config")
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	return cfg, unknown, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	str("LOG_LEVEL", &c.LogLevel)
	str("CACHE_BACKEND", &c.Cache.Backend)
	str("CACHE_DIR", &c.Cache.Dir)
	str("REDIS_ADDR", &c.Cache.RedisAddr)
	str("SERVER_ADDR", &c.Server.Addr)
	str("FORMAT", &c.Render.Format)

	if v, ok := lookup(EnvPrefix + "CACHE_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return uerrors.Wrap(uerrors.ErrCodeInvalidConfig, err, "%sCACHE_TTL", EnvPrefix)
		}
		c.Cache.TTL = Duration{d}
	}
	if v, ok := lookup(EnvPrefix + "MAX_BODY_BYTES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return uerrors.Wrap(uerrors.ErrCodeInvalidConfig, err, "%sMAX_BODY_BYTES", EnvPrefix)
		}
		c.Server.MaxBodyBytes = n
	}
	if v, ok := lookup(EnvPrefix + "RATE_LIMIT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return uerrors.Wrap(uerrors.ErrCodeInvalidConfig, err, "%sRATE_LIMIT", EnvPrefix)
		}
		c.Server.RateLimit = f
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if c.Cache.TTL.Duration < 0 {
		return uerrors.New(uerrors.ErrCodeInvalidConfig, "Cache.TTL must not be negative")
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return uerrors.New(uerrors.ErrCodeInvalidConfig, "Cache.RedisAddr is required")
	}
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return uerrors.Wrap(uerrors.ErrCodeInvalidConfig, err, "validate config")
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = describe(fe)
	}
	return uerrors.New(uerrors.ErrCodeInvalidConfig, "%s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "hostname_port":
		return fmt.Sprintf("%s must be host:port, got %q", field, fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s, got %v", field, fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
