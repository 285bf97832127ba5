// Package config loads modelgraph's TOML configuration file.
//
// The file is optional. A missing file yields [Default]; values present in
// the file replace defaults field by field, then environment variables
// override the credentials:
//
//	MODELGRAPH_MAPI_KEY         kontent.api_key
//	MODELGRAPH_ENVIRONMENT_ID   kontent.environment_id
//
// Example:
//
//	[layout]
//	rankdir = "TB"
//	nodesep = 80
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	key_prefix = "modelgraph:"
//	ttl = "30m"
//
//	[kontent]
//	environment_id = "prod"
//
//	[snapshot]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/modelgraph/pkg/cache"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/integrations/kontent"
	"github.com/matzehuels/modelgraph/pkg/layout"
	"github.com/matzehuels/modelgraph/pkg/snapshot"
)

// Environment variables that override file values.
const (
	EnvAPIKey        = "MODELGRAPH_MAPI_KEY"
	EnvEnvironmentID = "MODELGRAPH_ENVIRONMENT_ID"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

const (
	DefaultCacheBackend    = CacheFile
	DefaultCacheTTL        = kontent.DefaultTTL
	DefaultSnapshotBackend = snapshot.BackendFile
	DefaultServerAddr      = "127.0.0.1:8080"
)

// Config is the whole configuration file.
type Config struct {
	Layout   layout.Options `toml:"layout"`
	Cache    Cache          `toml:"cache"`
	Kontent  Kontent        `toml:"kontent"`
	Snapshot Snapshot       `toml:"snapshot"`
	Server   Server         `toml:"server"`
}

// Cache selects where MAPI responses are cached.
type Cache struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`
	KeyPrefix string        `toml:"key_prefix"`
	TTL       time.Duration `toml:"ttl"`
}

// Kontent holds the management API credentials.
type Kontent struct {
	EnvironmentID string `toml:"environment_id"`
	APIKey        string `toml:"api_key"`
	BaseURL       string `toml:"base_url"`
}

// Snapshot selects the snapshot store.
type Snapshot struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Server configures the inspect-mode HTTP server.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns a configuration with every default applied.
func Default() Config {
	var c Config
	c.SetDefaults()
	return c
}

// DefaultPath returns $XDG_CONFIG_HOME/modelgraph/config.toml (or the
// platform equivalent).
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "modelgraph", "config.toml"), nil
}

// Load reads the file at path, or at [DefaultPath] when path is empty,
// applies environment overrides and validates the result. A missing file is
// not an error when path is empty.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	var c Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if c, err = Parse(data); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	c.ApplyEnv(os.LookupEnv)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Parse decodes TOML data. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return c, nil
}

// ApplyEnv overrides credentials from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		c.Kontent.APIKey = v
	}
	if v, ok := lookup(EnvEnvironmentID); ok && v != "" {
		c.Kontent.EnvironmentID = v
	}
}

// SetDefaults fills zero fields with default values.
func (c *Config) SetDefaults() {
	c.Layout.SetDefaults()
	if c.Cache.Backend == "" {
		c.Cache.Backend = DefaultCacheBackend
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Kontent.BaseURL == "" {
		c.Kontent.BaseURL = kontent.DefaultBaseURL
	}
	if c.Snapshot.Backend == "" {
		c.Snapshot.Backend = DefaultSnapshotBackend
	}
	if c.Snapshot.Database == "" {
		c.Snapshot.Database = snapshot.DefaultMongoDatabase
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
}

// Validate applies defaults and checks every section.
func (c *Config) Validate() error {
	c.SetDefaults()
	if err := c.Layout.Validate(); err != nil {
		return err
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid cache.backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative (got %s)", c.Cache.TTL)
	}

	if c.Kontent.EnvironmentID != "" {
		if err := errors.ValidateEnvironmentID(c.Kontent.EnvironmentID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "kontent.environment_id")
		}
	}
	if err := errors.ValidateURL(c.Kontent.BaseURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "kontent.base_url")
	}

	switch c.Snapshot.Backend {
	case snapshot.BackendFile:
	case snapshot.BackendMongo:
		if c.Snapshot.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "snapshot.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid snapshot.backend: %q (must be one of: file, mongo)", c.Snapshot.Backend)
	}
	return nil
}

// Open returns the configured cache, instrumented with the cache hooks.
func (c Cache) Open(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.RedisAddr, DB: c.RedisDB})
		if err != nil {
			return nil, err
		}
		return cache.Instrument(rc), nil
	default:
		fc, err := cache.NewFileCache(c.Dir)
		if err != nil {
			return nil, err
		}
		return cache.Instrument(fc), nil
	}
}

// Open returns the configured snapshot store.
func (s Snapshot) Open(ctx context.Context) (snapshot.Store, error) {
	if s.Backend == snapshot.BackendMongo {
		return snapshot.NewMongoStore(ctx, snapshot.MongoConfig{URI: s.MongoURI, Database: s.Database})
	}
	return snapshot.NewFileStore(s.Dir)
}

// Keyer returns the key builder for the cache, prefixed when KeyPrefix is set.
func (c Cache) Keyer() cache.Keyer {
	if c.KeyPrefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.KeyPrefix)
}

// KontentOptions converts the section into client options, taking the TTL
// and key scheme from the cache section.
func (k Kontent) KontentOptions(c Cache) kontent.Options {
	return kontent.Options{
		EnvironmentID: k.EnvironmentID,
		APIKey:        k.APIKey,
		BaseURL:       k.BaseURL,
		TTL:           c.TTL,
		Keyer:         c.Keyer(),
	}
}
