package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvProduction = "production"

type Config struct {
	Env       string          `mapstructure:"env"`
	Addr      string          `mapstructure:"addr"`
	AppHost   string          `mapstructure:"host"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Sessions  SessionsConfig  `mapstructure:"sessions"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Upload    UploadConfig    `mapstructure:"upload"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Bridge    BridgeConfig    `mapstructure:"bridge"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	Source string `mapstructure:"source"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type SessionsConfig struct {
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// StorageConfig selects the object store driver: "local", "s3" or "minio".
type StorageConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	PublicURL string `mapstructure:"public_url"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// RateLimitConfig sets per-client request ceilings. Clients are keyed by
// peer address; forwarding headers are honoured only with TrustProxy.
type RateLimitConfig struct {
	Requests     int           `mapstructure:"requests"`
	AuthRequests int           `mapstructure:"auth_requests"`
	Window       time.Duration `mapstructure:"window"`
	TrustProxy   bool          `mapstructure:"trust_proxy"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type BridgeConfig struct {
	Token   string `mapstructure:"token"`
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.DB.Source == "" {
		errs = append(errs, errors.New("db.source is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if c.IsProduction() && len(c.JWT.Secret) < 32 {
		errs = append(errs, errors.New("jwt.secret must be at least 32 characters in production"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("jwt.ttl must be positive"))
	}
	switch c.Storage.Driver {
	case "local":
		if c.Storage.Path == "" {
			errs = append(errs, errors.New("storage.path is required for the local driver"))
		}
	case "s3", "minio":
		if c.Storage.Endpoint == "" || c.Storage.AccessKey == "" || c.Storage.SecretKey == "" || c.Storage.Bucket == "" {
			errs = append(errs, errors.New("storage endpoint, access_key, secret_key and bucket are required"))
		}
	default:
		errs = append(errs, errors.New("storage.driver must be one of local, s3, minio"))
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("addr", ":8080")
	v.SetDefault("host", "localhost:8080")
	v.SetDefault("log.level", "info")
	// Keys without a real default are still registered so AutomaticEnv can fill them.
	v.SetDefault("db.source", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.public_url", "")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("bridge.token", "")
	v.SetDefault("jwt.ttl", 7*24*time.Hour)
	v.SetDefault("sessions.sweep_interval", time.Hour)
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.path", "./data/uploads")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("upload.max_bytes", 10<<20)
	v.SetDefault("ratelimit.requests", 100)
	v.SetDefault("ratelimit.auth_requests", 10)
	v.SetDefault("ratelimit.window", time.Minute)
	v.SetDefault("ratelimit.trust_proxy", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("bridge.name", "provider-bridge")
	v.SetDefault("bridge.version", "1.0.0")
}

// Flags returns the command-line flags understood by Load.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to a settings file")
	fs.String("addr", "", "address to listen on")
	fs.String("env", "", "runtime environment (development, production)")
	return fs
}

// Load reads configs/settings.yml, then environment variables (db.source ->
// DB_SOURCE), then any flags that were set on fs.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath("./configs")
	v.AddConfigPath("/configs")
	v.SetConfigName("settings")
	v.SetConfigType("yml")

	if fs != nil {
		if path, err := fs.GetString("config"); err == nil && path != "" {
			v.SetConfigFile(path)
		}
		for _, name := range []string{"addr", "env"} {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(name, f); err != nil {
					return nil, err
				}
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
