// Package config loads the settings shared by the surreal command and
// programs embedding the codec: wire naming, logging and struct tags.
//
// Settings come from an optional file (YAML, JSON or TOML) and from
// SURREAL_* environment variables, which take precedence:
//
//	use_camel_case: true     # SURREAL_USE_CAMEL_CASE
//	enable_log: true         # SURREAL_ENABLE_LOG
//	namespace: blog          # SURREAL_NAMESPACE
//	log_level: debug         # SURREAL_LOG_LEVEL
//	log_format: json         # SURREAL_LOG_FORMAT
//	tag_key: surreal         # SURREAL_TAG_KEY
//
// CodecConfig turns the settings into a codec.Config. tag_key only matters
// to programs that encode their own Go structs; the surreal command has no
// struct types and uses the registry for naming and logging.
package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/signadot/go-surreal/codec"
	"github.com/signadot/go-surreal/naming"
	"github.com/spf13/viper"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvPrefix = "SURREAL"
	FileName  = "surreal"
)

type Config struct {
	UseCamelCase bool   `mapstructure:"use_camel_case"`
	EnableLog    bool   `mapstructure:"enable_log"`
	Namespace    string `mapstructure:"namespace"`
	LogLevel     string `mapstructure:"log_level"`
	LogFormat    string `mapstructure:"log_format"`
	TagKey       string `mapstructure:"tag_key"`
}

func Default() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "console",
		TagKey:    codec.DefaultTagKey,
	}
}

// Load reads the configuration. With an empty path it looks for
// surreal.{yaml,json,toml} in the working directory and uses defaults
// when there is none; a non-empty path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("use_camel_case", def.UseCamelCase)
	v.SetDefault("enable_log", def.EnableLog)
	v.SetDefault("namespace", def.Namespace)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)
	v.SetDefault("tag_key", def.TagKey)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read config")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "log_level")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return errors.Newf("log_format must be console or json, got %q", c.LogFormat)
	}
	if c.TagKey == "" {
		return errors.New("tag_key must not be empty")
	}
	return nil
}

func (c *Config) Naming() naming.Convention {
	if c.UseCamelCase {
		return naming.CamelCase
	}
	return naming.SnakeCase
}

// Logger builds the logger described by c, writing to w (stderr when
// nil). It is a no-op logger unless EnableLog is set.
func (c *Config) Logger(w zapcore.WriteSyncer) (*zap.Logger, error) {
	if !c.EnableLog {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "log_level")
	}
	if w == nil {
		w = zapcore.Lock(os.Stderr)
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if c.LogFormat == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	lg := zap.New(zapcore.NewCore(enc, w, level))
	if c.Namespace != "" {
		lg = lg.Named(c.Namespace)
	}
	return lg, nil
}

// CodecConfig returns the codec settings of c, logging to lg.
func (c *Config) CodecConfig(lg *zap.Logger) codec.Config {
	return codec.Config{
		Naming: c.Naming(),
		Logger: lg,
		TagKey: c.TagKey,
	}
}
