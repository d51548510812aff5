package config

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ytapi/internal/dirs"
)

// Defaults for keys that have no flag or whose flag default is not the
// effective default.
const (
	DefaultPort            = 3001
	DefaultRateLimit       = 10.0
	DefaultShutdownTimeout = 10 * time.Second
	DefaultFFmpegBinary    = "ffmpeg"
)

// Config is the resolved runtime configuration.
type Config struct {
	Host            string
	Port            int
	TempDir         string
	DLBinary        string
	FFmpegBinary    string
	Verbose         bool
	RateLimit       float64 // requests per second per client IP; 0 disables
	ExtractTimeout  time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	LogFormat       string
}

// SetDefaults registers every key's default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("host", "")
	v.SetDefault("port", DefaultPort)
	v.SetDefault("temp_dir", dirs.DefaultTempDir())
	v.SetDefault("dl_binary", "")
	v.SetDefault("ffmpeg_binary", DefaultFFmpegBinary)
	v.SetDefault("verbose", false)
	v.SetDefault("rate_limit", DefaultRateLimit)
	v.SetDefault("extract_timeout", time.Duration(0))
	v.SetDefault("shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Init wires Viper with config paths, env, defaults, and flag bindings.
// It is non-fatal: any errors are returned for optional handling by caller.
func Init(root *cobra.Command) error {
	_ = dirs.EnsureConfigDir()

	// Setup config search path
	if cfgDir, err := dirs.ConfigDir(); err == nil {
		viper.AddConfigPath(cfgDir)
	}
	viper.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	setupEnv(viper.GetViper())
	SetDefaults(viper.GetViper())

	// Bind root persistent flags to Viper keys
	BindFlags(viper.GetViper(), root.PersistentFlags())

	// Read config file if present (ignore not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

// setupEnv maps YTAPI_* variables onto keys. The port additionally honors a
// bare PORT, which takes effect below YTAPI_PORT.
func setupEnv(v *viper.Viper) {
	v.SetEnvPrefix("YTAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("port", "YTAPI_PORT", "PORT")
}

// BindFlags binds the flags in fs that correspond to config keys. Flags that
// are absent from fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	for key, flag := range map[string]string{
		"host":             "host",
		"port":             "port",
		"temp_dir":         "temp-dir",
		"dl_binary":        "dl-binary",
		"ffmpeg_binary":    "ffmpeg-binary",
		"verbose":          "verbose",
		"rate_limit":       "rate-limit",
		"extract_timeout":  "extract-timeout",
		"shutdown_timeout": "shutdown-timeout",
		"log_level":        "log-level",
		"log_format":       "log-format",
	} {
		if f := fs.Lookup(flag); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

// Load reads the resolved configuration from the global Viper instance.
func Load() Config {
	return FromViper(viper.GetViper())
}

// FromViper reads the resolved configuration from v.
func FromViper(v *viper.Viper) Config {
	cfg := Config{
		Host:            v.GetString("host"),
		Port:            v.GetInt("port"),
		TempDir:         v.GetString("temp_dir"),
		DLBinary:        v.GetString("dl_binary"),
		FFmpegBinary:    v.GetString("ffmpeg_binary"),
		Verbose:         v.GetBool("verbose"),
		RateLimit:       v.GetFloat64("rate_limit"),
		ExtractTimeout:  v.GetDuration("extract_timeout"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		LogLevel:        v.GetString("log_level"),
		LogFormat:       v.GetString("log_format"),
	}
	if cfg.Port <= 0 {
		cfg.Port = DefaultPort
	}
	if cfg.TempDir == "" {
		cfg.TempDir = dirs.DefaultTempDir()
	}
	if cfg.FFmpegBinary == "" {
		cfg.FFmpegBinary = DefaultFFmpegBinary
	}
	if cfg.RateLimit < 0 {
		cfg.RateLimit = 0
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Verbose && cfg.LogLevel == "info" {
		cfg.LogLevel = "debug"
	}
	return cfg
}
