// Package config loads kopi's configuration in three layers — built-in
// defaults, then an optional config file, then environment variables — each
// overriding the last, per spec.md §4.P/§6.
package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the fully resolved, immutable configuration the CLI loads. The
// CLI applies InstallLockTimeout (install lock acquisition) and MetadataTTL
// (cache staleness checks); no component reads the other fields, so lock
// scopes and downloads run with their own built-in defaults.
type Config struct {
	InstallLockTimeout time.Duration `yaml:"install_lock_timeout"`
	CacheLockTimeout   time.Duration `yaml:"cache_lock_timeout"`
	ConfigLockTimeout  time.Duration `yaml:"config_lock_timeout"`

	DownloadTimeout time.Duration `yaml:"download_timeout"`
	MaxDownloadSize int64         `yaml:"max_download_size"`
	DownloadResume  bool          `yaml:"download_resume"`

	ForceFallbackLocking bool `yaml:"force_fallback_locking"`
	AutoInstall          bool `yaml:"auto_install"`

	MetadataTTL time.Duration `yaml:"metadata_ttl"`
}

// Defaults returns the built-in configuration, matching the per-scope and
// per-operation defaults named in spec.md §5.
func Defaults() Config {
	return Config{
		InstallLockTimeout: 600 * time.Second,
		CacheLockTimeout:   30 * time.Second,
		ConfigLockTimeout:  10 * time.Second,
		DownloadTimeout:    300 * time.Second,
		MaxDownloadSize:    1 << 30,
		DownloadResume:     true,
		MetadataTTL:        30 * 24 * time.Hour,
	}
}

// fileConfig mirrors Config's YAML shape but with optional pointer fields,
// so an absent key doesn't silently overwrite a default with a zero value.
type fileConfig struct {
	InstallLockTimeout   *durationField `yaml:"install_lock_timeout"`
	CacheLockTimeout     *durationField `yaml:"cache_lock_timeout"`
	ConfigLockTimeout    *durationField `yaml:"config_lock_timeout"`
	DownloadTimeout      *durationField `yaml:"download_timeout"`
	MaxDownloadSize      *int64         `yaml:"max_download_size"`
	DownloadResume       *bool          `yaml:"download_resume"`
	ForceFallbackLocking *bool          `yaml:"force_fallback_locking"`
	AutoInstall          *bool          `yaml:"auto_install"`
	MetadataTTL          *durationField `yaml:"metadata_ttl"`
}

// durationField accepts YAML duration strings ("10s", "5m") via yaml.v3's
// custom unmarshaler hook.
type durationField time.Duration

func (d *durationField) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return err
	}
	*d = durationField(parsed)
	return nil
}

// Load builds a Config from defaults, then path (if it exists), then
// KOPI_*-prefixed environment variables.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if data, err := os.ReadFile(path); err == nil {
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, err
		}
		applyFile(&cfg, fc)
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyFile(cfg *Config, fc fileConfig) {
	if fc.InstallLockTimeout != nil {
		cfg.InstallLockTimeout = time.Duration(*fc.InstallLockTimeout)
	}
	if fc.CacheLockTimeout != nil {
		cfg.CacheLockTimeout = time.Duration(*fc.CacheLockTimeout)
	}
	if fc.ConfigLockTimeout != nil {
		cfg.ConfigLockTimeout = time.Duration(*fc.ConfigLockTimeout)
	}
	if fc.DownloadTimeout != nil {
		cfg.DownloadTimeout = time.Duration(*fc.DownloadTimeout)
	}
	if fc.MaxDownloadSize != nil {
		cfg.MaxDownloadSize = *fc.MaxDownloadSize
	}
	if fc.DownloadResume != nil {
		cfg.DownloadResume = *fc.DownloadResume
	}
	if fc.ForceFallbackLocking != nil {
		cfg.ForceFallbackLocking = *fc.ForceFallbackLocking
	}
	if fc.AutoInstall != nil {
		cfg.AutoInstall = *fc.AutoInstall
	}
	if fc.MetadataTTL != nil {
		cfg.MetadataTTL = time.Duration(*fc.MetadataTTL)
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("KOPI_INSTALL_LOCK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.InstallLockTimeout = d
		}
	}
	if v := os.Getenv("KOPI_MAX_DOWNLOAD_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxDownloadSize = n
		}
	}
	if v := os.Getenv("KOPI_AUTO_INSTALL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AutoInstall = b
		}
	}
	if v := os.Getenv("KOPI_FORCE_FALLBACK_LOCKING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ForceFallbackLocking = b
		}
	}
}
