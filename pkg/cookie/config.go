package cookie

import "net/http"

// Config holds cookie manager configuration
type Config struct {
	Path     string        `env:"COOKIE_PATH" envDefault:"/" yaml:"path"`
	Domain   string        `env:"COOKIE_DOMAIN" envDefault:"" yaml:"domain"`
	MaxAge   int           `env:"COOKIE_MAX_AGE" envDefault:"0" yaml:"max_age"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false" yaml:"secure"`
	HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true" yaml:"http_only"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2" yaml:"same_site"` // 2 = SameSiteLaxMode
}

// DefaultConfig returns default cookie configuration
func DefaultConfig() Config {
	return Config{
		Path:     "/",
		Domain:   "",
		MaxAge:   0,
		Secure:   false,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewFromConfig creates a new Manager from the provided Config.
// Only non-zero values from the config are applied, except HttpOnly which is
// always taken from the config.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	configOpts := make([]Option, 0, 6)

	if cfg.Path != "" {
		configOpts = append(configOpts, WithPath(cfg.Path))
	}
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	if cfg.MaxAge != 0 {
		configOpts = append(configOpts, WithMaxAge(cfg.MaxAge))
	}
	if cfg.Secure {
		configOpts = append(configOpts, WithSecure(cfg.Secure))
	}
	configOpts = append(configOpts, WithHTTPOnly(cfg.HttpOnly))
	if cfg.SameSite != 0 {
		configOpts = append(configOpts, WithSameSite(cfg.SameSite))
	}

	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}
