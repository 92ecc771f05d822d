package bee

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the server-side settings of a bee site. Site identity lives
// in sitemeta.Metadata, not here.
type Config struct {
	Addr         string `env:"BEE_ADDR" env-default:":3000"`
	DatabasePath string `env:"DATABASE_PATH" env-default:"data/blog.db"`
	MetadataPath string `env:"SITE_CONFIG"` // YAML metadata file; built-in defaults when empty
	StaticDir    string `env:"STATIC_DIR" env-default:"public"`

	AdminPassword string `env:"ADMIN_PASSWORD"` // admin routes are disabled when empty
	SessionSecret string `env:"ADMIN_SESSION_SECRET"`
	CookieSecure  bool   `env:"COOKIE_SECURE"`

	PostCacheTTL time.Duration `env:"POST_CACHE_TTL" env-default:"5m"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("bee: read config: %w", err)
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// AdminEnabled reports whether the admin dashboard is configured.
func (c Config) AdminEnabled() bool {
	return c.AdminPassword != ""
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithIconSizes overrides the square icon sizes served for the web manifest.
func WithIconSizes(sizes ...int) Option {
	return func(a *App) {
		if len(sizes) > 0 {
			a.iconSizes = sizes
		}
	}
}
