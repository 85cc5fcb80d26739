package portfolio

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/avelis/portfolio/views"
)

// Config holds all configuration for the site, parsed from the environment.
// SMTP credentials may be absent; sends fail at send time, never at startup.
type Config struct {
	Name        string `env:"SITE_NAME"`
	URL         string `env:"SITE_URL"`
	Description string `env:"SITE_DESCRIPTION"`
	Author      string `env:"SITE_AUTHOR"`

	Addr          string `env:"ADDR"`
	DatabasePath  string `env:"DATABASE_PATH"`
	SessionSecret string `env:"SESSION_SECRET"`
	CookieSecure  bool   `env:"COOKIE_SECURE"`

	ContactEmail        string `env:"CONTACT_EMAIL"`
	ContactPhone        string `env:"CONTACT_PHONE"`
	ContactLocation     string `env:"CONTACT_LOCATION"`
	ContactAvailability string `env:"CONTACT_AVAILABILITY"`

	MailServer   string        `env:"MAIL_SERVER"`
	MailPort     int           `env:"MAIL_PORT"`
	MailUseTLS   bool          `env:"MAIL_USE_TLS" envDefault:"true"`
	MailUsername string        `env:"MAIL_USERNAME"`
	MailPassword string        `env:"MAIL_PASSWORD"`
	MailTimeout  time.Duration `env:"MAIL_TIMEOUT"`
}

// LoadConfig parses configuration from environment variables and fills
// defaults for anything unset.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/portfolio.db"
	}
	if c.ContactEmail == "" {
		c.ContactEmail = "contact@example.com"
	}
	if c.ContactPhone == "" {
		c.ContactPhone = "+1 234 567 890"
	}
	if c.ContactLocation == "" {
		c.ContactLocation = "New York, USA"
	}
	if c.ContactAvailability == "" {
		c.ContactAvailability = "Available for projects"
	}
	if c.MailServer == "" {
		c.MailServer = "smtp.gmail.com"
	}
	if c.MailPort == 0 {
		c.MailPort = 587
	}
	if c.MailTimeout == 0 {
		c.MailTimeout = 15 * time.Second
	}
}

// Site returns the display-side subset of the configuration for templates.
func (c Config) Site() views.SiteConfig {
	return views.SiteConfig{
		Name:                c.Name,
		URL:                 c.URL,
		Description:         c.Description,
		Author:              c.Author,
		ContactEmail:        c.ContactEmail,
		ContactPhone:        c.ContactPhone,
		ContactLocation:     c.ContactLocation,
		ContactAvailability: c.ContactAvailability,
	}
}
