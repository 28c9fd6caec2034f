package config

import (
	"flag"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	VideoProviderStream = "stream"
	VideoProviderLocal  = "local"

	IdentityProviderJWT    = "jwt"
	IdentityProviderStatic = "static"
)

type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	App       AppConfig       `yaml:"app"`
	Video     VideoConfig     `yaml:"video"`
	Identity  IdentityConfig  `yaml:"identity"`
	Database  DatabaseConfig  `yaml:"database"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type HTTPConfig struct {
	Address        string   `yaml:"address" env:"HTTP_ADDRESS" env-default:""`
	AllowedOrigins []string `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS"`
}

type AppConfig struct {
	// BaseURL prefixes shareable meeting links: <base-url>/meeting/<call-id>.
	BaseURL  string        `yaml:"base_url" env:"BASE_URL"`
	TimeZone string        `yaml:"time_zone" env:"APP_TIME_ZONE" env-default:"UTC"`
	VisitTTL time.Duration `yaml:"visit_ttl" env:"APP_VISIT_TTL" env-default:"30m"`
}

type VideoConfig struct {
	Provider  string        `yaml:"provider" env:"VIDEO_PROVIDER" env-default:"local"`
	BaseURL   string        `yaml:"base_url" env:"VIDEO_BASE_URL"`
	APIKey    string        `yaml:"api_key" env:"VIDEO_API_KEY"`
	APISecret string        `yaml:"api_secret" env:"VIDEO_API_SECRET"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"VIDEO_TOKEN_TTL" env-default:"1h"`
	Timeout   time.Duration `yaml:"timeout" env:"VIDEO_TIMEOUT" env-default:"10s"`
}

type IdentityProviderUser struct {
	ID    string `yaml:"id" env:"IDENTITY_STATIC_USER_ID"`
	Name  string `yaml:"name" env:"IDENTITY_STATIC_USER_NAME"`
	Email string `yaml:"email" env:"IDENTITY_STATIC_USER_EMAIL"`
}

type IdentityConfig struct {
	Provider          string               `yaml:"provider" env:"IDENTITY_PROVIDER" env-default:"static"`
	SessionCookie     string               `yaml:"session_cookie" env:"IDENTITY_SESSION_COOKIE" env-default:"__session"`
	PublicKeyPEM      string               `yaml:"public_key_pem" env:"IDENTITY_PUBLIC_KEY_PEM"`
	HMACSecret        string               `yaml:"hmac_secret" env:"IDENTITY_HMAC_SECRET"`
	Issuer            string               `yaml:"issuer" env:"IDENTITY_ISSUER"`
	AuthorizedParties []string             `yaml:"authorized_parties" env:"IDENTITY_AUTHORIZED_PARTIES"`
	SignInURL         string               `yaml:"sign_in_url" env:"IDENTITY_SIGN_IN_URL" env-default:"/sign-in"`
	StaticUser        IdentityProviderUser `yaml:"static_user"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"DATABASE_DSN"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"5"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"10"`
}

func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		panic("config path is empty")
	}

	return MustLoadPath(configPath)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := LoadPath(configPath)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

func LoadPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &PathError{Path: configPath}
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, &ReadError{Err: err}
	}

	cfg.setDefaults()

	return &cfg, nil
}

type PathError struct {
	Path string
}

func (e *PathError) Error() string {
	return "config file does not exist: " + e.Path
}

type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "cannot read config: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	if res == "" {
		res = "config/local.yaml"
	}

	return res
}

// Location resolves App.TimeZone, falling back to UTC for unknown zones.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) setDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if len(c.HTTP.AllowedOrigins) == 0 {
		c.HTTP.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	if c.App.BaseURL == "" {
		c.App.BaseURL = "http://localhost:8080"
	}
	if c.App.VisitTTL <= 0 {
		c.App.VisitTTL = 30 * time.Minute
	}
	if c.Video.Provider == "" {
		c.Video.Provider = VideoProviderLocal
	}
	if c.Video.BaseURL == "" {
		c.Video.BaseURL = "https://video.stream-io-api.com/api/v2"
	}
	if c.Video.TokenTTL <= 0 {
		c.Video.TokenTTL = time.Hour
	}
	if c.Video.Timeout <= 0 {
		c.Video.Timeout = 10 * time.Second
	}
	if c.Identity.Provider == "" {
		c.Identity.Provider = IdentityProviderStatic
	}
	if c.Identity.SessionCookie == "" {
		c.Identity.SessionCookie = "__session"
	}
	if c.Identity.SignInURL == "" {
		c.Identity.SignInURL = "/sign-in"
	}
	if c.Identity.StaticUser.ID == "" {
		c.Identity.StaticUser.ID = "local-user"
	}
	if c.Identity.StaticUser.Name == "" {
		c.Identity.StaticUser.Name = "Local User"
	}
	if c.RateLimit.RPS <= 0 {
		c.RateLimit.RPS = 5
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 10
	}
}
