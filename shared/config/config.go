package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Http             Http          `yaml:"http"`
	Log              Log           `yaml:"log"`
	JwtTTL           time.Duration `yaml:"jwt_ttl"`
	MaxTitleLength   int           `yaml:"max_title_length"`   // in runes, after trimming
	MaxMessageLength int           `yaml:"max_message_length"` // in runes, after trimming
	SeedFile         string        `yaml:"seed_file"`          // relative to config folder; empty means start with no discussions
	AllowedOrigins   []string      `yaml:"allowed_origins"`
	SecureCookies    bool          `yaml:"secure_cookies"`
	RateLimits       RateLimits    `yaml:"rate_limits"`
}

type Http struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type RateLimits struct {
	CreatePerMinute float64 `yaml:"create_per_minute"` // new discussions per user
	ReplyPerSecond  float64 `yaml:"reply_per_second"`  // replies per user
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
}

const (
	defaultPort             = 8080
	defaultReadTimeout      = 5 * time.Second
	defaultWriteTimeout     = 10 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultJwtTTL           = 24 * time.Hour
	defaultMaxTitleLength   = 120
	defaultMaxMessageLength = 10_000
	defaultCreatePerMinute  = 1
	defaultReplyPerSecond   = 1
)

// New builds a config from already parsed parts. Defaults are applied.
func New(public Public, private Private) *Config {
	public.applyDefaults()
	return &Config{Public: public, private: private}
}

func (s *Config) JwtKey() string {
	return s.private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

// MaxRequestBody caps a write request body. A rune costs at most 12 bytes once
// JSON-escaped as a surrogate pair; the rest is room for field names.
func (s *Config) MaxRequestBody() int64 {
	return int64(s.Public.MaxTitleLength+s.Public.MaxMessageLength)*12 + 4096
}

func (p *Public) applyDefaults() {
	if p.Http.Port == 0 {
		p.Http.Port = defaultPort
	}
	if p.Http.ReadTimeout == 0 {
		p.Http.ReadTimeout = defaultReadTimeout
	}
	if p.Http.WriteTimeout == 0 {
		p.Http.WriteTimeout = defaultWriteTimeout
	}
	if p.Http.ShutdownTimeout == 0 {
		p.Http.ShutdownTimeout = defaultShutdownTimeout
	}
	if p.Log.Level == "" {
		p.Log.Level = "info"
	}
	if p.JwtTTL == 0 {
		p.JwtTTL = defaultJwtTTL
	}
	if p.MaxTitleLength == 0 {
		p.MaxTitleLength = defaultMaxTitleLength
	}
	if p.MaxMessageLength == 0 {
		p.MaxMessageLength = defaultMaxMessageLength
	}
	if p.RateLimits.CreatePerMinute == 0 {
		p.RateLimits.CreatePerMinute = defaultCreatePerMinute
	}
	if p.RateLimits.ReplyPerSecond == 0 {
		p.RateLimits.ReplyPerSecond = defaultReplyPerSecond
	}
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.UnmarshalStrict(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(filepath.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(filepath.Join(configFolder, "private.yaml"), &private)
	if private.JwtKey == "" {
		panic("jwt_key is required in private.yaml")
	}

	if public.SeedFile != "" && !filepath.IsAbs(public.SeedFile) {
		public.SeedFile = filepath.Join(configFolder, public.SeedFile)
	}

	return New(public, private)
}
