// Package config holds the suite's configuration, loaded through viper from a
// config file, an optional env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	mu       sync.RWMutex
	instance *Config
)

// Config is the root configuration structure for the suite.
type Config struct {
	Logger   LoggerConfig      `mapstructure:"logger"`
	Browser  BrowserConfig     `mapstructure:"browser"`
	Site     SiteConfig        `mapstructure:"site"`
	Suite    SuiteConfig       `mapstructure:"suite"`
	Profiles map[string]string `mapstructure:"profiles"`
}

// ColorConfig defines the console color for each log level.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" json:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" json:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" json:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" json:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" json:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" json:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" json:"fatal" yaml:"fatal"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" json:"level" yaml:"level"`
	Format      string      `mapstructure:"format" json:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" json:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" json:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" json:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" json:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" json:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" json:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" json:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" json:"colors" yaml:"colors"`
}

// BrowserConfig holds settings for the browser the scenarios drive.
// Width and Height are the viewport a newly opened tab is maximised to.
type BrowserConfig struct {
	Headless          bool          `mapstructure:"headless"`
	ExecPath          string        `mapstructure:"exec_path"`
	Args              []string      `mapstructure:"args"`
	IgnoreTLSErrors   bool          `mapstructure:"ignore_tls_errors"`
	Width             int           `mapstructure:"width"`
	Height            int           `mapstructure:"height"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout"`
	DialogTimeout     time.Duration `mapstructure:"dialog_timeout"`
	NewTabTimeout     time.Duration `mapstructure:"new_tab_timeout"`
	Debug             bool          `mapstructure:"debug"`
}

// SiteConfig describes the site under test.
type SiteConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	LoginPath string `mapstructure:"login_path"`
}

// SuiteConfig holds settings for the godog run.
type SuiteConfig struct {
	Paths         []string      `mapstructure:"paths"`
	Format        string        `mapstructure:"format"`
	Tags          string        `mapstructure:"tags"`
	Retry         int           `mapstructure:"retry"`
	Concurrency   int           `mapstructure:"concurrency"`
	Strict        bool          `mapstructure:"strict"`
	StopOnFailure bool          `mapstructure:"stop_on_failure"`
	Randomize     int64         `mapstructure:"randomize"`
	StepTimeout   time.Duration `mapstructure:"step_timeout"`
	ReportDir     string        `mapstructure:"report_dir"`
}

// SetDefaults registers the default values so the suite can run with no config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "wdu-e2e")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.width", 1920)
	v.SetDefault("browser.height", 1080)
	v.SetDefault("browser.navigation_timeout", 30*time.Second)
	v.SetDefault("browser.dialog_timeout", 10*time.Second)
	v.SetDefault("browser.new_tab_timeout", 15*time.Second)

	v.SetDefault("site.base_url", "https://www.webdriveruniversity.com/")
	v.SetDefault("site.login_path", "Login-Portal/index.html")

	v.SetDefault("suite.paths", []string{"features"})
	v.SetDefault("suite.format", "pretty")
	v.SetDefault("suite.tags", "~@ignore")
	v.SetDefault("suite.retry", 0)
	v.SetDefault("suite.concurrency", 1)
	v.SetDefault("suite.strict", true)
	v.SetDefault("suite.step_timeout", 60*time.Second)
}

// BindEnv wires the environment variables the suite has always honoured on top
// of the WDU_ prefixed ones picked up by AutomaticEnv.
func BindEnv(v *viper.Viper) {
	_ = v.BindEnv("browser.width", "WDU_BROWSER_WIDTH", "BROWSER_WIDTH")
	_ = v.BindEnv("browser.height", "WDU_BROWSER_HEIGHT", "BROWSER_HEIGHT")
	_ = v.BindEnv("suite.retry", "WDU_SUITE_RETRY", "RETRY")
	_ = v.BindEnv("browser.headless", "WDU_BROWSER_HEADLESS", "HEADLESS")
}

// Validate checks the values the suite cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.Site.BaseURL == "" {
		errs = append(errs, errors.New("site.base_url is a required configuration field"))
	}
	if c.Browser.Width <= 0 || c.Browser.Height <= 0 {
		errs = append(errs, fmt.Errorf("browser.width and browser.height must be positive, got %dx%d", c.Browser.Width, c.Browser.Height))
	}
	if c.Suite.Retry < 0 {
		errs = append(errs, errors.New("suite.retry must not be negative"))
	}
	if c.Suite.Concurrency <= 0 {
		errs = append(errs, errors.New("suite.concurrency must be a positive integer"))
	}
	if len(c.Suite.Paths) == 0 {
		errs = append(errs, errors.New("suite.paths must name at least one feature path"))
	}
	return errors.Join(errs...)
}

// LoginURL joins the site base URL and the login portal path.
func (c *Config) LoginURL() string {
	base := c.Site.BaseURL
	if base != "" && base[len(base)-1] != '/' {
		base += "/"
	}
	return base + c.Site.LoginPath
}

// Load unmarshals v, validates the result and makes it the configuration Get
// returns, replacing any earlier one. When validation fails the decoded config
// is still returned so the caller can set up logging from it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return &cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	mu.Lock()
	instance = &cfg
	mu.Unlock()
	return &cfg, nil
}

// Get returns the loaded configuration instance.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("Configuration not initialized. Call config.Load() in the root command.")
	}
	return instance
}
