package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/subtxtpress/brandkit/internal/brand"
	"github.com/subtxtpress/brandkit/internal/logging"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "brandkit.yaml"

// Config holds all application configuration.
type Config struct {
	Output  OutputConfig   `yaml:"output"`
	Fonts   FontsConfig    `yaml:"fonts"`
	Brand   BrandConfig    `yaml:"brand"`
	Logging logging.Config `yaml:"logging"`
	Watch   WatchConfig    `yaml:"watch"`
}

// OutputConfig holds artifact locations.
type OutputConfig struct {
	IconsDir    string `yaml:"icons_dir"`
	PreviewPath string `yaml:"preview_path"`
}

// FontsConfig names the preview's font files. Relative names are resolved
// against Dir.
type FontsConfig struct {
	Dir      string `yaml:"dir"`
	Headline string `yaml:"headline"`
	Body     string `yaml:"body"`
	Mono     string `yaml:"mono"`
}

// BrandConfig overrides palette colors (by slot name, as #rrggbb) and copy.
type BrandConfig struct {
	Colors map[string]string `yaml:"colors"`
	Copy   CopyConfig        `yaml:"copy"`
}

// CopyConfig overrides the preview text.
type CopyConfig struct {
	Eyebrow  string `yaml:"eyebrow"`
	Headline string `yaml:"headline"`
	Subhead  string `yaml:"subhead"`
	Site     string `yaml:"site"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce    time.Duration `yaml:"debounce"`
	MinInterval time.Duration `yaml:"min_interval"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			IconsDir:    "icons",
			PreviewPath: filepath.Join("img", "preview.png"),
		},
		Fonts: FontsConfig{
			Headline: brand.DefaultHeadlineFont,
			Body:     brand.DefaultBodyFont,
			Mono:     brand.DefaultMonoFont,
		},
		Logging: logging.DefaultConfig(),
		Watch: WatchConfig{
			Debounce:    500 * time.Millisecond,
			MinInterval: 2 * time.Second,
		},
	}
}

// Load reads config from a YAML file (if it exists) and overrides with
// environment variables. Environment variables take precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is operator-supplied
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("BK_ICONS_DIR"); v != "" {
		c.Output.IconsDir = v
	}
	if v := os.Getenv("BK_PREVIEW_PATH"); v != "" {
		c.Output.PreviewPath = v
	}
	if v := os.Getenv("BK_FONT_DIR"); v != "" {
		c.Fonts.Dir = v
	}
	if v := os.Getenv("BK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("BK_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("BK_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Output.IconsDir) == "" {
		return fmt.Errorf("output icons_dir is required")
	}
	if strings.TrimSpace(c.Output.PreviewPath) == "" {
		return fmt.Errorf("output preview_path is required")
	}
	if ext := strings.ToLower(filepath.Ext(c.Output.PreviewPath)); ext != ".png" {
		return fmt.Errorf("preview_path must end in .png, got %q", c.Output.PreviewPath)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	if !logging.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}
	if c.Watch.Debounce < 0 || c.Watch.MinInterval < 0 {
		return fmt.Errorf("watch durations must not be negative")
	}
	if _, err := brand.New(c.BrandOverrides()); err != nil {
		return err
	}
	return nil
}

// FontPath resolves a configured font name against Fonts.Dir.
func (c *Config) FontPath(name string) string {
	if name == "" || filepath.IsAbs(name) || c.Fonts.Dir == "" {
		return name
	}
	return filepath.Join(c.Fonts.Dir, name)
}

// FontPaths returns the resolved headline, body and mono font paths.
func (c *Config) FontPaths() []string {
	return []string{c.FontPath(c.Fonts.Headline), c.FontPath(c.Fonts.Body), c.FontPath(c.Fonts.Mono)}
}

// BrandOverrides converts the brand and font sections for brand.New.
func (c *Config) BrandOverrides() brand.Overrides {
	return brand.Overrides{
		Colors:       c.Brand.Colors,
		HeadlineFont: c.FontPath(c.Fonts.Headline),
		BodyFont:     c.FontPath(c.Fonts.Body),
		MonoFont:     c.FontPath(c.Fonts.Mono),
		Copy: brand.Copy{
			Eyebrow:  c.Brand.Copy.Eyebrow,
			Headline: c.Brand.Copy.Headline,
			Subhead:  c.Brand.Copy.Subhead,
			Site:     c.Brand.Copy.Site,
		},
	}
}

// BuildBrand builds the immutable brand value from the config.
func (c *Config) BuildBrand() (brand.Brand, error) {
	return brand.New(c.BrandOverrides())
}
