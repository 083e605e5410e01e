package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andy/quotepad/internal/domain"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Where the editor snapshot lives
	Storage StorageConfig `yaml:"storage"`

	// PDF generation
	Export ExportConfig `yaml:"export"`

	// Invoice numbering and dates
	Invoice InvoiceConfig `yaml:"invoice"`

	// Issuing company printed in the header
	Company CompanyConfig `yaml:"company"`

	// Choice lists and fixed text of the document
	Template TemplateConfig `yaml:"template"`

	Web WebConfig `yaml:"web"`
	Log LogConfig `yaml:"log"`
}

type StorageConfig struct {
	Driver string      `yaml:"driver"` // sqlite, redis or memory
	Path   string      `yaml:"path"`   // SQLCipher database file
	Key    string      `yaml:"key"`    // Snapshot key
	Redis  RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ExportConfig struct {
	OutputDir     string        `yaml:"output_dir"`
	Delay         time.Duration `yaml:"delay"`         // Quiet period before a PDF is built
	Transliterate bool          `yaml:"transliterate"` // Simplified to traditional Chinese
	Conversion    string        `yaml:"conversion"`    // OpenCC conversion, e.g. s2t
	Font          FontConfig    `yaml:"font"`
	Margins       MarginConfig  `yaml:"margins"`
}

type FontConfig struct {
	Family  string `yaml:"family"`
	Regular string `yaml:"regular"` // TTF path
	Bold    string `yaml:"bold"`    // TTF path, optional
}

type MarginConfig struct {
	Left  float64 `yaml:"left"`
	Top   float64 `yaml:"top"`
	Right float64 `yaml:"right"`
}

type InvoiceConfig struct {
	NumberPrefix   string `yaml:"number_prefix"`    // Prefix of generated invoice numbers
	RenumberOnOpen bool   `yaml:"renumber_on_open"` // Fresh number each time the editor opens
	DueDays        int    `yaml:"due_days"`         // Days from invoice date to delivery
}

type CompanyConfig struct {
	Name      string  `yaml:"name"`
	Phone     string  `yaml:"phone"`
	Address   string  `yaml:"address"`
	Email     string  `yaml:"email"`
	Logo      string  `yaml:"logo"` // Image file path
	LogoWidth float64 `yaml:"logo_width"`
}

type TemplateConfig struct {
	Headings        []string `yaml:"headings"`
	Projects        []string `yaml:"projects"`
	OtherToken      string   `yaml:"other_token"`
	InvoiceFrom     []string `yaml:"invoice_from"`
	DiscountDefault string   `yaml:"discount_default"`
	TermsLabel      string   `yaml:"terms_label"`
	Terms           string   `yaml:"terms"`
}

type WebConfig struct {
	Listen string `yaml:"listen"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
	File   string `yaml:"file"`
}

func homeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return dir
}

// Dir returns ~/.config/quotepad
func Dir() string {
	return filepath.Join(homeDir(), ".config", "quotepad")
}

// DefaultConfigPath returns ~/.config/quotepad/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns the built-in defaults, which describe the shop the
// template was made for.
func DefaultConfig() *Config {
	p := domain.DefaultProfile()
	return &Config{
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   filepath.Join(Dir(), "quotepad.db"),
			Key:    "invoiceData",
			Redis:  RedisConfig{Addr: "localhost:6379"},
		},
		Export: ExportConfig{
			OutputDir:     filepath.Join(homeDir(), "Documents", "quotepad"),
			Delay:         500 * time.Millisecond,
			Transliterate: true,
			Conversion:    "s2t",
			Margins:       MarginConfig{Left: 10, Top: 12, Right: 10},
		},
		Invoice: InvoiceConfig{
			NumberPrefix:   "G",
			RenumberOnOpen: true,
			DueDays:        domain.DefaultDueDays,
		},
		Company: CompanyConfig{
			Name:      p.CompanyName,
			Phone:     p.CompanyPhone,
			Address:   p.CompanyAddress,
			Email:     p.CompanyEmail,
			LogoWidth: p.LogoWidth,
		},
		Template: TemplateConfig{
			Headings:        p.Headings,
			Projects:        p.Projects,
			OtherToken:      p.OtherToken,
			InvoiceFrom:     p.InvoiceFrom,
			DiscountDefault: p.DiscountDefault,
			TermsLabel:      p.TermsLabel,
			Terms:           p.Terms,
		},
		Web: WebConfig{Listen: "127.0.0.1:8080"},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(Dir(), "quotepad.log"),
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.expand()

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the database, log and output directories
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Export.OutputDir, filepath.Dir(c.Log.File)}
	if c.Storage.Driver == "sqlite" {
		dirs = append(dirs, filepath.Dir(c.Storage.Path))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// Profile returns the document identity and vocabulary described by the
// company and template sections.
func (c *Config) Profile() domain.Profile {
	p := domain.DefaultProfile()
	p.CompanyName = c.Company.Name
	p.CompanyPhone = c.Company.Phone
	p.CompanyAddress = c.Company.Address
	p.CompanyEmail = c.Company.Email
	p.Logo = c.Company.Logo
	if c.Company.LogoWidth > 0 {
		p.LogoWidth = c.Company.LogoWidth
	}
	if len(c.Template.Headings) > 0 {
		p.Headings = c.Template.Headings
	}
	if len(c.Template.Projects) > 0 {
		p.Projects = c.Template.Projects
	}
	p.OtherToken = c.Template.OtherToken
	p.InvoiceFrom = c.Template.InvoiceFrom
	if c.Template.DiscountDefault != "" {
		p.DiscountDefault = c.Template.DiscountDefault
	}
	p.TermsLabel = c.Template.TermsLabel
	p.Terms = strings.TrimRight(c.Template.Terms, "\n")
	if c.Invoice.DueDays > 0 {
		p.DueDays = c.Invoice.DueDays
	}
	return p
}

// expand resolves a leading ~ in path settings
func (c *Config) expand() {
	for _, p := range []*string{&c.Storage.Path, &c.Export.OutputDir, &c.Log.File, &c.Company.Logo, &c.Export.Font.Regular, &c.Export.Font.Bold} {
		*p = expandHome(*p)
	}
}

func expandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}
