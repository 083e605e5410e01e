package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/andy/quotepad/internal/config"
	"github.com/andy/quotepad/internal/crypto"
	"github.com/andy/quotepad/internal/db"
	"github.com/andy/quotepad/internal/domain"
	"github.com/andy/quotepad/internal/export"
	"github.com/andy/quotepad/internal/logging"
	"github.com/andy/quotepad/internal/pdf"
	"github.com/andy/quotepad/internal/repository"
	"github.com/andy/quotepad/internal/service"
	"github.com/andy/quotepad/internal/translit"
	"github.com/redis/go-redis/v9"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config  *config.Config
	Profile domain.Profile
	Store   repository.InvoiceStore

	Pipeline *export.Pipeline
	Trigger  *export.Trigger
	Editor   service.EditorService

	logs io.Closer
}

// New loads the default config and builds the application
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logs, err := logging.Setup(cfg.Log)
	if err != nil {
		return nil, err
	}

	store, err := OpenStore(ctx, cfg.Storage, crypto.NewKeyring())
	if err != nil {
		logs.Close()
		return nil, err
	}

	printer, err := pdf.New(
		pdf.Font{Family: cfg.Export.Font.Family, Regular: cfg.Export.Font.Regular, Bold: cfg.Export.Font.Bold},
		pdf.Margins{Left: cfg.Export.Margins.Left, Top: cfg.Export.Margins.Top, Right: cfg.Export.Margins.Right},
	)
	if err != nil {
		store.Close()
		logs.Close()
		return nil, err
	}

	profile := cfg.Profile()
	pipeline := &export.Pipeline{
		Printer:  printer,
		Translit: newTransliterator(cfg.Export),
		Profile:  profile,
	}
	trigger := export.NewTrigger(cfg.Export.Delay, pipeline.Build)
	editor := service.NewEditorService(store, trigger, service.Options{
		NumberPrefix: cfg.Invoice.NumberPrefix,
		Renumber:     cfg.Invoice.RenumberOnOpen,
	})

	slog.Info("app started", "storage", cfg.Storage.Driver)

	return &App{
		Config:   cfg,
		Profile:  profile,
		Store:    store,
		Pipeline: pipeline,
		Trigger:  trigger,
		Editor:   editor,
		logs:     logs,
	}, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	a.Trigger.Stop()
	err := a.Store.Close()
	if a.logs != nil {
		a.logs.Close()
	}
	return err
}

// LoadInvoice reads the saved invoice for one-shot commands, falling back to
// the template. Unlike the editor it never renumbers.
func (a *App) LoadInvoice(ctx context.Context) (domain.Invoice, error) {
	inv, err := a.Store.Load(ctx)
	if errors.Is(err, repository.ErrNoSnapshot) {
		return domain.DefaultInvoice(), nil
	}
	if err != nil {
		return domain.Invoice{}, err
	}
	return *inv, nil
}

// OpenStore opens the snapshot store named by cfg.Driver. The sqlite driver
// needs the database key from the keyring, prompting for one on first run.
func OpenStore(ctx context.Context, cfg config.StorageConfig, keys crypto.Keyring) (repository.InvoiceStore, error) {
	switch cfg.Driver {
	case "memory":
		return repository.NewMemoryStore(), nil
	case "redis":
		addr := cfg.Redis.Addr
		if env := os.Getenv("QUOTEPAD_REDIS_ADDR"); env != "" {
			addr = env
		}
		return repository.NewRedisStore(ctx, &redis.Options{
			Addr:     addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Key)
	case "sqlite", "":
		password, err := keys.GetKey()
		if err != nil {
			if !errors.Is(err, crypto.ErrKeyNotFound) {
				return nil, fmt.Errorf("failed to read encryption key: %w", err)
			}
			fmt.Println("Setting up database encryption for the first time...")
			password, err = promptForPassword()
			if err != nil {
				return nil, fmt.Errorf("failed to set password: %w", err)
			}
			if err := keys.SetKey(password); err != nil {
				return nil, fmt.Errorf("failed to store encryption key: %w", err)
			}
		}
		database, err := db.Open(cfg.Path, password)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return repository.NewSQLiteStore(database, cfg.Key), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func newTransliterator(cfg config.ExportConfig) translit.Transliterator {
	if !cfg.Transliterate {
		return translit.Identity{}
	}
	conv := cfg.Conversion
	if conv == "" {
		conv = "s2t"
	}
	t, err := translit.NewOpenCC(conv)
	if err != nil {
		slog.Warn("transliteration disabled", "err", err)
		return translit.Identity{}
	}
	return t
}

// promptForPassword prompts user for a new database password (first run)
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your saved invoices will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}
