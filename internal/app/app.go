package app

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cocktail-cellar-go/internal/db"
)

type Config struct {
	Addr    string
	BaseURL string

	DataDir     string
	DBPath      string
	UploadDir   string
	TemplateDir string

	// Classic-catalog page size; historically anywhere between 4 and 8.
	PageSize int64

	SessionHashKey []byte

	BootstrapAdminEmail    string
	BootstrapAdminPassword string
	BootstrapAdminName     string
}

type App struct {
	cfg       Config
	store     *db.Store
	log       *slog.Logger
	templates *template.Template

	// onUserCreated provisions the caller-owned collaborator objects of a
	// fresh account (the profile row). Registration itself never creates
	// the profile inline.
	onUserCreated func(userID int64) error
}

func New(cfg Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "/data"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "cocktailcellar.db")
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = filepath.Join(cfg.DataDir, "uploads")
	}
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = filepath.Join("views", "templates")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 8
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir data dir: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir upload dir: %w", err)
	}

	if len(cfg.SessionHashKey) == 0 {
		if hk := strings.TrimSpace(os.Getenv("SESSION_HASH_KEY_HEX")); hk != "" {
			b, err := hex.DecodeString(hk)
			if err != nil {
				return nil, fmt.Errorf("SESSION_HASH_KEY_HEX invalid hex: %w", err)
			}
			cfg.SessionHashKey = b
		}
	}
	if len(cfg.SessionHashKey) < 32 {
		cfg.SessionHashKey = make([]byte, 32)
		_, _ = rand.Read(cfg.SessionHashKey)
		logger.Warn("SESSION_HASH_KEY_HEX not set (or too short) - generating ephemeral session key; sessions will reset on restart")
	}

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Migrate(store.DB); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	a := &App{
		cfg:   cfg,
		store: store,
		log:   logger,
	}
	a.onUserCreated = func(userID int64) error {
		_, err := store.Q.CreateProfile(userID)
		return err
	}

	funcs := template.FuncMap{
		"fmtTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("2006-01-02 15:04")
		},
		"hasPrefix": strings.HasPrefix,
		"add":       func(a, b int64) int64 { return a + b },
		"sub":       func(a, b int64) int64 { return a - b },
	}

	tpl := template.New("all").Funcs(funcs)
	tpl, err = tpl.ParseGlob(filepath.Join(cfg.TemplateDir, "*.html"))
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	a.templates = tpl

	// Bootstrap admin if none exists (only once).
	hasAdmin, err := store.Q.HasAnyAdmin()
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if !hasAdmin {
		email := NormalizeEmail(cfg.BootstrapAdminEmail)
		pass := strings.TrimSpace(cfg.BootstrapAdminPassword)
		name := strings.TrimSpace(cfg.BootstrapAdminName)

		if email != "" && pass != "" && name != "" {
			hash, err := HashPassword(pass)
			if err != nil {
				_ = store.Close()
				return nil, err
			}
			id, err := store.Q.CreateUser(db.CreateUserParams{
				Username:     name,
				Email:        email,
				PasswordHash: hash,
				Role:         RoleAdmin,
				IsActive:     true,
			})
			if err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("bootstrap admin: %w", err)
			}
			if err := a.FireUserCreated(id); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("bootstrap admin profile: %w", err)
			}
			a.log.Info("bootstrapped admin user", "email", email)
		}
	}

	// Seed the classic catalog ONLY if empty (never touches users).
	empty, err := isCatalogEmpty(store.DB)
	if err != nil {
		a.log.Warn("catalog empty check failed", "err", err)
	} else if empty {
		if err := db.SeedCatalog(store.DB); err != nil {
			a.log.Warn("catalog seed failed", "err", err)
		} else {
			a.log.Info("classic catalog seeded")
		}
	}

	return a, nil
}

func isCatalogEmpty(dbh *sql.DB) (bool, error) {
	var cc int
	if err := dbh.QueryRow(`SELECT COUNT(1) FROM cocktails WHERE is_classic=1;`).Scan(&cc); err != nil {
		return false, err
	}
	return cc == 0, nil
}

func (a *App) Close() error {
	if a == nil {
		return nil
	}
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// FireUserCreated runs the account-created hook (profile provisioning).
func (a *App) FireUserCreated(userID int64) error {
	if a.onUserCreated == nil {
		return nil
	}
	return a.onUserCreated(userID)
}

func (a *App) Store() *db.Store              { return a.store }
func (a *App) Templates() *template.Template { return a.templates }
func (a *App) Config() Config                { return a.cfg }
func (a *App) Log() *slog.Logger             { return a.log }
