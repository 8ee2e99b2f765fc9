package main

import (
	"context"
	"encoding/hex"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"cocktail-cellar-go/internal/app"
	"cocktail-cellar-go/internal/handlers"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	// Local dev convenience; missing .env is fine.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg := app.Config{
		Addr:    getenv("ADDR", ":8080"),
		BaseURL: getenv("BASE_URL", "http://localhost:8080"),

		DataDir:     getenv("DATA_DIR", "/data"),
		DBPath:      getenv("DB_PATH", "/data/cocktailcellar.db"),
		UploadDir:   getenv("UPLOAD_DIR", "/data/uploads"),
		TemplateDir: getenv("TEMPLATE_DIR", "views/templates"),

		BootstrapAdminEmail:    os.Getenv("BOOTSTRAP_ADMIN_EMAIL"),
		BootstrapAdminPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
		BootstrapAdminName:     os.Getenv("BOOTSTRAP_ADMIN_NAME"),
	}

	if ps := strings.TrimSpace(os.Getenv("PAGE_SIZE")); ps != "" {
		if n, err := strconv.ParseInt(ps, 10, 64); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
	if hk := strings.TrimSpace(os.Getenv("SESSION_HASH_KEY_HEX")); hk != "" {
		if b, err := hex.DecodeString(hk); err == nil {
			cfg.SessionHashKey = b
		}
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("app init failed", "err", err)
		os.Exit(1)
	}
	defer a.Close()

	// Build router here (avoids app<->handlers import cycle)
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	r.Use(a.MiddlewareLoadCurrentUser)

	h := &handlers.Server{App: a}

	// Public
	r.Get("/health", h.Health)
	r.Get("/", h.IndexGet)
	r.Get("/cocktails/search", h.SearchGet)
	r.Get("/login", h.LoginGet)
	r.Post("/login", h.LoginPost)
	r.Post("/logout", h.LogoutPost)
	r.Get("/register/", h.RegisterGet)
	r.Post("/register/", h.RegisterPost)
	r.Get("/cocktails/", h.CocktailListGet)
	r.Get("/cocktails/{id}/", h.CocktailDetailGet)
	r.Get("/cocktails/{id}/export-pdf/", h.ExportPDFGet)
	r.Get("/public-lists/", h.PublicListsGet)

	// Static + uploads
	fileServer(r, "/static", http.Dir("static"))
	fileServer(r, "/uploads", http.Dir(a.Config().UploadDir))

	// Authenticated
	r.Group(func(ar chi.Router) {
		ar.Use(a.RequireAuth)

		ar.Get("/profile/", h.ProfileGet)
		ar.Post("/profile/", h.ProfilePost)

		ar.Get("/favorites/", h.FavoritesGet)
		ar.Post("/favorites/add/{id}/", h.FavoriteAddPost)
		ar.Post("/favorites/remove/{id}/", h.FavoriteRemovePost)
	})

	// Bartender (admin allowed)
	r.Group(func(br chi.Router) {
		br.Use(a.RequireAnyRole(app.RoleBartender, app.RoleAdmin))

		br.Get("/bartender/lists/", h.BartenderListsGet)
		br.Get("/bartender/lists/create/", h.ListCreateGet)
		br.Post("/bartender/lists/create/", h.ListCreatePost)
		br.Get("/bartender/lists/{id}/add-cocktail/", h.ListAddCocktailGet)
		br.Post("/bartender/lists/{id}/add-cocktail/", h.ListAddCocktailPost)
		br.Get("/bartender/lists/{id}/remove/{cocktail_id}/", h.ListRemoveCocktailGet)
		br.Post("/bartender/lists/{id}/remove/{cocktail_id}/", h.ListRemoveCocktailPost)
		br.Post("/bartender/lists/{id}/toggle-visibility/", h.ListToggleVisibilityPost)
		br.Post("/bartender/lists/{id}/delete/", h.ListDeletePost)

		br.Get("/cocktails/create/", h.CocktailCreateGet)
		br.Post("/cocktails/create/", h.CocktailCreatePost)
		br.Get("/cocktails/customize/{id}/", h.CocktailCustomizeGet)
		br.Post("/cocktails/customize/{id}/", h.CocktailCustomizePost)
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.Addr, "base_url", cfg.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info("shutdown complete")
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func fileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("fileServer does not permit URL params")
	}
	fs := http.StripPrefix(path, http.FileServer(root))
	if path != "/" && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	r.Get(path+"/*", func(w http.ResponseWriter, r *http.Request) {
		fs.ServeHTTP(w, r)
	})
}
