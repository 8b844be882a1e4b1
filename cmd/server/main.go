package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timberpunk/timberpunk/internal/api"
	"github.com/timberpunk/timberpunk/internal/auth"
	"github.com/timberpunk/timberpunk/internal/config"
	"github.com/timberpunk/timberpunk/internal/db"
	"github.com/timberpunk/timberpunk/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: server <serve|seed>")
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "seed":
		cmdSeed(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\nUsage: server <serve|seed>\n", os.Args[1])
		os.Exit(1)
	}
}

func cmdServe(args []string) {
	cfg := config.Load()

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	dbPath := fs.String("db", cfg.DBPath, "path to SQLite database file")
	addr := fs.String("addr", ":"+cfg.Port, "listen address")
	fs.Parse(args)

	database, err := db.Open(*dbPath)
	if err != nil {
		slog.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		slog.Error("migrating database", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Fall back to a secret persisted in the database when none is configured,
	// so issued tokens survive restarts.
	secret := cfg.JWTSecret
	if secret == "" {
		slog.Warn("JWT_SECRET not set, using database-persisted secret")
		secret, err = store.GetJWTSecret(ctx, database)
		if err != nil {
			slog.Error("loading jwt secret", "error", err)
			os.Exit(1)
		}
	}

	// Bootstrap admin, idempotent by email.
	if cfg.AdminPassword == "" {
		slog.Error("ADMIN_PASSWORD must be set")
		os.Exit(1)
	}
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		slog.Error("hashing admin password", "error", err)
		os.Exit(1)
	}
	admin, created, err := store.EnsureAdmin(ctx, database, cfg.AdminEmail, hash)
	if err != nil {
		slog.Error("ensuring admin account", "error", err)
		os.Exit(1)
	}
	if created {
		slog.Info("default admin created", "email", admin.Email)
	}

	router := api.NewRouter(database, secret, cfg.TokenTTL)
	handler := api.RequestIDMiddleware(
		api.CORSMiddleware(cfg.AllowedOrigins)(
			api.LoggingMiddleware(router)))

	server := &http.Server{
		Addr:    *addr,
		Handler: handler,
	}

	go func() {
		slog.Info("server listening", "addr", *addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// cmdSeed populates the catalog with the sample products, skipping any name
// that already exists.
func cmdSeed(args []string) {
	cfg := config.Load()

	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	dbPath := fs.String("db", cfg.DBPath, "path to SQLite database file")
	fs.Parse(args)

	database, err := db.Open(*dbPath)
	if err != nil {
		slog.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		slog.Error("migrating database", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	existing, err := store.ListProducts(ctx, database, "")
	if err != nil {
		slog.Error("listing products", "error", err)
		os.Exit(1)
	}
	have := make(map[string]bool, len(existing))
	for _, p := range existing {
		have[p.Name] = true
	}

	var count int
	for _, p := range sampleProducts {
		if have[p.Name] {
			continue
		}
		if _, err := store.CreateProduct(ctx, database, p); err != nil {
			slog.Error("seeding product", "name", p.Name, "error", err)
			os.Exit(1)
		}
		count++
	}

	slog.Info("seed complete", "created", count, "skipped", len(sampleProducts)-count)
}

var sampleProducts = []store.ProductParams{
	{
		Name:             "Rustic Oak Wall Art",
		Description:      "Beautiful handcrafted wall art made from reclaimed oak. Each piece is unique with natural grain patterns and can be customized with your choice of engraving.",
		ShortDescription: "Handcrafted oak wall art with custom engraving",
		Price:            89.99,
		Category:         "wall art",
		Options:          `{"sizes": ["12x12", "16x16", "20x20"], "finishes": ["Natural", "Dark Walnut", "Honey Oak"]}`,
	},
	{
		Name:             "Walnut Coaster Set",
		Description:      "Set of 4 premium walnut coasters with laser-engraved designs. Perfect for protecting your furniture while adding a touch of natural elegance to your home.",
		ShortDescription: "Set of 4 premium walnut coasters",
		Price:            34.99,
		Category:         "coasters",
		Options:          `{"designs": ["Geometric", "Nature", "Abstract", "Custom"]}`,
	},
	{
		Name:             "Personalized Family Sign",
		Description:      "Custom wooden family sign perfect for your entryway or living room. Made from solid maple with your family name beautifully engraved.",
		ShortDescription: "Custom family name sign in solid maple",
		Price:            124.99,
		Category:         "signs",
		Options:          `{"sizes": ["18x6", "24x8", "30x10"]}`,
	},
	{
		Name:             "Cutting Board - Maple",
		Description:      "Professional-grade maple cutting board with juice groove. Food-safe finish. Can be personalized with custom engraving on the back.",
		ShortDescription: "Professional maple cutting board",
		Price:            64.99,
		Category:         "gifts",
		Options:          `{"sizes": ["Small (10x14)", "Medium (12x18)", "Large (14x20)"]}`,
	},
	{
		Name:             "Wooden Phone Stand",
		Description:      "Sleek and modern phone stand made from cherry wood. Holds your device at the perfect angle for video calls or watching content. Compatible with all phone sizes.",
		ShortDescription: "Modern cherry wood phone stand",
		Price:            29.99,
		Category:         "gifts",
	},
}
