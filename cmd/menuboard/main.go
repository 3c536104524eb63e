// Command menuboard is the restaurant menu display board server: an admin
// uploads daily and weekly menu images, wall displays subscribe over SSE
// and render the currently selected menu live.
package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/openmenuboard/menuboard/internal/api"
	"github.com/openmenuboard/menuboard/internal/auth"
	"github.com/openmenuboard/menuboard/internal/config"
	"github.com/openmenuboard/menuboard/internal/events"
	"github.com/openmenuboard/menuboard/internal/menu"
	"github.com/openmenuboard/menuboard/internal/store"
	"github.com/openmenuboard/menuboard/internal/zeroconf"
)

//go:embed web
var webFiles embed.FS

func main() {
	var (
		addr    = flag.String("addr", "", "HTTP listen address (default from config, :5000)")
		cfgPath = flag.String("config", "config.toml", "path to TOML config file")
		dataDir = flag.String("data-dir", "", "directory for uploaded images (default from config)")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	changed := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { changed[f.Name] = true })

	cfg, err := config.Load(*cfgPath, changed["config"])
	if err != nil {
		slog.Error("cannot load config", "path", *cfgPath, "err", err)
		os.Exit(1)
	}
	if changed["addr"] {
		cfg.Addr = *addr
	}
	if changed["data-dir"] {
		cfg.DataDir = *dataDir
	}
	if changed["debug"] {
		cfg.Debug = *debug
	}

	// Configure logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	// Graceful shutdown context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Image store
	menuDir := cfg.MenuDir()
	fsStore, err := store.NewFSStore(menuDir)
	if err != nil {
		slog.Error("cannot create menu directory", "path", menuDir, "err", err)
		os.Exit(1)
	}

	// Broadcaster and controller. The pinned selection is memory-only and
	// always starts automatic.
	bus := events.NewBroadcaster()
	ctrl := menu.New(fsStore, bus)

	// Auth service
	authSvc := auth.NewService(auth.Config{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
		Secret:       []byte(cfg.JWTSecret),
		TokenTTL:     cfg.TokenTTL,
	})

	// Watch the menu directory for out-of-band changes
	watcher := menu.NewWatcher(menuDir, ctrl)
	go func() {
		if err := watcher.Start(ctx); err != nil {
			slog.Warn("menu watcher failed", "err", err)
		}
	}()

	// Zeroconf mDNS registration
	if cfg.Zeroconf {
		port := 80
		if parts := strings.SplitN(cfg.Addr, ":", 2); len(parts) == 2 && parts[1] != "" {
			if p, err := strconv.Atoi(parts[1]); err == nil {
				port = p
			}
		}
		zc := zeroconf.New("menuboard", port)
		go func() {
			if err := zc.Start(ctx); err != nil {
				slog.Warn("zeroconf failed", "err", err)
			}
		}()
	}

	// HTTP server
	webFS, err := fs.Sub(webFiles, "web")
	if err != nil {
		slog.Error("failed to load web files", "err", err)
		os.Exit(1)
	}
	router := api.NewRouter(ctrl, authSvc, bus, menuDir, webFS)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // 0 = no timeout (needed for SSE)
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("menuboard listening", "addr", cfg.Addr, "menu_dir", menuDir)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	slog.Info("shutting down...")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		slog.Warn("server shutdown error", "err", err)
	}

	slog.Info("shutdown complete")
}
