package main

import (
	"context"
	"errors"
	"html/template"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	emailPkg "ticclub/internal/adapters/email"
	"ticclub/internal/adapters/forward"
	web "ticclub/internal/adapters/http"
	"ticclub/internal/adapters/storage"
	regStore "ticclub/internal/adapters/storage/registration"
	"ticclub/internal/adapters/telemetry"
	"ticclub/internal/application/orchestrators"
	"ticclub/internal/config"
	"ticclub/internal/domain/admin"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	telemetry.SetupLogger(os.Stdout, cfg.IsProduction(), cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer closeStore()

	if cfg.ShouldSeedSample() {
		seedDeps := orchestrators.SeedSampleDeps{Store: store, Location: cfg.Location()}
		if err := orchestrators.ExecuteSeedSample(ctx, seedDeps); err != nil {
			log.Fatalf("failed to seed sample data: %v", err)
		}
		log.Println("Sample registrations loaded")
	}

	creds, err := admin.NewCredentials(cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("failed to prepare admin credentials: %v", err)
	}

	var dispatcher orchestrators.RegistrationDispatcher = forward.NoopDispatcher{}
	if cfg.ForwardURL != "" {
		dispatcher = forward.NewHTTPDispatcher(cfg.ForwardURL, nil, cfg.ForwardTimeout)
		log.Printf("Forwarding registrations to %s", cfg.ForwardURL)
	} else {
		log.Println("Forwarding disabled (set TIC_FORWARD_URL to enable)")
	}

	// Configure email sender
	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.ResendFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		log.Println("Email sender configured (noop - set TIC_RESEND_KEY for real delivery)")
	}
	notifier := &orchestrators.RegistrationNotifier{
		Sender:   sender,
		To:       cfg.NotifyTo,
		Location: cfg.Location(),
	}

	var intro template.HTML
	if cfg.FormIntro != "" {
		html, err := orchestrators.RenderMarkdown(cfg.FormIntro)
		if err != nil {
			log.Fatalf("failed to render TIC_FORM_INTRO: %v", err)
		}
		// goldmark drops raw HTML by default, so the output is safe to embed.
		intro = template.HTML(html)
	}

	csrfKey := cfg.CSRFKeyBytes()
	if csrfKey == nil {
		csrfKey = randomKey()
		log.Println("WARNING: using random CSRF key (forms won't survive restart). Set TIC_CSRF_KEY for production.")
	}

	handler, err := web.NewMux(web.Deps{
		Store:         store,
		Credentials:   creds,
		Dispatcher:    dispatcher,
		Notifier:      notifier,
		Location:      cfg.Location(),
		Catalog:       cfg.PositionCatalog(),
		FormIntro:     intro,
		SecureCookies: cfg.IsProduction(),
	}, web.Options{
		CSRFKey:        csrfKey,
		TrustedOrigins: cfg.TrustedOrigins,
		RateLimit:      cfg.RateLimit,
		SlowRequest:    cfg.SlowRequest,
	})
	if err != nil {
		log.Fatalf("failed to build handler: %v", err)
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown_failed", "error", err)
		}
	}()

	log.Printf("TIC Club registration %s starting on %s (env=%s)", version, cfg.Addr, cfg.Env)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}

// openStore returns the SQLite store when TIC_DB_PATH is set, otherwise the in-memory store.
func openStore(cfg config.Config) (regStore.Store, func(), error) {
	if cfg.DBPath == "" {
		log.Println("Using in-memory registration store (data is lost on restart)")
		return regStore.NewMemoryStore(), func() {}, nil
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Database initialized at %s", cfg.DBPath)
	timedDB := storage.NewTimedDB(db, cfg.SlowQuery)
	return regStore.NewSQLiteStore(timedDB), func() { _ = timedDB.Close() }, nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", telemetry.Handler())
	log.Printf("Metrics listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics_server_failed", "error", err)
	}
}
