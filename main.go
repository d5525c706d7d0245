package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expenseit/pkg/logger"
	"expenseit/pkg/ocr"
	"expenseit/pkg/scan"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	fs := ff.NewFlagSet("expenseit")
	var (
		addr        = fs.StringLong("addr", ":8081", "HTTP listen address")
		logLevel    = fs.StringLong("log-level", "info", "log level: trace, debug, info, warn, error")
		logFormat   = fs.StringLong("log-format", "console", "log format: console or json")
		jwtSecret   = fs.StringLong("jwt-secret", "", "HMAC secret for access tokens")
		adminUser   = fs.StringLong("admin-user", "admin", "login username")
		adminHash   = fs.StringLong("admin-password-hash", "", "bcrypt hash of the login password (see cmd/hash_password)")
		tokenTTL    = fs.DurationLong("token-ttl", 24*time.Hour, "access token lifetime")
		prefsPath   = fs.StringLong("preferences", "", "JSON preferences file, reloaded on change")
		concurrency = fs.IntLong("ocr-concurrency", 2, "maximum concurrent recognitions")
		maxUpload   = fs.IntLong("max-upload-mb", 10, "maximum receipt upload size in MB")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("EXPENSEIT")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		if errors.Is(err, ff.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Options{Level: *logLevel, Format: *logFormat, Component: "expenseit"})
	log := logger.With("main")

	secret := *jwtSecret
	if secret == "" {
		secret = "dev-insecure-secret-change"
		log.Warn().Msg("jwt secret not set, using development default")
	}
	if *adminHash == "" {
		log.Warn().Msg("no admin password hash configured, /login will reject every request")
	}

	prefs, err := loadPreferences(*prefsPath, logger.With("preferences"))
	if err != nil {
		log.Fatal().Err(err).Str("path", *prefsPath).Msg("load preferences")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *prefsPath != "" {
		go func() {
			if err := prefs.Watch(ctx); err != nil {
				log.Error().Err(err).Msg("preferences watcher stopped")
			}
		}()
	}

	srv := &server{
		scanner:   scan.New(ocr.NewTesseract(logger.With("tesseract")), *concurrency, logger.With("scan")),
		prefs:     prefs,
		auth:      newAuthenticator(*adminUser, []byte(*adminHash), []byte(secret), *tokenTTL),
		log:       logger.With("http"),
		maxUpload: int64(*maxUpload) << 20,
	}

	gin.SetMode(gin.ReleaseMode)
	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           newRouter(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", *addr).Msg("server started")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
