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

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/budgettracker/internal/app"
	"github.com/MrJamesThe3rd/budgettracker/internal/config"
	apiHttp "github.com/MrJamesThe3rd/budgettracker/internal/http"
	"github.com/MrJamesThe3rd/budgettracker/internal/http/auth"
	exportHandler "github.com/MrJamesThe3rd/budgettracker/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/budgettracker/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/budgettracker/internal/http/matching"
	recordHandler "github.com/MrJamesThe3rd/budgettracker/internal/http/record"
	settingsHandler "github.com/MrJamesThe3rd/budgettracker/internal/http/settings"
)

func main() {
	issue := flag.String("issue-token", "", "print a bearer token for the given subject and exit")
	ttl := flag.Duration("token-ttl", 24*time.Hour, "lifetime of an issued token")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var authenticator *auth.Authenticator
	if cfg.Auth.JWTSecret != "" {
		authenticator = auth.New(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	}

	if *issue != "" {
		if authenticator == nil {
			slog.Error("AUTH_JWT_SECRET is not set")
			os.Exit(1)
		}

		token, err := authenticator.Issue(*issue, *ttl)
		if err != nil {
			slog.Error("failed to issue token", "error", err)
			os.Exit(1)
		}

		fmt.Println(token)

		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialise services", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	var (
		recordsH  = recordHandler.NewHandler(a.Records, a.Ledger, a.Lists, a.Money)
		settingsH = settingsHandler.NewHandler(a.Flags)
		importH   = importHandler.NewHandler(a.Importer)
		matchingH = matchingHandler.NewHandler(a.Rules)
		exportH   = exportHandler.NewHandler(a.Exporter)
	)

	router := apiHttp.New(apiHttp.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Timeout:     cfg.Server.Timeout,
		Auth:        authenticator,
	}, recordsH, settingsH, importH, matchingH, exportH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "port", srv.Addr, "store", cfg.Store.Backend, "auth", authenticator != nil)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
