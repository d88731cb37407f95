// Package app wires services from configuration for the binaries.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/budgettracker/internal/config"
	"github.com/MrJamesThe3rd/budgettracker/internal/database"
	"github.com/MrJamesThe3rd/budgettracker/internal/export"
	"github.com/MrJamesThe3rd/budgettracker/internal/importer"
	"github.com/MrJamesThe3rd/budgettracker/internal/importer/csvfile"
	"github.com/MrJamesThe3rd/budgettracker/internal/ledger"
	"github.com/MrJamesThe3rd/budgettracker/internal/listing"
	"github.com/MrJamesThe3rd/budgettracker/internal/matching"
	matchingMemory "github.com/MrJamesThe3rd/budgettracker/internal/matching/memory"
	matchingStore "github.com/MrJamesThe3rd/budgettracker/internal/matching/store"
	"github.com/MrJamesThe3rd/budgettracker/internal/money"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
	recordMemory "github.com/MrJamesThe3rd/budgettracker/internal/record/memory"
	recordStore "github.com/MrJamesThe3rd/budgettracker/internal/record/store"
	"github.com/MrJamesThe3rd/budgettracker/internal/section"
	"github.com/MrJamesThe3rd/budgettracker/internal/settings"
	settingsFile "github.com/MrJamesThe3rd/budgettracker/internal/settings/file"
	settingsStore "github.com/MrJamesThe3rd/budgettracker/internal/settings/store"
)

type App struct {
	Config   *config.Config
	Records  *record.Service
	Flags    *settings.Service
	Ledger   *ledger.Service
	Lists    *listing.Aggregator
	Rules    *matching.Service
	Importer *importer.Service
	Exporter *export.Service
	Money    *money.Formatter
	Order    record.SortOrder

	db *sql.DB
}

// New builds every service. Close releases the database when one was opened.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	f, err := money.NewFormatter(cfg.Money.Currency, cfg.Money.Language)
	if err != nil {
		return nil, err
	}

	order, err := record.ParseSortOrder(cfg.List.Sort)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Money: f, Order: order}

	if cfg.NeedsDatabase() {
		if a.db, err = database.New(ctx, cfg.ConnectionString()); err != nil {
			return nil, err
		}

		if cfg.DB.Migrate {
			if err := database.Migrate(a.db); err != nil {
				a.db.Close()
				return nil, err
			}
		}
	}

	var (
		recordRepo   record.Repository
		settingsRepo settings.Repository
		rulesRepo    matching.Repository
	)

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		recordRepo = recordStore.New(a.db)
		rulesRepo = matchingStore.New(a.db)
	default:
		slog.Warn("using in-memory record store; data is lost on exit")

		recordRepo = recordMemory.New()
		rulesRepo = matchingMemory.New()
	}

	switch cfg.Settings.Backend {
	case config.BackendPostgres:
		settingsRepo = settingsStore.New(a.db)
	default:
		settingsRepo = settingsFile.New(cfg.Settings.Path)
	}

	a.Records = record.NewService(recordRepo)
	a.Flags = settings.NewService(settingsRepo)
	a.Ledger = ledger.NewService(a.Records, a.Flags)
	a.Lists = listing.NewAggregator(a.Records, a.Ledger, a.Flags, ListOptions(cfg))
	a.Rules = matching.NewService(rulesRepo)
	a.Importer = importer.NewService(csvfile.NewParser(time.Local), a.Ledger, a.Rules)
	a.Exporter = export.NewService(a.Records, f)

	return a, nil
}

// ListOptions turns the list settings into a slot plan: today, then PastDays earlier days.
func ListOptions(cfg *config.Config) listing.Options {
	plan := []listing.Slot{{DaysAgo: 0, InitialLimit: cfg.List.TodayLimit}}
	for d := 1; d <= cfg.List.PastDays; d++ {
		plan = append(plan, listing.Slot{DaysAgo: d, InitialLimit: cfg.List.PastLimit})
	}

	overflow := section.OverflowNavigate
	if cfg.List.ExpandInPlace {
		overflow = section.OverflowExpandInPlace
	}

	return listing.Options{Plan: plan, ExpansionStep: cfg.List.ExpansionStep, Overflow: overflow}
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}

	if err := a.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}

	return nil
}
