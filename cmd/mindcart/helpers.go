package main

import (
	"log/slog"

	"github.com/mindcart/mindcart/internal/advisor"
	"github.com/mindcart/mindcart/internal/catalog"
	"github.com/mindcart/mindcart/internal/common"
	"github.com/mindcart/mindcart/internal/config"
	"github.com/mindcart/mindcart/internal/engine"
	"github.com/mindcart/mindcart/internal/session"
	"github.com/mindcart/mindcart/internal/storage"
)

// initCatalog loads the catalog from the configured path, falling back
// to the built-in catalog when none is configured.
func initCatalog(settings config.Settings) (*catalog.Catalog, error) {
	if settings.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(settings.CatalogPath)
}

// initLedger opens the session ledger. Without a configured path the
// ledger is in-memory and history is scoped to this process.
func initLedger(settings config.Settings) (*storage.SQLiteLedger, error) {
	return storage.NewSQLiteLedger(settings.LedgerPath)
}

// initAdvisor builds the advisory client, or returns nil when no API
// key is configured so every analysis uses the built-in rules.
func initAdvisor(settings config.Settings, logger *slog.Logger) engine.Advisor {
	if settings.AdvisorAPIKey == "" {
		common.LogInfo("no advisory API key configured, using built-in analysis rules",
			common.Fields{"provider": settings.AdvisorProvider})
		return nil
	}

	adv, err := advisor.New(advisor.Config{
		Provider: settings.AdvisorProvider,
		APIKey:   settings.AdvisorAPIKey,
		Model:    settings.AdvisorModel,
		Timeout:  settings.AdvisorTimeout,
	}, logger)
	if err != nil {
		common.LogError(err, "advisory client unavailable, using built-in analysis rules",
			common.Fields{"provider": settings.AdvisorProvider})
		return nil
	}
	return adv
}

// newSession wires a complete session from configuration.
func newSession(logger *slog.Logger) (*session.Session, func(), error) {
	settings := config.Load()

	cat, err := initCatalog(settings)
	if err != nil {
		return nil, nil, err
	}

	ledger, err := initLedger(settings)
	if err != nil {
		return nil, nil, err
	}

	eng := engine.New(cat, initAdvisor(settings, logger), logger)
	sess := session.New(cat, eng, ledger, logger)

	common.LogDebug("session wired", common.Fields{
		"catalog_items": len(cat.Items()),
		"ledger_path":   settings.LedgerPath,
	})

	cleanup := func() { _ = ledger.Close() }
	return sess, cleanup, nil
}
