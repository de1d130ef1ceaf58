package app

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/manabuy/internal/cli"
	"github.com/vladislavdragonenkov/manabuy/internal/domain"
	"github.com/vladislavdragonenkov/manabuy/internal/manapool"
	"github.com/vladislavdragonenkov/manabuy/internal/resolver"
	"github.com/vladislavdragonenkov/manabuy/internal/service/checkout"
	"github.com/vladislavdragonenkov/manabuy/internal/storage/memory"
	"github.com/vladislavdragonenkov/manabuy/internal/storage/postgres"
)

// Dependencies — собранные зависимости одной попытки покупки.
type Dependencies struct {
	Client  *manapool.Client
	Journal domain.PurchaseJournal
	Prompt  domain.Prompt
	Present domain.Presenter
	Logger  *log.Entry

	closeStore func() error
}

// Close освобождает ресурсы зависимостей (подключение к БД журнала).
func (d *Dependencies) Close() {
	if d.closeStore == nil {
		return
	}
	if err := d.closeStore(); err != nil {
		d.Logger.WithError(err).Warn("failed to close journal store")
	}
}

// NewDependencies строит клиента API и журнал покупок. Журнал пишется
// в PostgreSQL, когда настроен MANABUY_DB_DSN, иначе остаётся в памяти.
func NewDependencies(ctx context.Context, cfg Config, email string, logger *log.Entry) (*Dependencies, error) {
	client, err := manapool.NewClient(manapool.Config{
		BaseURL: cfg.BaseURL,
		Email:   email,
		Token:   cfg.Token,
		Timeout: cfg.HTTPTimeout,
	}, logger.WithField("component", "manapool"))
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Client:  client,
		Journal: memory.NewPurchaseJournal(),
		Prompt:  cli.NewPrompt(os.Stdin, os.Stdout),
		Present: cli.NewPresenter(os.Stdout),
		Logger:  logger,
	}

	if cfg.DBDSN != "" {
		store, err := postgres.Open(ctx, cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("open purchase journal store: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("prepare purchase journal store: %w", err)
		}
		deps.Journal = postgres.NewPurchaseJournal(store)
		deps.closeStore = store.Close
		logger.Info("purchase journal backed by postgres")
	}

	return deps, nil
}

// Run проводит одну попытку покупки: резолв запроса, quote и два
// чекпоинта. Резолв идёт строго до создания клиента: некорректный
// ввод обязан падать раньше любого сетевого вызова.
func Run(ctx context.Context, cfg Config, in resolver.Input, opts checkout.Options) (checkout.Outcome, error) {
	logger := log.WithField("component", "app")

	profile, err := LoadProfile(cfg.ProfilePath)
	if err != nil {
		return checkout.OutcomeDeclined, err
	}

	items, issues, err := resolver.Resolve(in, profile.PreferenceSet())
	for _, issue := range issues {
		logger.WithField("line", issue.Line).Warnf("skipping decklist line: %s", issue)
	}
	if err != nil {
		return checkout.OutcomeDeclined, err
	}
	logger.WithFields(log.Fields{
		"line_items": len(items),
		"cards":      domain.TotalQuantity(items),
	}).Info("buyer request resolved")

	email := cfg.Email
	if email == "" {
		email = profile.Email
	}

	deps, err := NewDependencies(ctx, cfg, email, logger)
	if err != nil {
		return checkout.OutcomeDeclined, err
	}
	defer deps.Close()

	engine := checkout.NewEngine(checkout.Deps{
		Optimizer: deps.Client,
		Catalog:   deps.Client,
		Market:    deps.Client,
		Prompt:    deps.Prompt,
		Presenter: deps.Present,
		Journal:   deps.Journal,
		Retry:     checkout.DefaultRetryConfig(),
		Shipping:  profile.ShippingAddress,
		Billing:   profile.BillingAddress,
		Logger:    logger.WithField("component", "checkout"),
	})

	return engine.Run(ctx, items, opts)
}
