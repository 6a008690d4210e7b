package main

import (
	"fmt"
	"os"

	badgeapp "github.com/foodcheq/storefront/internal/application/badge"
	cartapp "github.com/foodcheq/storefront/internal/application/cart"
	"github.com/foodcheq/storefront/internal/application/catalog"
	"github.com/foodcheq/storefront/internal/application/checkout"
	currencyapp "github.com/foodcheq/storefront/internal/application/currency"
	"github.com/foodcheq/storefront/internal/application/logistics"
	"github.com/foodcheq/storefront/internal/application/orders"
	wishlistapp "github.com/foodcheq/storefront/internal/application/wishlist"
	"github.com/foodcheq/storefront/internal/infrastructure/api"
	"github.com/foodcheq/storefront/internal/infrastructure/auth"
	"github.com/foodcheq/storefront/internal/infrastructure/config"
	"github.com/foodcheq/storefront/internal/infrastructure/event"
	"github.com/foodcheq/storefront/internal/infrastructure/logger"
	"github.com/foodcheq/storefront/internal/infrastructure/storage"
	"github.com/foodcheq/storefront/internal/interfaces/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	store, err := storage.New(storage.Config{
		Backend: storage.Backend(cfg.Storage.Backend),
		Dir:     cfg.Storage.Dir,
		Path:    cfg.Storage.Path,
		Redis: storage.RedisConfig{
			Host:      cfg.Storage.Redis.Host,
			Port:      cfg.Storage.Redis.Port,
			Password:  cfg.Storage.Redis.Password,
			DB:        cfg.Storage.Redis.DB,
			KeyPrefix: cfg.Storage.Redis.KeyPrefix,
		},
	}, log)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	bus := event.NewInMemoryEventBus(log)
	session := auth.NewSession(store)
	client := api.New(cfg.API.BaseURL, cfg.API.ServerBase, cfg.API.Timeout, session, log)

	carts := cartapp.NewService(store, bus, log)
	wishlists := wishlistapp.NewService(store, client, session, bus, log)
	currency := currencyapp.NewService(store, client, bus, log, cfg.FX.CacheTTL, cfg.FX.FallbackRate)
	badges := badgeapp.NewSynchronizer(carts, wishlists, log)

	deps := &cli.Deps{
		Carts:     carts,
		Wishlists: wishlists,
		Currency:  currency,
		Badges:    badges,
		Catalog:   catalog.NewService(client, log),
		Checkout:  checkout.NewService(carts, client, session, store, log),
		Orders:    orders.NewService(client, log),
		Logistics: logistics.NewService(client, log),
		Session:   session,
		Store:     store,
		Bus:       bus,
		Logger:    log,
	}

	return cli.New(deps).Run(os.Args)
}
