// Package cli is the terminal surface of the storefront client. Each command
// maps onto one application service operation; the CLI itself holds no state
// beyond the shared storage backend.
package cli

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	badgeapp "github.com/foodcheq/storefront/internal/application/badge"
	cartapp "github.com/foodcheq/storefront/internal/application/cart"
	"github.com/foodcheq/storefront/internal/application/catalog"
	"github.com/foodcheq/storefront/internal/application/checkout"
	currencyapp "github.com/foodcheq/storefront/internal/application/currency"
	"github.com/foodcheq/storefront/internal/application/logistics"
	"github.com/foodcheq/storefront/internal/application/orders"
	wishlistapp "github.com/foodcheq/storefront/internal/application/wishlist"
	"github.com/foodcheq/storefront/internal/domain/shared"
	"github.com/foodcheq/storefront/internal/infrastructure/auth"
	"github.com/foodcheq/storefront/internal/infrastructure/storage"
)

// Deps carries everything the commands need
type Deps struct {
	Carts     *cartapp.Service
	Wishlists *wishlistapp.Service
	Currency  *currencyapp.Service
	Badges    *badgeapp.Synchronizer
	Catalog   *catalog.Service
	Checkout  *checkout.Service
	Orders    *orders.Service
	Logistics *logistics.Service
	Session   *auth.Session
	Store     storage.Store
	Bus       shared.EventBus
	Logger    *zap.Logger
}

// New builds the storefront CLI application
func New(deps *Deps) *cli.App {
	return &cli.App{
		Name:  "storefront",
		Usage: "FoodCheq storefront client",
		Commands: []*cli.Command{
			cartCommand(deps),
			wishlistCommand(deps),
			productsCommand(deps),
			checkoutCommand(deps),
			ordersCommand(deps),
			trackCommand(deps),
			logisticsCommand(deps),
			currencyCommand(deps),
			sessionCommand(deps),
			badgesCommand(deps),
		},
	}
}
