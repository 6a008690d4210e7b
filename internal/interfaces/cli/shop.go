package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/foodcheq/storefront/internal/application/checkout"
)

func productsCommand(deps *Deps) *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "Browse the catalog",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all products",
				Action: func(c *cli.Context) error {
					products := deps.Catalog.List(c.Context)
					if len(products) == 0 {
						fmt.Fprintln(c.App.Writer, "No products available")
						return nil
					}
					for _, p := range products {
						stock := ""
						if !p.InStock {
							stock = "  (out of stock)"
						}
						fmt.Fprintf(c.App.Writer, "%-24s %-30s %s%s\n",
							p.ID, p.Name, deps.Currency.Format(c.Context, p.PriceUSDCents), stock)
					}
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "Show one product",
				ArgsUsage: "<product-id-or-slug>",
				Action: func(c *cli.Context) error {
					if c.Args().First() == "" {
						return cli.Exit("product id required", 1)
					}
					p, err := deps.Catalog.Get(c.Context, c.Args().First())
					if err != nil {
						return cli.Exit(err.Error(), 1)
					}
					fmt.Fprintf(c.App.Writer, "%s\n%s\n", p.Name, p.Description)
					fmt.Fprintf(c.App.Writer, "Price: %s\n", deps.Currency.Format(c.Context, p.PriceUSDCents))
					fmt.Fprintf(c.App.Writer, "Category: %s  In stock: %v\n", p.Category, p.InStock)
					return nil
				},
			},
		},
	}
}

func checkoutCommand(deps *Deps) *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "Place an order from the cart and get a payment link",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "payment", Value: checkout.PaymentPayPal, Usage: "paypal or paystack"},
			&cli.StringFlag{Name: "shipping", Value: checkout.ShippingStandard, Usage: "standard or express"},
		},
		Action: func(c *cli.Context) error {
			result, err := deps.Checkout.PlaceOrder(c.Context, c.String("payment"), c.String("shipping"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			fmt.Fprintf(c.App.Writer, "Order %s placed\n", result.OrderID)
			fmt.Fprintf(c.App.Writer, "Complete payment at: %s\n", result.RedirectURL)
			return nil
		},
	}
}
