package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/foodcheq/storefront/internal/domain/cart"
)

func cartCommand(deps *Deps) *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "Manage the local cart",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show cart contents and total",
				Action: func(c *cli.Context) error {
					items := deps.Carts.Get(c.Context)
					if len(items) == 0 {
						fmt.Fprintln(c.App.Writer, "Cart is empty")
						return nil
					}
					for _, item := range items {
						fmt.Fprintf(c.App.Writer, "%-24s %-30s x%-4d %s\n",
							item.ProductID, item.Name, item.Quantity,
							deps.Currency.Format(c.Context, item.PriceUSDCents*item.Quantity))
					}
					fmt.Fprintf(c.App.Writer, "Total: %s\n",
						deps.Currency.Format(c.Context, deps.Carts.TotalUSDCents(c.Context)))
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "Add a product to the cart",
				ArgsUsage: "<product-id>",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "qty", Value: 1, Usage: "quantity to add"},
				},
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return cli.Exit("product id required", 1)
					}
					// resolve name and price from the catalog so the cart line is
					// complete; an unknown id still goes in with a placeholder name
					record := cart.Record{ProductID: cart.FlexString(id)}
					if product, err := deps.Catalog.Get(c.Context, id); err == nil && product != nil {
						record.ProductID = cart.FlexString(product.ID)
						record.Name = cart.FlexString(product.Name)
						record.PriceUSDCents = cart.FlexNumber(product.PriceUSDCents)
					}
					result := deps.Carts.Add(c.Context, record, c.Int64("qty"))
					switch result.Outcome {
					case cart.AddOutcomeSkipped:
						return cli.Exit("not added: "+result.Reason, 1)
					case cart.AddOutcomeMerged:
						fmt.Fprintf(c.App.Writer, "Updated %s, quantity now %d\n", result.Item.Name, result.Item.Quantity)
					default:
						fmt.Fprintf(c.App.Writer, "Added %s\n", result.Item.Name)
					}
					return nil
				},
			},
			{
				Name:      "qty",
				Usage:     "Set the quantity of a cart line",
				ArgsUsage: "<product-id> <quantity>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return cli.Exit("usage: cart qty <product-id> <quantity>", 1)
					}
					var qty int64
					if _, err := fmt.Sscanf(c.Args().Get(1), "%d", &qty); err != nil {
						return cli.Exit("quantity must be a number", 1)
					}
					deps.Carts.UpdateQty(c.Context, c.Args().First(), qty)
					return nil
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove a product from the cart",
				ArgsUsage: "<product-id>",
				Action: func(c *cli.Context) error {
					if c.Args().First() == "" {
						return cli.Exit("product id required", 1)
					}
					deps.Carts.Remove(c.Context, c.Args().First())
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "Empty the cart",
				Action: func(c *cli.Context) error {
					deps.Carts.Clear(c.Context)
					return nil
				},
			},
		},
	}
}
