package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	wishlistapp "github.com/foodcheq/storefront/internal/application/wishlist"
)

func wishlistCommand(deps *Deps) *cli.Command {
	report := func(c *cli.Context, result wishlistapp.MutationResult, err error) error {
		if err != nil {
			if result.Outcome == wishlistapp.OutcomeRolledBack {
				fmt.Fprintln(c.App.ErrWriter, "Server rejected the change, local wishlist restored")
			}
			return cli.Exit(err.Error(), 1)
		}
		if result.Outcome == wishlistapp.OutcomeLocalOnly {
			fmt.Fprintln(c.App.Writer, "Saved locally (log in to sync with your account)")
		}
		return nil
	}

	return &cli.Command{
		Name:  "wishlist",
		Usage: "Manage the wishlist",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show wishlist product ids",
				Action: func(c *cli.Context) error {
					for _, id := range deps.Wishlists.IDs(c.Context).IDs() {
						fmt.Fprintln(c.App.Writer, id)
					}
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "Add a product to the wishlist",
				ArgsUsage: "<product-id>",
				Action: func(c *cli.Context) error {
					result, err := deps.Wishlists.Add(c.Context, c.Args().First())
					return report(c, result, err)
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove a product from the wishlist",
				ArgsUsage: "<product-id>",
				Action: func(c *cli.Context) error {
					result, err := deps.Wishlists.Remove(c.Context, c.Args().First())
					return report(c, result, err)
				},
			},
			{
				Name:      "toggle",
				Usage:     "Add the product if absent, remove it if present",
				ArgsUsage: "<product-id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					active := deps.Wishlists.IDs(c.Context).Contains(id)
					result, err := deps.Wishlists.Toggle(c.Context, id, active)
					if err == nil {
						if result.Active {
							fmt.Fprintf(c.App.Writer, "%s is now on the wishlist\n", id)
						} else {
							fmt.Fprintf(c.App.Writer, "%s removed from the wishlist\n", id)
						}
					}
					return report(c, result, err)
				},
			},
			{
				Name:  "sync",
				Usage: "Pull the account wishlist from the server",
				Action: func(c *cli.Context) error {
					ids, err := deps.Wishlists.SyncFromServer(c.Context)
					if err != nil {
						return cli.Exit("sync failed: "+err.Error(), 1)
					}
					fmt.Fprintf(c.App.Writer, "%d item(s) on the wishlist\n", ids.Count())
					return nil
				},
			},
		},
	}
}
