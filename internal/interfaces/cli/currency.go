package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/foodcheq/storefront/internal/domain/money"
)

func currencyCommand(deps *Deps) *cli.Command {
	return &cli.Command{
		Name:  "currency",
		Usage: "Display currency and exchange rate",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the selected display currency",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, deps.Currency.Selected(c.Context))
					return nil
				},
			},
			{
				Name:      "set",
				Usage:     "Select the display currency",
				ArgsUsage: "<USD|NGN>",
				Action: func(c *cli.Context) error {
					arg := strings.ToUpper(c.Args().First())
					if arg != string(money.USD) && arg != string(money.NGN) {
						return cli.Exit("currency must be USD or NGN", 1)
					}
					if err := deps.Currency.SetSelected(c.Context, money.Currency(arg)); err != nil {
						return cli.Exit(err.Error(), 1)
					}
					return nil
				},
			},
			{
				Name:  "rate",
				Usage: "Show the current USD to NGN rate",
				Action: func(c *cli.Context) error {
					fmt.Fprintf(c.App.Writer, "1 USD = %s NGN\n", deps.Currency.Rate(c.Context))
					return nil
				},
			},
		},
	}
}
