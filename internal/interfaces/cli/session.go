package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/foodcheq/storefront/internal/infrastructure/auth"
)

func sessionCommand(deps *Deps) *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "Manage stored login tokens",
		Subcommands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Show the active session",
				Action: func(c *cli.Context) error {
					var token string
					switch {
					case deps.Session.UserToken() != "":
						token = deps.Session.UserToken()
						fmt.Fprintln(c.App.Writer, "Signed in as customer")
					case deps.Session.VendorToken() != "":
						token = deps.Session.VendorToken()
						fmt.Fprintln(c.App.Writer, "Signed in as vendor")
					default:
						fmt.Fprintln(c.App.Writer, "Not signed in")
						return nil
					}
					if expiry, err := auth.TokenExpiry(token); err == nil {
						fmt.Fprintf(c.App.Writer, "Token expires %s\n", expiry.Format("2006-01-02 15:04:05"))
					}
					return nil
				},
			},
			{
				Name:      "login",
				Usage:     "Store a session token",
				ArgsUsage: "<token>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "vendor", Usage: "store as a vendor token"},
				},
				Action: func(c *cli.Context) error {
					token := c.Args().First()
					if token == "" {
						return cli.Exit("token required", 1)
					}
					var err error
					if c.Bool("vendor") {
						err = deps.Session.SetVendorToken(token)
					} else {
						err = deps.Session.SetUserToken(token)
					}
					if err != nil {
						return cli.Exit(err.Error(), 1)
					}
					// a fresh customer session adopts the server-side wishlist
					if !c.Bool("vendor") {
						if _, err := deps.Wishlists.SyncFromServer(c.Context); err != nil {
							fmt.Fprintln(c.App.ErrWriter, "warning: wishlist sync failed, will retry on next sync")
						}
					}
					return nil
				},
			},
			{
				Name:  "logout",
				Usage: "Clear the stored session",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "vendor", Usage: "clear the vendor session"},
				},
				Action: func(c *cli.Context) error {
					if c.Bool("vendor") {
						return deps.Session.LogoutVendor()
					}
					return deps.Session.LogoutUser()
				},
			},
		},
	}
}
