package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/foodcheq/storefront/internal/application/logistics"
)

func ordersCommand(deps *Deps) *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "View order history",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List your orders",
				Action: func(c *cli.Context) error {
					orderList, err := deps.Orders.List(c.Context)
					if err != nil {
						return cli.Exit(err.Error(), 1)
					}
					if len(orderList) == 0 {
						fmt.Fprintln(c.App.Writer, "No orders yet")
						return nil
					}
					for _, o := range orderList {
						fmt.Fprintf(c.App.Writer, "%-36s %-16s %s\n",
							o.ID, o.Status, deps.Currency.Format(c.Context, o.TotalUSDCents))
					}
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "Show one order",
				ArgsUsage: "<order-id>",
				Action: func(c *cli.Context) error {
					if c.Args().First() == "" {
						return cli.Exit("order id required", 1)
					}
					o, err := deps.Orders.Get(c.Context, c.Args().First())
					if err != nil {
						return cli.Exit(err.Error(), 1)
					}
					fmt.Fprintf(c.App.Writer, "Order %s  %s\n", o.ID, o.Status)
					for _, item := range o.Items {
						fmt.Fprintf(c.App.Writer, "  %-30s x%-4d %s\n",
							item.Name, item.Quantity, deps.Currency.Format(c.Context, item.PriceUSDCents*item.Quantity))
					}
					if o.TrackingCode != "" {
						fmt.Fprintf(c.App.Writer, "Tracking code: %s\n", o.TrackingCode)
					}
					return nil
				},
			},
		},
	}
}

func trackCommand(deps *Deps) *cli.Command {
	return &cli.Command{
		Name:      "track",
		Usage:     "Track a shipment or pickup request",
		ArgsUsage: "<tracking-code>",
		Action: func(c *cli.Context) error {
			shipment, err := deps.Orders.Track(c.Context, c.Args().First())
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			fmt.Fprintf(c.App.Writer, "%s: %s\n", shipment.TrackingCode, shipment.Status)
			if shipment.PickupLocation != "" {
				fmt.Fprintf(c.App.Writer, "From: %s\nTo:   %s\n", shipment.PickupLocation, shipment.DropoffLocation)
			}
			return nil
		},
	}
}

func logisticsCommand(deps *Deps) *cli.Command {
	return &cli.Command{
		Name:  "logistics",
		Usage: "Book deliveries",
		Subcommands: []*cli.Command{
			{
				Name:  "request",
				Usage: "Request a pickup",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "order", Usage: "order id the pickup belongs to"},
					&cli.StringFlag{Name: "name", Required: true, Usage: "full name"},
					&cli.StringFlag{Name: "phone", Required: true, Usage: "contact phone"},
					&cli.StringFlag{Name: "email", Usage: "contact email"},
					&cli.StringFlag{Name: "pickup", Required: true, Usage: "pickup location"},
					&cli.StringFlag{Name: "dropoff", Required: true, Usage: "dropoff location"},
					&cli.StringFlag{Name: "date", Usage: "pickup date (YYYY-MM-DD)"},
					&cli.StringFlag{Name: "package", Usage: "package type"},
					&cli.StringFlag{Name: "notes", Usage: "delivery notes"},
				},
				Action: func(c *cli.Context) error {
					code, err := deps.Logistics.RequestPickup(c.Context, logistics.PickupRequest{
						OrderID:         c.String("order"),
						FullName:        c.String("name"),
						Phone:           c.String("phone"),
						Email:           c.String("email"),
						PickupLocation:  c.String("pickup"),
						DropoffLocation: c.String("dropoff"),
						PickupDate:      c.String("date"),
						PackageType:     c.String("package"),
						Notes:           c.String("notes"),
					})
					if err != nil {
						return cli.Exit(err.Error(), 1)
					}
					fmt.Fprintf(c.App.Writer, "Pickup requested, tracking code: %s\n", code)
					return nil
				},
			},
		},
	}
}
