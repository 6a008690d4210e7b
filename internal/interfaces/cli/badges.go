package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	badgeapp "github.com/foodcheq/storefront/internal/application/badge"
)

// ConsoleRenderer writes badge snapshots as single lines. Zero counts hide
// the badge rather than showing a zero.
type ConsoleRenderer struct {
	Out io.Writer
}

// RenderBadges implements badge.Renderer
func (r ConsoleRenderer) RenderBadges(counts badgeapp.Counts) {
	line := ""
	if counts.Cart > 0 {
		line += fmt.Sprintf("cart(%d) ", counts.Cart)
	}
	if counts.Wishlist > 0 {
		line += fmt.Sprintf("wishlist(%d)", counts.Wishlist)
	}
	if line == "" {
		line = "(no badges)"
	}
	fmt.Fprintln(r.Out, line)
}

func badgesCommand(deps *Deps) *cli.Command {
	return &cli.Command{
		Name:  "badges",
		Usage: "Show cart and wishlist counters",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the current counters once",
				Action: func(c *cli.Context) error {
					deps.Badges.Register(c.Context, ConsoleRenderer{Out: c.App.Writer})
					return nil
				},
			},
			{
				Name:  "watch",
				Usage: "Print counters whenever the state changes, here or in another process",
				Action: func(c *cli.Context) error {
					deps.Badges.Bind(deps.Bus, deps.Store)
					deps.Badges.Register(c.Context, ConsoleRenderer{Out: c.App.Writer})

					sig := make(chan os.Signal, 1)
					signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
					<-sig
					return nil
				},
			},
		},
	}
}
