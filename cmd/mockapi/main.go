// Command mockapi serves an in-memory marketplace backend for local
// development against the storefront client.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/foodcheq/storefront/internal/infrastructure/logger"
	"github.com/foodcheq/storefront/internal/interfaces/mockapi"
)

func main() {
	addr := flag.String("addr", ":4000", "listen address")
	rate := flag.Float64("rate", 1650, "USD to NGN rate served by the fx endpoint")
	flag.Parse()

	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	server := mockapi.New(mockapi.Config{Rate: *rate}, log)
	log.Info("mock marketplace API listening")
	if err := server.Router().Run(*addr); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
