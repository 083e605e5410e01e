package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/andy/quotepad/internal/app"
	"github.com/andy/quotepad/internal/cli"
)

func main() {
	// A .env next to the binary may carry QUOTEPAD_DB_KEY, QUOTEPAD_REDIS_ADDR
	// and LOG_LEVEL. It is optional.
	_ = godotenv.Load()

	// Help and config commands must not initialize the app (which may prompt)
	if cli.NeedsApp(os.Args[1:]) {
		a, err := app.New(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize app: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()
		cli.SetApp(a)
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
