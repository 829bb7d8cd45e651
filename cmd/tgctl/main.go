package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/tgauth/internal/cli"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	app := cli.NewApp(os.Stdout, os.Stderr)
	code := app.Run(ctx, os.Args[1:])

	stop()
	os.Exit(code)

}
