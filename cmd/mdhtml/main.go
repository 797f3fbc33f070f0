package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/mdhtml/cmd/mdhtml/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	commands.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Exit)
}
