package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/wmd/cli"
	"github.com/ardnew/wmd/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error("wmd failed", slog.Any("error", err))
		os.Exit(1)
	}
}
