package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/abihf/camprobe"
	"github.com/abihf/camprobe/config"
	"github.com/abihf/camprobe/utils/logging"
	"github.com/pkg/errors"
)

func main() {
	os.Exit(mainE(os.Args[1:]))
}

func mainE(args []string) int {
	conf, err := config.Parse("camview", config.View, args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	log := logging.Stderr(logging.Options{
		Level:   conf.LogLevel,
		Format:  conf.LogFormat,
		Journal: conf.Journal,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := camprobe.View(ctx, conf, log); err != nil {
		if !errors.Is(err, config.ErrInvalidIndex) {
			log.Error("View failed", "error", err)
		}
		return 1
	}
	return 0
}
