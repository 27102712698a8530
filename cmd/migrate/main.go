package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/ellavondegurechaff/cardbot/cardbot"
	"github.com/ellavondegurechaff/cardbot/cardbot/database"
	"github.com/ellavondegurechaff/cardbot/cardbot/logger"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: migrate [-config path] up | down N | status\n")
	flag.PrintDefaults()
}

func main() {
	path := flag.String("config", "config.toml", "path to config")
	flag.Usage = usage
	flag.Parse()

	cfg, err := cardbot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Setup(cfg.Log)

	if err := run(cfg.DB.URL(), flag.Args()); err != nil {
		slog.Error("Migration failed",
			slog.String("type", "db"),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

func run(url string, args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "up":
		return database.MigrateUp(url)

	case "down":
		if len(args) < 2 {
			return fmt.Errorf("down needs a step count")
		}
		steps, err := strconv.Atoi(args[1])
		if err != nil || steps < 1 {
			return fmt.Errorf("invalid step count %q", args[1])
		}
		return database.MigrateDown(url, steps)

	case "status":
		version, dirty, err := database.MigrateStatus(url)
		if err != nil {
			return err
		}
		slog.Info("Migration status",
			slog.String("type", "db"),
			slog.Uint64("version", uint64(version)),
			slog.Bool("dirty", dirty),
		)

	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}
