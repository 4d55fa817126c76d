package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hyperstat/internal/di"
	"hyperstat/internal/services"
	"hyperstat/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the YAML config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "mirror logs to stderr")
	flag.BoolVar(&flags.Fetch, "fetch", false, "fetch one hyper-stat snapshot, print it and exit")
	flag.StringVar(&flags.OCID, "ocid", "", "character ocid for -fetch (defaults to character.ocid)")
	flag.StringVar(&flags.Date, "date", "", "reference date YYYY-MM-DD for -fetch (defaults to character.date)")
	flag.Parse()

	if flags.Fetch {
		if err := fetch(flags); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fetch(flags *structures.CliFlags) error {
	fetcher, err := di.InitFetcher(flags)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return fetcher.Run(ctx, services.Query{OCID: flags.OCID, Date: flags.Date}, os.Stdout)
}
