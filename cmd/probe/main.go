// Command probe fetches each configured feed once and prints the normalized
// events as indented JSON. Useful for eyeballing adapter output against the
// live endpoints without starting the service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/disaster-alerts-service/internal/config"
	"github.com/couchcryptid/disaster-alerts-service/internal/source"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "probe: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	timeout := flag.Duration("timeout", 30*time.Second, "overall fetch budget")
	only := flag.String("source", "", "fetch a single source by name (EONET or USGS)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	client := source.NewHTTPClient(cfg.FetchConnectTimeout, cfg.FetchResponseTimeout)

	sources := []source.Source{
		source.NewEONET(cfg.EONETURL, client, logger),
		source.NewUSGS(cfg.USGSURL, client, logger),
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	var fetched bool
	for _, src := range sources {
		if *only != "" && src.Name() != *only {
			continue
		}
		fetched = true

		events, err := src.Fetch(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: fetch failed: %v\n", src.Name(), err)
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: %d events\n", src.Name(), len(events))
		if err := enc.Encode(events); err != nil {
			return fmt.Errorf("encode %s events: %w", src.Name(), err)
		}
	}
	if !fetched {
		return fmt.Errorf("unknown source %q", *only)
	}
	return nil
}
