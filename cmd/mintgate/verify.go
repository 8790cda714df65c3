package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-mintgate/commitment"
	"github.com/pflow-xyz/go-mintgate/events"
)

func verify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")
	against := fs.String("against", "", "Expected commitment to check (hex)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate verify [options]

Recompute the MiMC commitment over the event stream. With --against,
check it matches an expected value.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := events.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	chain, err := commitment.Compute(ctx, store, cfg.Stream)
	if err != nil {
		return err
	}

	fmt.Printf("Events:     %d\n", chain.Count())
	fmt.Printf("Commitment: %s\n", chain.Hex())

	if *against != "" {
		ok, err := commitment.Verify(ctx, store, cfg.Stream, *against)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("commitment mismatch: stream does not match %s", *against)
		}
		fmt.Println("Commitment matches.")
	}
	return nil
}
