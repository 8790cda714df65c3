package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func freeze(args []string) error {
	fs := flag.NewFlagSet("freeze", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate freeze <token-id> [options]

Freeze a token's metadata. Once frozen, the URI can never change.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("token id required")
	}

	id, err := parseTokenID(fs.Arg(0))
	if err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, m, err := openManager(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := m.FreezeMetadata(ctx, cfg.Caller, id); err != nil {
		return err
	}

	log.Info().Uint64("token_id", id).Msg("metadata frozen")
	fmt.Printf("Froze metadata of token %d\n", id)
	return nil
}
