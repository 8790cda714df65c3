package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func burn(args []string) error {
	fs := flag.NewFlagSet("burn", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate burn <token-id> [options]

Burn a token. The caller must be the owner, the approved address, or
an operator for the owner.

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

	if err := m.Burn(ctx, cfg.Caller, id); err != nil {
		return err
	}

	log.Info().Uint64("token_id", id).Msg("burned")
	fmt.Printf("Burned token %d\n", id)
	return nil
}
