package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-mintgate/token"
)

func mint(args []string) error {
	fs := flag.NewFlagSet("mint", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")
	to := fs.String("to", "", "Recipient address")
	uri := fs.String("uri", "", "Metadata URI")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate mint --to <address> --uri <uri> [options]

Mint the next token id to an owner. The caller must hold the minter
role and minting must not be paused.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *to == "" || *uri == "" {
		fs.Usage()
		return fmt.Errorf("--to and --uri are required")
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

	id, err := m.Mint(ctx, cfg.Caller, token.Address(*to), *uri)
	if err != nil {
		return err
	}

	log.Info().Uint64("token_id", id).Str("to", *to).Str("uri", *uri).Msg("minted")
	fmt.Printf("Minted token %d to %s\n", id, *to)
	return nil
}
