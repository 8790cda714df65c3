package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func setURI(args []string) error {
	fs := flag.NewFlagSet("seturi", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate seturi <token-id> <uri> [options]

Update a token's metadata URI. Fails if the metadata is frozen.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("token id and uri required")
	}

	id, err := parseTokenID(fs.Arg(0))
	if err != nil {
		return err
	}
	uri := fs.Arg(1)

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

	if err := m.UpdateTokenURI(ctx, cfg.Caller, id, uri); err != nil {
		return err
	}

	log.Info().Uint64("token_id", id).Str("uri", uri).Msg("uri updated")
	fmt.Printf("Updated token %d uri to %s\n", id, uri)
	return nil
}
