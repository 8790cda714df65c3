package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func unpause(args []string) error {
	fs := flag.NewFlagSet("unpause", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate unpause [options]

Reopen the mint gate. The caller must hold the admin role.

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
	store, m, err := openManager(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := m.Unpause(ctx, cfg.Caller); err != nil {
		return err
	}

	log.Info().Msg("unpaused")
	fmt.Println("Minting resumed")
	return nil
}
