package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func pause(args []string) error {
	fs := flag.NewFlagSet("pause", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate pause [options]

Close the mint gate. Minting fails until unpause. The caller must
hold the admin role.

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

	if err := m.Pause(ctx, cfg.Caller); err != nil {
		return err
	}

	log.Info().Msg("paused")
	fmt.Println("Minting paused")
	return nil
}
