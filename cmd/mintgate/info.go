package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-mintgate/lifecycle"
)

func info(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate info [options]

Show the contract state rebuilt from the event stream: supply, pause
flag, and the state of every minted token.

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

	fmt.Printf("Stream:     %s\n", cfg.Stream)
	fmt.Printf("Minted:     %d / %d\n", m.Minted(), m.MaxSupply())
	fmt.Printf("Paused:     %v\n", m.Paused())
	fmt.Println()

	if m.Minted() == 0 {
		fmt.Println("No tokens minted.")
		return nil
	}

	fmt.Println("Tokens:")
	for id := uint64(0); id < m.Minted(); id++ {
		state := m.TokenState(id)
		line := fmt.Sprintf("  %d: %s", id, state)
		if state != lifecycle.StateBurned {
			if uri, err := m.TokenURI(id); err == nil {
				line += fmt.Sprintf("  %s", uri)
			}
		}
		fmt.Println(line)
	}
	return nil
}
