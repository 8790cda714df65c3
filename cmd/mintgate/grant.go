package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-mintgate/token"
)

func grant(args []string) error {
	fs := flag.NewFlagSet("grant", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate grant <role> <address> [options]

Grant a role to an address. The caller must hold the admin role.
Known roles: admin, minter.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("role and address required")
	}

	role := fs.Arg(0)
	addr := token.Address(fs.Arg(1))

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

	if err := m.GrantRole(ctx, cfg.Caller, role, addr); err != nil {
		return err
	}

	log.Info().Str("role", role).Str("address", string(addr)).Msg("role granted")
	fmt.Printf("Granted %s to %s\n", role, addr)
	return nil
}
