package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-mintgate/proof"
)

func prove(args []string) error {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")
	chainProof := fs.Bool("chain", false, "Also prove the event-chain commitment (slow)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mintgate prove [options]

Generate Groth16 proofs of the lifecycle invariants: minted count
within the supply cap, and optionally that the published commitment
folds the event stream.

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

	p := proof.NewProver()

	log.Info().Uint64("minted", m.Minted()).Uint64("cap", m.MaxSupply()).Msg("proving supply cap")
	pr, err := proof.ProveSupplyCap(p, m.Minted(), m.MaxSupply())
	if err != nil {
		return fmt.Errorf("supply cap proof: %w", err)
	}
	if err := p.Verify(pr); err != nil {
		return fmt.Errorf("supply cap proof did not verify: %w", err)
	}
	fmt.Printf("Supply cap proof: ok (%d <= %d)\n", m.Minted(), m.MaxSupply())

	if *chainProof {
		log.Info().Msg("proving event chain")
		cpr, commit, err := proof.ProveChain(ctx, p, store, cfg.Stream)
		if err != nil {
			return fmt.Errorf("chain proof: %w", err)
		}
		if err := p.Verify(cpr); err != nil {
			return fmt.Errorf("chain proof did not verify: %w", err)
		}
		fmt.Printf("Chain proof: ok, commitment %s\n", commit)
	}
	return nil
}
