package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "mint":
		if err := mint(args); err != nil {
			log.Error().Err(err).Msg("mint failed")
			os.Exit(1)
		}
	case "burn":
		if err := burn(args); err != nil {
			log.Error().Err(err).Msg("burn failed")
			os.Exit(1)
		}
	case "freeze":
		if err := freeze(args); err != nil {
			log.Error().Err(err).Msg("freeze failed")
			os.Exit(1)
		}
	case "seturi":
		if err := setURI(args); err != nil {
			log.Error().Err(err).Msg("seturi failed")
			os.Exit(1)
		}
	case "pause":
		if err := pause(args); err != nil {
			log.Error().Err(err).Msg("pause failed")
			os.Exit(1)
		}
	case "unpause":
		if err := unpause(args); err != nil {
			log.Error().Err(err).Msg("unpause failed")
			os.Exit(1)
		}
	case "grant":
		if err := grant(args); err != nil {
			log.Error().Err(err).Msg("grant failed")
			os.Exit(1)
		}
	case "info":
		if err := info(args); err != nil {
			log.Error().Err(err).Msg("info failed")
			os.Exit(1)
		}
	case "events":
		if err := showEvents(args); err != nil {
			log.Error().Err(err).Msg("events failed")
			os.Exit(1)
		}
	case "verify":
		if err := verify(args); err != nil {
			log.Error().Err(err).Msg("verify failed")
			os.Exit(1)
		}
	case "prove":
		if err := prove(args); err != nil {
			log.Error().Err(err).Msg("prove failed")
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("mintgate version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mintgate - capped-supply NFT lifecycle manager

Usage:
  mintgate <command> [options]

Commands:
  mint       Mint the next token id to an owner
  burn       Burn a token (owner, approved, or operator)
  freeze     Freeze a token's metadata
  seturi     Update a token's metadata URI
  pause      Close the mint gate
  unpause    Reopen the mint gate
  grant      Grant a role to an address
  info       Show contract state
  events     Show the event stream
  verify     Recompute and check the event-chain commitment
  prove      Generate zero-knowledge proofs of the lifecycle invariants
  help       Show this help message
  version    Show version information

Examples:
  # Mint a token to an address
  mintgate mint --to 0xa11ce --uri ipfs://Qm.../0.json

  # Freeze token 0 and verify the event chain
  mintgate freeze 0
  mintgate verify`)
}
