package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pflow-xyz/go-mintgate/events"
	"github.com/pflow-xyz/go-mintgate/lifecycle"
	"github.com/pflow-xyz/go-mintgate/token"
)

const defaultConfigPath = "mintgate.toml"

type config struct {
	DBPath    string
	Stream    string
	Deployer  token.Address
	Caller    token.Address
	MaxSupply uint64
}

type fileConfig struct {
	DBPath    string `toml:"db_path"`
	Stream    string `toml:"stream"`
	Deployer  string `toml:"deployer"`
	Caller    string `toml:"caller"`
	MaxSupply uint64 `toml:"max_supply"`
}

func defaultConfig() config {
	return config{
		DBPath: "mintgate.db",
		Stream: "contract-1",
	}
}

// loadConfig reads a TOML config file, falling back to defaults for
// anything not set. A missing file at the default path is not an
// error; a missing file at an explicit path is.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if path == defaultConfigPath {
			return cfg.validate()
		}
		return config{}, fmt.Errorf("config file not found: %s", path)
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("db_path") && strings.TrimSpace(raw.DBPath) != "" {
		cfg.DBPath = strings.TrimSpace(raw.DBPath)
	}
	if meta.IsDefined("stream") && strings.TrimSpace(raw.Stream) != "" {
		cfg.Stream = strings.TrimSpace(raw.Stream)
	}
	if meta.IsDefined("deployer") {
		cfg.Deployer = token.Address(strings.TrimSpace(raw.Deployer))
	}
	if meta.IsDefined("caller") {
		cfg.Caller = token.Address(strings.TrimSpace(raw.Caller))
	}
	if meta.IsDefined("max_supply") {
		cfg.MaxSupply = raw.MaxSupply
	}

	return cfg.validate()
}

// validate enforces the required fields and fills derived defaults.
func (c config) validate() (config, error) {
	if c.Deployer.IsZero() {
		return config{}, fmt.Errorf("config: deployer address is required")
	}
	if c.Caller.IsZero() {
		c.Caller = c.Deployer
	}
	return c, nil
}

// openManager opens the event store and rebuilds the manager from the
// configured stream. The caller must Close the returned store.
func openManager(ctx context.Context, cfg config) (*events.SQLiteStore, *lifecycle.Manager, error) {
	store, err := events.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	m, err := lifecycle.Replay(ctx, store, cfg.Stream, lifecycle.Config{
		Deployer:  cfg.Deployer,
		MaxSupply: cfg.MaxSupply,
		Sink:      events.NewPublisher(store, cfg.Stream),
	})
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	return store, m, nil
}

func parseTokenID(arg string) (token.ID, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token id %q: %w", arg, err)
	}
	return id, nil
}
