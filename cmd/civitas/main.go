// Copyright 2025 The civitas Authors
// This file is part of civitas.
//
// civitas is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// civitas is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with civitas. If not, see <http://www.gnu.org/licenses/>.

// civitas is the operator tool for the governance and moderation ledgers. It
// initializes a node configuration and inspects the journal database.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/civitasnet/civitas/internal/config"
	"github.com/civitasnet/civitas/storage"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to the TOML configuration file",
		Value: "civitas.toml",
	}
	dataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "Data directory (overrides the config file)",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 3,
	}
	logFileFlag = &cli.StringFlag{
		Name:  "log.file",
		Usage: "Write logs to a rotated file instead of stderr",
	}
)

func main() {
	app := &cli.App{
		Name:  "civitas",
		Usage: "governance and moderation ledger tool",
		Flags: []cli.Flag{configFlag, dataDirFlag, verbosityFlag, logFileFlag},
		Before: func(ctx *cli.Context) error {
			setupLogging(ctx)
			return nil
		},
		Commands: []*cli.Command{
			initCommand,
			dumpCommand,
			statusCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) {
	var (
		output   io.Writer = os.Stderr
		useColor           = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	)
	if file := ctx.String(logFileFlag.Name); file != "" {
		output = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    100,
			MaxBackups: 10,
		}
		useColor = false
	}
	level := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(output, level, useColor)))
}

var initCommand = &cli.Command{
	Name:  "init",
	Usage: "Write a default configuration file",
	Action: func(ctx *cli.Context) error {
		path := ctx.String(configFlag.Name)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("refusing to overwrite existing config %s", path)
		}
		cfg := config.Default()
		if dir := ctx.String(dataDirFlag.Name); dir != "" {
			cfg.Node.DataDir = dir
		}
		if err := cfg.Save(path); err != nil {
			return err
		}
		log.Info("Wrote default configuration", "path", path, "datadir", cfg.Node.DataDir)
		return nil
	},
}

var dumpCommand = &cli.Command{
	Name:  "dump",
	Usage: "Print journaled entries as JSON",
	Subcommands: []*cli.Command{
		{
			Name:  "records",
			Usage: "Dump all moderation records",
			Action: func(ctx *cli.Context) error {
				return withStore(ctx, func(store *storage.Store) error {
					records, err := store.Records()
					if err != nil {
						return err
					}
					return printJSON(records)
				})
			},
		},
		{
			Name:  "proposals",
			Usage: "Dump all governance proposals",
			Action: func(ctx *cli.Context) error {
				return withStore(ctx, func(store *storage.Store) error {
					proposals, err := store.Proposals()
					if err != nil {
						return err
					}
					return printJSON(proposals)
				})
			},
		},
	},
}

var statusCommand = &cli.Command{
	Name:  "status",
	Usage: "Print journal counters",
	Action: func(ctx *cli.Context) error {
		return withStore(ctx, func(store *storage.Store) error {
			records, err := store.Records()
			if err != nil {
				return err
			}
			proposals, err := store.Proposals()
			if err != nil {
				return err
			}
			overruled, executed := 0, 0
			for _, r := range records {
				if r.Overruled {
					overruled++
				}
			}
			for _, p := range proposals {
				if p.Executed {
					executed++
				}
			}
			fmt.Printf("moderation records: %d (%d overruled)\n", len(records), overruled)
			fmt.Printf("governance proposals: %d (%d executed)\n", len(proposals), executed)
			return nil
		})
	},
}

// withStore resolves the data directory, opens the journal database and
// hands it to fn.
func withStore(ctx *cli.Context, fn func(*storage.Store) error) error {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		cfg, err := config.Load(ctx.String(configFlag.Name))
		if err != nil {
			return err
		}
		dataDir = cfg.Node.DataDir
	}
	store, err := storage.Open(filepath.Join(dataDir, "journal"))
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
