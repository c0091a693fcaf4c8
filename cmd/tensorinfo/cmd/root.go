// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the tensorinfo commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nlpodyssey/arrayio"
	"github.com/nlpodyssey/arrayio/codec"
	"github.com/nlpodyssey/arrayio/config"
	"github.com/spf13/cobra"
)

// env is what every subcommand needs, built from flags and configuration
// before it runs.
type env struct {
	registry *codec.Registry
	logger   *slog.Logger
	mmap     bool
}

func (e *env) options() []arrayio.Option {
	return []arrayio.Option{
		arrayio.WithRegistry(e.registry),
		arrayio.WithLogger(e.logger),
		arrayio.WithMmap(e.mmap),
	}
}

// NewRootCmd returns the tensorinfo command with all its subcommands.
func NewRootCmd() *cobra.Command {
	e := &env{}
	rootCmd := &cobra.Command{
		Use:   "tensorinfo",
		Short: "Inspect and convert array files",
		Long: `tensorinfo reads array files (such as .tensor files, including
the legacy torch5spro layout) to show their metadata, print their
elements, or convert them to the current format.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error), overriding the configuration")

	rootCmd.AddCommand(newInfoCmd(e), newConvertCmd(e), newDumpCmd(e))
	return rootCmd
}

func (e *env) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	e.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if e.registry, err = arrayio.NewRegistry(cfg); err != nil {
		return fmt.Errorf("failed to set up codecs: %w", err)
	}
	e.mmap = cfg.Mmap
	return nil
}

// Execute runs the root command, exiting with a non-zero status on
// failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
