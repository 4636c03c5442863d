package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"go.afab.re/vcrypt"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globals struct {
	seed   int64
	quiet  bool
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "vcrypt",
		Short: "Visual cryptography shares and classical cipher demos",
		Long: `vcrypt splits a black and white image into two shares to print on transparencies.
Each share alone is random noise, stacking both reveals the image.

It also includes two classical ciphers: monoalphabetic substitution and the Jefferson wheel.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			g.logger = newLogger(cmd.ErrOrStderr(), g.quiet)
		},
	}

	root.PersistentFlags().Int64VarP(&g.seed, "seed", "s", 0, "seed for the random number generator (default: current time)")
	root.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "don't print status messages")

	root.AddCommand(splitCmd(g), substituteCmd(g), wheelCmd(g))
	return root
}

func newLogger(w io.Writer, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// rand returns the random generator for the seed flag, falling back to the current time.
// The seed is always logged so runs can be reproduced.
func (g *globals) rand(cmd *cobra.Command) *rand.Rand {
	seed := g.seed
	if !cmd.Flags().Changed("seed") {
		seed = time.Now().Unix()
		g.logger.Info("No seed, using current time", "seed", seed)
	} else {
		g.logger.Info("Seed", "seed", seed)
	}

	return vcrypt.NewRand(seed)
}
