package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"go.afab.re/vcrypt/cipher"
)

func substituteCmd(g *globals) *cobra.Command {
	var strip bool

	cmd := &cobra.Command{
		Use:   "substitute MESSAGE",
		Short: "Encrypt a message with a random monoalphabetic substitution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := strings.ToUpper(args[0])
			if strip {
				msg = strings.Map(func(r rune) rune {
					if !unicode.IsLetter(r) {
						return -1
					}
					return r
				}, msg)
			}

			key := cipher.GenerateKey(cipher.DefaultAlphabet, g.rand(cmd))
			sub, err := cipher.NewSubstitution(cipher.DefaultAlphabet, key)
			if err != nil {
				return err
			}

			ctx := sub.Encrypt(msg)
			if sub.Decrypt(ctx) != msg {
				return fmt.Errorf("decryption doesn't match message")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Key:        %s\n", string(key))
			fmt.Fprintf(out, "Message:    %s\n", msg)
			fmt.Fprintf(out, "Ciphertext: %s\n", ctx)
			return nil
		},
	}

	cmd.Flags().BoolVar(&strip, "strip", false, "remove everything but letters, for a harder encryption")
	return cmd
}

func wheelCmd(g *globals) *cobra.Command {
	var (
		wheels     int
		offset     int
		candidates bool
	)

	cmd := &cobra.Command{
		Use:   "wheel MESSAGE",
		Short: "Encrypt one block with a random Jefferson wheel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := strings.ToUpper(args[0])
			rng := g.rand(cmd)

			w, err := cipher.GenerateWheels(wheels, cipher.DefaultAlphabet, rng)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("offset") {
				offset = w.RandomOffset(rng)
			}

			ctx, err := w.Encrypt(msg, offset)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, wheel := range w {
				fmt.Fprintln(out, string(wheel))
			}
			fmt.Fprintf(out, "Offset:     %d\n", offset)
			fmt.Fprintf(out, "Ciphertext: %s\n", ctx)

			if !candidates {
				return nil
			}

			msgs, err := w.Decrypt(ctx)
			if err != nil {
				return err
			}
			for _, m := range msgs {
				fmt.Fprintln(out, m)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&wheels, "wheels", 20, "number of wheels, the longest message that can be encrypted")
	cmd.Flags().IntVar(&offset, "offset", 0, "row to read the ciphertext from (default: random)")
	cmd.Flags().BoolVar(&candidates, "candidates", false, "print every possible decryption of the ciphertext")
	return cmd
}
