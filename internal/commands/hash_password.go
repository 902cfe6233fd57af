package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/routine/internal/auth"
	"github.com/sadopc/routine/internal/env"
)

func addHashPassword(topLevel *cobra.Command) {
	var (
		password   string
		iterations int
	)

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print .env lines for a new password",
		Long: `Derives a PBKDF2-HMAC-SHA256 verifier for a password and prints the
` + env.KeyPasswordHash + `, ` + env.KeyPasswordSalt + ` and ` + env.KeyIterations + `
assignments to put in a .env file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				pw, err := promptPassword("New password")
				if err != nil {
					return err
				}
				confirm, err := promptPassword("Repeat password")
				if err != nil {
					return err
				}
				if pw != confirm {
					return errors.New("passwords do not match")
				}
				password = pw
			}
			if password == "" {
				return errors.New("empty password")
			}

			secret, err := auth.Derive(password, iterations)
			if err != nil {
				return err
			}
			for _, line := range env.Lines(secret) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password to hash (default: prompt).")
	cmd.Flags().IntVar(&iterations, "iterations", auth.DefaultIterations, "PBKDF2 iterations.")

	topLevel.AddCommand(cmd)
}
