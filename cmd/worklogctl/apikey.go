package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worklogd/worklogd/internal/sqlite"
)

func apikeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage API keys for HTTP authentication",
	}

	cmd.AddCommand(apikeyAddCmd())

	return cmd
}

func apikeyAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [owner-id]",
		Short: "Generate a new API key for an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			description, _ := cmd.Flags().GetString("description")

			db, err := sqlite.New(dbPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close()

			if err := db.RunMigrations(); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}

			token, err := generateToken()
			if err != nil {
				return fmt.Errorf("generating token: %w", err)
			}

			keys := sqlite.NewAPIKeyRepository(db)
			if err := keys.Add(cmd.Context(), hashToken(token), args[0], description); err != nil {
				return fmt.Errorf("storing key: %w", err)
			}

			// The token is shown once; only its hash is stored.
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().String("description", "", "Free-form note about this key")

	return cmd
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "wlk_" + hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
