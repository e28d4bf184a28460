package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Alturino/storefront/internal/auth"
	"github.com/Alturino/storefront/internal/config"
)

// newTokenCommand mints a bearer token for local checkout testing.
func newTokenCommand(cfg *config.Config) *cobra.Command {
	var (
		userId string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a user id",
		RunE: func(cmd *cobra.Command, args []string) error {
			id := uuid.New()
			if userId != "" {
				parsed, err := uuid.Parse(userId)
				if err != nil {
					return fmt.Errorf("failed parsing userId=%s with error=%w", userId, err)
				}
				id = parsed
			}

			token, err := auth.NewVerifier(cfg.Application.SecretKey).IssueToken(id, ttl)
			if err != nil {
				return fmt.Errorf("failed issuing token with error=%w", err)
			}
			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userId, "user", "", "user id to embed as subject, random when empty")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
