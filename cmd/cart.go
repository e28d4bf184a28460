package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cartCmd "github.com/Alturino/storefront/cart/cmd"
	"github.com/Alturino/storefront/cart/pkg/store"
	"github.com/Alturino/storefront/internal/config"
)

func newCartCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect or reset the persisted cart",
	}
	cmd.PersistentFlags().StringVar(&cfg.Storage.Driver, "driver", cfg.Storage.Driver, "cart storage driver: sqlite, redis or memory")
	cmd.PersistentFlags().StringVar(&cfg.Storage.CartKey, "key", cfg.Storage.CartKey, "storage key holding the cart")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the persisted cart summary",
			RunE: func(cmd *cobra.Command, args []string) error {
				c := cmd.Context()
				storage, closeStorage, err := cartCmd.NewStorage(c, cfg)
				if err != nil {
					return err
				}
				defer closeStorage()

				items, err := store.Rehydrate(c, storage, cfg.Storage.CartKey)
				if err != nil {
					fmt.Fprintf(os.Stderr, "persisted cart was discarded: %s\n", err)
				}
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(store.Summarize(items))
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Delete the persisted cart",
			RunE: func(cmd *cobra.Command, args []string) error {
				c := cmd.Context()
				storage, closeStorage, err := cartCmd.NewStorage(c, cfg)
				if err != nil {
					return err
				}
				defer closeStorage()

				return cartCmd.ResetCart(c, storage, cfg.Storage.CartKey)
			},
		},
	)
	return cmd
}
