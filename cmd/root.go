package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/log"
)

func Start() {
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.InitConfig(c, constants.AppStorefront)
	logger := log.InitLogger(cfg.Application.LogPath, cfg.Application.Env).
		With().
		Str(log.KeyAppName, constants.AppStorefront).
		Str(log.KeyTag, "main Start").
		Logger()
	logger.Info().Any(log.KeyConfig, cfg).Msg("loaded config")
	c = logger.WithContext(c)

	rootCmd := &cobra.Command{
		Use:   constants.AppStorefront,
		Short: "Storefront catalog, cart and checkout",
	}
	commands := []*cobra.Command{
		{
			Use:   "serve",
			Short: "Run the storefront http server",
			Run: func(cmd *cobra.Command, args []string) {
				runStorefront(cmd.Context(), cfg)
			},
		},
		{
			Use:   "migrate",
			Short: "Apply order database migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate(cmd.Context(), cfg)
			},
		},
		newProductsCommand(),
		newCartCommand(cfg),
		newTokenCommand(cfg),
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
