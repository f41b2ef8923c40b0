package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/api"
	"github.com/spec-kit/storefront/internal/config"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/observability"
	"github.com/spec-kit/storefront/internal/session"
)

var (
	cfg    *config.Config
	logger *zap.Logger
	bus    events.Bus
	store  *session.Store
	client *api.Client

	flagAPIURL     string
	flagProfileDir string
)

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Command-line storefront for the marketplace API",
	Long:          "Browse the catalog, manage a cart as guest or logged in, check out, and run the seller console against a remote marketplace API.",
	SilenceUsage:  true,
	SilenceErrors: false,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if flagAPIURL != "" {
			cfg.Client.APIURL = flagAPIURL
		}
		if flagProfileDir != "" {
			cfg.Client.ProfileDir = flagProfileDir
		}

		logger, err = observability.NewLogger(cfg.Logger)
		if err != nil {
			return err
		}

		bus = events.NewBus()
		store = session.NewStore(cfg.Client.ProfileDir, bus, logger)
		client = api.NewClient(cfg.Client.APIURL, store, logger)
		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api", "", "base address of the marketplace API (overrides STOREFRONT_API_URL)")
	rootCmd.PersistentFlags().StringVar(&flagProfileDir, "profile-dir", "", "directory holding the persisted identity state")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd, accountCmd)
	rootCmd.AddCommand(productsCmd, productCmd)
	rootCmd.AddCommand(cartCmd, checkoutCmd)
	rootCmd.AddCommand(ordersCmd, orderCmd, payCmd)
	rootCmd.AddCommand(sellerCmd)
}
