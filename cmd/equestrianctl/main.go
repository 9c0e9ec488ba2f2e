package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"equestrian/internal/app"
	"equestrian/internal/config"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	cfg *config.Config
	log *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "equestrianctl",
		Short: "Management commands for the equestrian club backend",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = os.Getenv("CONFIG_PATH")
			}
			if configPath == "" {
				return fmt.Errorf("config path is empty: pass --config or set CONFIG_PATH")
			}

			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			return nil
		},
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default $CONFIG_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(migrateCmd, generateHorsesCmd, setPedigreeCmd, createUserCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// withApp собирает приложение так же, как сервер, и закрывает соединения после fn
func withApp(ctx context.Context, fn func(*app.App) error) error {
	application, err := app.New(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer application.Stop()

	return fn(application)
}
