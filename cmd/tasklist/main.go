package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tasklist/internal/config"
	"tasklist/internal/httpmw"
	"tasklist/internal/serverapp"
	"tasklist/internal/task"
	"tasklist/internal/tui"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "tasklist",
		Short:         "A single-user, in-memory to-do list",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.PathFromEnv(config.DefaultPath), "path to YAML config")

	load := func() (*config.Config, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg.ApplyEnv()
		return cfg, nil
	}

	rootCmd.AddCommand(serveCmd(load))
	rootCmd.AddCommand(tuiCmd(load))
	return rootCmd
}

func serveCmd(load func() (*config.Config, error)) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task list over HTTP (HTML page and JSON API)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			logger := httpmw.NewLogger(log.New(os.Stderr, "", 0), cfg.Log.Format)
			handler, err := serverapp.NewHandler(serverapp.Options{
				Config: cfg,
				Logger: logger,
			})
			if err != nil {
				return fmt.Errorf("build server: %w", err)
			}

			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           handler,
				ReadHeaderTimeout: 5 * time.Second,
			}
			logger.Info("server_started", map[string]any{"addr": cfg.Server.Addr, "version": Version})
			return srv.ListenAndServe()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func tuiCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the task list in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return tui.Run(task.NewSeededStore(cfg.Seed), cfg.UI)
		},
	}
}
