package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"user-page-service/cmd/api/app"
	"user-page-service/cmd/api/server"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "application exited with error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "user-page-service",
		Short:         "Server-rendered users page backed by a remote user list",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", app.ConfigPath(), "directory containing app.env")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "render",
		Short: "Fetch the user list once and write the users page HTML to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.NewRenderOnly(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.RenderUsers(cmd.Context(), cmd.OutOrStdout())
		},
	})

	return root
}

func serve(ctx context.Context, configPath string) error {
	ctx, stop := server.WithSignal(ctx)
	defer stop()

	a, err := app.New(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run(ctx)
}
