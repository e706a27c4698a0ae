package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"beedical/cmd/bootstrap"
	"beedical/config"
	"beedical/pkg/jwt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "beedical",
		Short: "Beedical appointment booking service",
	}

	rootCmd.AddCommand(serveCmd(), migrateCmd(), seedCmd(), tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New()
			if err != nil {
				return err
			}
			if err := app.InitServer(cmd.Context()); err != nil {
				app.Close()
				return err
			}
			app.Run()
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(app *bootstrap.App) error {
				m, err := app.Migrator()
				if err != nil {
					return err
				}
				return m.Up()
			})
		},
	}

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(app *bootstrap.App) error {
				m, err := app.Migrator()
				if err != nil {
					return err
				}
				return m.Down(steps)
			})
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(app *bootstrap.App) error {
				m, err := app.Migrator()
				if err != nil {
					return err
				}
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
				return nil
			})
		},
	}

	cmd.AddCommand(upCmd, downCmd, versionCmd)
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert reference doctors, cities and specialties",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(app *bootstrap.App) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
				defer cancel()
				return app.Seed(ctx)
			})
		},
	}
}

// tokenCmd signs a development access token with the configured secret so
// the API can be exercised without the identity provider
func tokenCmd() *cobra.Command {
	var (
		subject, email, name, role string
		ttl                        time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if !cfg.App.IsDevelopment() {
				return fmt.Errorf("token signing is only available in development, APP_ENV is %q", cfg.App.Env)
			}

			token, _, err := jwt.NewJWTService(cfg.JWT).GenerateAccessToken(subject, email, name, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "external subject id")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&name, "name", "", "name claim")
	cmd.Flags().StringVar(&role, "role", "patient", "patient or doctor")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// withApp opens the database for a one-shot command and closes it after
func withApp(run func(app *bootstrap.App) error) error {
	app, err := bootstrap.New()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := run(app); err != nil {
		logrus.Errorf("Command failed: %+v", err)
		return err
	}
	return nil
}
