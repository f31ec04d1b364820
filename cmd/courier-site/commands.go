package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/titancargo/courier-site/internal/core/domain"
	"github.com/titancargo/courier-site/internal/shell/content"
	"github.com/titancargo/courier-site/internal/shell/mail"
)

type rootOptions struct {
	configPath string
}

// newRootCommand builds the command tree. Running the root without a
// subcommand serves the site.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "courier-site",
		Short:         "Courier business website and contact relay",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	root.SetVersionTemplate("courier-site {{.Version}} (built " + BuildTime + ")\n")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file")

	root.AddCommand(
		newServeCommand(opts),
		newSeedCommand(opts),
		newSMTPCheckCommand(opts),
		newVersionCommand(),
	)
	return root
}

// loadRuntime reads the configuration and builds the logger.
func loadRuntime(opts *rootOptions) (*Config, *slog.Logger, error) {
	cfg, err := LoadConfig(opts.configPath)
	if err != nil {
		return nil, nil, &ServerError{Op: "LoadConfig", Err: err, ExitCode: ExitConfigError}
	}
	return cfg, SetupLogger(cfg), nil
}

// =============================================================================
// serve
// =============================================================================

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, logger, err := loadRuntime(opts)
	if err != nil {
		return err
	}
	logger.Info("starting courier-site",
		"version", Version,
		"config", opts.configPath,
	)

	server, err := NewServer(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		return err
	}
	return server.Start(cmd.Context())
}

// =============================================================================
// seed
// =============================================================================

func newSeedCommand(opts *rootOptions) *cobra.Command {
	var (
		file    string
		publish bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Validate a content bundle and upsert it into the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(opts)
			if err != nil {
				return err
			}

			page, err := content.LoadFile(file)
			if err != nil {
				return &ServerError{Op: "seed", Err: err, ExitCode: ExitContentError}
			}
			if publish {
				page.Status = domain.PageStatusPublished
			}

			s, err := openStore(cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.SaveLandingPage(cmd.Context(), page); err != nil {
				return &ServerError{Op: "seed", Err: err, ExitCode: ExitDatabaseError}
			}

			logger.Info("landing page stored",
				"id", page.ID,
				"status", page.Status,
				"file", file,
			)
			fmt.Fprintf(cmd.OutOrStdout(), "stored landing page %s (%s)\n", page.ID, page.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Content bundle file (YAML or JSON)")
	cmd.Flags().BoolVar(&publish, "publish", false, "Mark the page as published")
	cmd.MarkFlagRequired("file")
	return cmd
}

// =============================================================================
// smtp-check
// =============================================================================

func newSMTPCheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "smtp-check",
		Short: "Verify SMTP connectivity and auth without sending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(opts)
			if err != nil {
				return err
			}

			mailCfg, err := cfg.SMTP.MailConfig()
			if err != nil {
				return &ServerError{Op: "smtp-check", Err: err, ExitCode: ExitConfigError}
			}
			if err := mailCfg.Validate(); err != nil {
				return &ServerError{Op: "smtp-check", Err: err, ExitCode: ExitConfigError}
			}

			start := time.Now()
			sender := mail.NewSMTPSender(mailCfg, logger)
			if err := sender.Verify(cmd.Context()); err != nil {
				return &ServerError{Op: "smtp-check", Err: err, ExitCode: ExitSMTPError}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "SMTP connection verified: %s (%s) in %dms\n",
				mailCfg.Addr(), mailCfg.Mode(), time.Since(start).Milliseconds())
			return nil
		},
	}
}

// =============================================================================
// version
// =============================================================================

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "courier-site %s (built %s)\n", Version, BuildTime)
			return nil
		},
	}
}
