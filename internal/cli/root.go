package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abubakar20-02/Flight-Management-System/internal/config"
)

type options struct {
	configPath string
	apiURL     string
	logLevel   string
}

// NewRootCommand returns the fms command tree. Without a subcommand it starts
// the interactive shell.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "fms",
		Short:         "Flight management client",
		Long:          "Search and book flights, or manage flights, fleet and crew as an administrator.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withShell(cmd, opts, func(s *Shell) error {
				return s.Run(cmd.Context())
			})
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "flight management API base URL")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR")

	root.AddCommand(
		&cobra.Command{
			Use:   "shell",
			Short: "Start the interactive shell",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withShell(cmd, opts, func(s *Shell) error {
					return s.Run(cmd.Context())
				})
			},
		},
		&cobra.Command{
			Use:   "login",
			Short: "Sign in as a traveler or the administrator",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withShell(cmd, opts, func(s *Shell) error {
					return s.login(cmd.Context())
				})
			},
		},
		&cobra.Command{
			Use:   "signup",
			Short: "Create a traveler account and sign in",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withShell(cmd, opts, func(s *Shell) error {
					return s.signup(cmd.Context())
				})
			},
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Forget the stored identity",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withShell(cmd, opts, func(s *Shell) error {
					return s.logout(cmd.Context())
				})
			},
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Show the current session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withShell(cmd, opts, func(s *Shell) error {
					return s.whoami(cmd.Context())
				})
			},
		},
	)

	return root
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	return cfg, nil
}

func withShell(cmd *cobra.Command, opts *options, run func(*Shell) error) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	app, err := Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := run(NewShell(app, cmd.InOrStdin(), cmd.OutOrStdout())); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return nil
}
