package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/raphi011/numclean/internal/config"
	"github.com/raphi011/numclean/internal/log"
	"github.com/raphi011/numclean/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage numclean configuration.

Config file: ~/.config/numclean/config.toml

Settings cover run history and colors only; the filter rule is fixed.`,
		Example: `  numclean config init          # Create default config
  numclean config show          # Show effective config
  numclean config path          # Print config file location`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  numclean config init      # Create config
  numclean config init -f   # Overwrite existing config
  numclean config init -s   # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if stdout {
				out.Print(config.DefaultConfig())
				return nil
			}

			path, err := config.Init(force)
			if err != nil {
				return fmt.Errorf("%w (use -f to overwrite)", err)
			}

			log.FromContext(ctx).Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			cfg := config.FromContext(ctx)

			if asJSON {
				return out.JSON(cfg)
			}
			return toml.NewEncoder(out.Writer()).Encode(cfg)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Println(path)
			return nil
		},
	}
}
