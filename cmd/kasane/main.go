// Command kasane inspects and edits layered configuration
// directories from the command line.
//
// Usage:
//
//	kasane --dir ./conf layers
//	kasane --dir ./conf get server.port
//	kasane --dir ./conf set server.port 9000
//	kasane --dir ./conf --env merged
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"
	"github.com/yacchi/kasane"
	"github.com/yacchi/kasane/env"
)

var (
	flagDir          string
	flagSeparator    string
	flagEnv          bool
	flagEnvMatch     string
	flagEnvSeparator string
)

func main() {
	root := &cobra.Command{
		Use:           "kasane",
		Short:         "Layered key/value configuration store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagDir, "dir", "", "configuration directory to load")
	root.PersistentFlags().StringVar(&flagSeparator, "separator", kasane.DefaultPathSeparator, "path separator")
	root.PersistentFlags().BoolVar(&flagEnv, "env", false, "add an environment variable layer at highest priority")
	root.PersistentFlags().StringVar(&flagEnvMatch, "env-match", "", "only include environment variables matching this pattern")
	root.PersistentFlags().StringVar(&flagEnvSeparator, "env-separator", "", "split environment variable names on this separator")

	root.AddCommand(newLayersCmd(), newGetCmd(), newSetCmd(), newMergedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// buildConfig assembles a Config from the global flags.
func buildConfig(cmd *cobra.Command) (*kasane.Config, error) {
	cfg := kasane.New(kasane.WithPathSeparator(flagSeparator))

	if flagDir != "" {
		if err := cfg.LoadDirectory(cmd.Context(), flagDir); err != nil {
			return nil, err
		}
	}

	if flagEnv {
		opts := []env.Option{}
		if flagEnvMatch != "" {
			re, err := regexp.Compile(flagEnvMatch)
			if err != nil {
				return nil, fmt.Errorf("invalid --env-match pattern: %w", err)
			}
			opts = append(opts, env.WithMatch(re))
		}
		if flagEnvSeparator != "" {
			opts = append(opts, env.WithSeparator(flagEnvSeparator))
		}
		cfg.LoadEnvironment(opts...)
	}

	return cfg, nil
}

func newLayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layers",
		Short: "List layer names, highest priority first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			for _, name := range cfg.LayerNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newGetCmd() *cobra.Command {
	var (
		ignoreNulls bool
		fromLayers  []string
	)

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Resolve a value across layers and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}

			opts := []kasane.GetOption{}
			if ignoreNulls {
				opts = append(opts, kasane.IgnoreNulls())
			}
			if len(fromLayers) > 0 {
				opts = append(opts, kasane.FromLayers(fromLayers...))
			}

			value, ok := cfg.GetOK(args[0], opts...)
			if !ok {
				return fmt.Errorf("path %q is not defined in any layer", args[0])
			}
			return printJSON(cmd, value)
		},
	}

	cmd.Flags().BoolVar(&ignoreNulls, "ignore-nulls", false, "skip layers whose value at the path is null")
	cmd.Flags().StringSliceVar(&fromLayers, "layers", nil, "restrict the search to these layers, in order")
	return cmd
}

func newSetCmd() *cobra.Command {
	var layerName string

	cmd := &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Set a value in a layer and save that layer to the directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagDir == "" {
				return fmt.Errorf("set requires --dir")
			}

			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}

			path, value := args[0], parseValue(args[1])
			if err := cfg.SetTo(layerName, path, value); err != nil {
				return err
			}

			target := layerName
			if target == "" {
				names := cfg.LayerNames()
				if len(names) == 0 {
					return kasane.ErrNoLayers
				}
				target = names[0]
			}
			// A layer edited from the CLI stays eligible for
			// directory-wide saves.
			cfg.Layer(target).SetWriteToDisk(true)
			return cfg.SaveLayer(cmd.Context(), flagDir, target)
		},
	}

	cmd.Flags().StringVar(&layerName, "layer", "", "target layer (default: highest priority layer)")
	return cmd
}

func newMergedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merged",
		Short: "Print the deep-merged view of all layers as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			merged, err := cfg.Merged()
			if err != nil {
				return err
			}
			return printJSON(cmd, merged)
		},
	}
}

// parseValue interprets raw as JSON when possible, falling back to a
// plain string. "9000" becomes a number, "true" a bool, and
// "unquoted text" a string.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
