package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xab-mack/reguard/internal/config"
	"github.com/xab-mack/reguard/internal/slither"
)

func newContractsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contracts [path]",
		Short: "List contracts the engine finds in a project",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			cfg, _, _ := config.Load(path)
			proj, err := slither.LoadProject(cmd.Context(), path, slither.Options{SlitherPath: cfg.SlitherPath, Args: cfg.SlitherArgs})
			if err != nil {
				return err
			}
			for _, c := range proj.Contracts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d entry points\t%s\n", c.Name, len(c.EntryPoints), c.File)
			}
			return nil
		},
	}
	return cmd
}
