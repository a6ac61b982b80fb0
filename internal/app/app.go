package app

import (
	"github.com/spf13/cobra"

	"github.com/xab-mack/reguard/internal/cli"
)

func BuildRoot() *cobra.Command {
	root := &cobra.Command{Use: "reguard", Short: "Flag contract entry points missing a re-entrancy guard"}
	cli.AddCommands(root)
	return root
}
