package cmd

import (
	"fmt"

	"github.com/josephlewis42/minishell/commands"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the builtins
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the commands built into the shell.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range commands.BuiltinNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
