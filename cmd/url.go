package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soocke/rect-select-go/domain/source"
)

var urlCmd = &cobra.Command{
	Use:   "url <image>",
	Short: "Print the URL an upstream image name is fetched from",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := source.ViewURL(cfg.ServerURL, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), u)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(urlCmd)
}
