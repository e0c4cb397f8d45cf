package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soocke/rect-select-go/app"
)

type openOptions struct {
	name         string
	dir          string
	screen       bool
	exitOnCommit bool
}

var openOpts openOptions

var openCmd = &cobra.Command{
	Use:   "open [image]",
	Short: "Open the node panel, optionally starting a selection on image",
	Long: `Open the node panel with a RectSelect node fed by a LoadImage node.

When an image name is given the selection overlay opens immediately. Images
are fetched from the configured server unless --dir or --screen is set. The
committed rectangle is printed as JSON on exit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o := openOpts
		if len(args) == 1 {
			o.name = args[0]
		}
		return runOpen(cmd, o)
	},
}

func init() {
	f := openCmd.Flags()
	f.StringVar(&openOpts.dir, "dir", "", "read images from this directory instead of the server")
	f.BoolVar(&openOpts.screen, "screen", false, "select over a capture of the desktop")
	f.BoolVar(&openOpts.exitOnCommit, "exit-on-commit", false, "quit after the first applied selection")
	rootCmd.AddCommand(openCmd)
}

// rectJSON is the printed form of a committed selection.
type rectJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func runOpen(cmd *cobra.Command, o openOptions) error {
	r, ok, err := app.Run(cmd.Context(), cfg, cfgPath, app.Options{
		ImageName:    o.name,
		ImageDir:     o.dir,
		Screen:       o.screen,
		ExitOnCommit: o.exitOnCommit,
		Dark:         dark,
	}, logger)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	out, err := json.Marshal(rectJSON{X: r.X, Y: r.Y, W: r.W, H: r.H})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
