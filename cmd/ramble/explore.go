package main

import (
	"github.com/amonks/ramble/explore"
	"github.com/amonks/ramble/internal/exploretui"
	"github.com/amonks/ramble/internal/ui"
	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore [topic]",
	Short: "Explore a topic interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExplore,
}

var (
	exploreServer string
	exploreStyle  string
)

func init() {
	rootCmd.AddCommand(exploreCmd)
	exploreCmd.Flags().StringVar(&exploreServer, "server", "", "Explorer server address")
	exploreCmd.Flags().StringVar(&exploreStyle, "style", "", "Content render style (auto, dark, light, notty, ascii)")
	addStyleFlagAliases(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := newBackendClient(exploreServer, cfg)
	controller := explore.New(client)

	if len(args) > 0 {
		if err := controller.Start(cmd.Context(), args[0]); err != nil {
			return err
		}
	}

	style := resolveRenderStyle(exploreStyle, cfg)
	if style == "" && !ui.ANSIEnabled() {
		style = "notty"
	}
	return exploretui.Run(cmd.Context(), controller, exploretui.Options{
		RenderStyle: style,
	})
}
