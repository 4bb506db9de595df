package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/amonks/ramble/internal/ui"
	"github.com/spf13/cobra"
)

var peekCmd = &cobra.Command{
	Use:   "peek <topic>",
	Short: "Fetch the top-level menu for a topic without entering the TUI",
	Args:  cobra.ExactArgs(1),
	RunE:  runPeek,
}

var (
	peekServer string
	peekJSON   bool
)

func init() {
	rootCmd.AddCommand(peekCmd)
	peekCmd.Flags().StringVar(&peekServer, "server", "", "Explorer server address")
	peekCmd.Flags().BoolVar(&peekJSON, "json", false, "Output as JSON")
}

type peekOutput struct {
	SessionID string   `json:"session_id"`
	Topic     string   `json:"topic"`
	MenuItems []string `json:"menu_items"`
	MaxDepth  *int     `json:"max_menu_depth,omitempty"`
}

func runPeek(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(args[0])
	if topic == "" {
		return fmt.Errorf("topic must not be blank")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := newBackendClient(peekServer, cfg)
	result, err := client.StartSession(cmd.Context(), topic)
	if err != nil {
		return err
	}

	if peekJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(peekOutput{
			SessionID: result.SessionID,
			Topic:     topic,
			MenuItems: result.MenuItems,
			MaxDepth:  result.MaxDepth,
		})
	}

	fmt.Println(ui.Breadcrumb([]string{"Topic: " + topic}, ui.TerminalWidth(80)))
	fmt.Println()
	for i, item := range result.MenuItems {
		fmt.Printf("%2d. %s\n", i+1, item)
	}
	return nil
}
