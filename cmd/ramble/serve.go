package main

import (
	"log"
	"os"

	"github.com/amonks/ramble/backend"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a local deterministic explorer server",
	RunE:  runServe,
}

var (
	serveAddr     string
	serveMaxDepth int
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8000", "Listen address")
	serveCmd.Flags().IntVar(&serveMaxDepth, "max-depth", backend.DefaultMaxDepth, "Depth at which menus turn into content")
}

func runServe(cmd *cobra.Command, _ []string) error {
	server := backend.NewServer(backend.ServerOptions{
		MaxDepth: serveMaxDepth,
		Logger:   log.New(os.Stderr, "", log.LstdFlags),
	})
	return server.Serve(serveAddr)
}
