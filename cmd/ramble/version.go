package main

import "fmt"

// Set at build time via -ldflags.
var (
	buildChangeID = "unknown"
	buildCommitID = "unknown"
)

func init() {
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func versionString() string {
	return fmt.Sprintf("change_id %s\ncommit_id %s", buildChangeID, buildCommitID)
}
