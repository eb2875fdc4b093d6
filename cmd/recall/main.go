package main

import (
	"fmt"
	"os"

	"github.com/recallhq/recall/internal/cli/client"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "recall",
		Short: "Recall CLI - knowledge, memory and web tools for AI agents",
		Long: `Recall CLI provides commands to manage a knowledge base, store
memories, search the web and extract page content through a recall server.

Environment variables:
  RECALL_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")

	rootCmd.AddCommand(client.AddCmd())
	rootCmd.AddCommand(client.ListCmd())
	rootCmd.AddCommand(client.SearchCmd())
	rootCmd.AddCommand(client.UpdateCmd())
	rootCmd.AddCommand(client.DeleteCmd())
	rootCmd.AddCommand(client.MemoryCmd())
	rootCmd.AddCommand(client.WebSearchCmd())
	rootCmd.AddCommand(client.ExtractCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
