package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type webSearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type webSearchResponse struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message"`
	Results       []webSearchResult `json:"results"`
	Query         string            `json:"query"`
	ExecutionTime float64           `json:"execution_time"`
}

// WebSearchCmd creates the websearch command.
func WebSearchCmd() *cobra.Command {
	var maxResults int

	cmd := &cobra.Command{
		Use:   "websearch <query>",
		Short: "Search the web",
		Long:  "Runs a web search through the API server and prints the results.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runWebSearch(cmd, args[0], maxResults, outputJSON)
		},
	}

	cmd.Flags().IntVarP(&maxResults, "max-results", "n", 10, "Maximum number of results (1-20)")

	return cmd
}

func runWebSearch(cmd *cobra.Command, query string, maxResults int, outputJSON bool) error {
	api, err := NewAPIClient(cmd)
	if err != nil {
		return err
	}

	req := map[string]interface{}{
		"query":       query,
		"max_results": maxResults,
	}

	var resp webSearchResponse
	if err := api.Post("/search", req, &resp); err != nil {
		return fmt.Errorf("web search failed: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if !resp.Success || len(resp.Results) == 0 {
		fmt.Println(resp.Message)
		return nil
	}

	fmt.Printf("%s (%.2fs)\n\n", resp.Message, resp.ExecutionTime)
	for i, result := range resp.Results {
		fmt.Printf("%d. %s\n", i+1, result.Title)
		fmt.Printf("   %s\n", result.URL)
		if result.Snippet != "" {
			snippet := result.Snippet
			if len(snippet) > 160 {
				snippet = snippet[:157] + "..."
			}
			fmt.Printf("   %s\n", snippet)
		}
		if i < len(resp.Results)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}

	return nil
}
