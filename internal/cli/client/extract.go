package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type extractLink struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

type extractImage struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type extractResponse struct {
	Success     bool           `json:"success"`
	Message     string         `json:"message"`
	URL         string         `json:"url"`
	Title       *string        `json:"title"`
	Content     *string        `json:"content"`
	Description *string        `json:"description"`
	WordCount   *int           `json:"word_count"`
	Links       []extractLink  `json:"links"`
	Images      []extractImage `json:"images"`
	FetchTime   float64        `json:"fetch_time"`
}

// ExtractCmd creates the extract command.
func ExtractCmd() *cobra.Command {
	var (
		links   bool
		images  bool
		timeout int
	)

	cmd := &cobra.Command{
		Use:   "extract <url>",
		Short: "Extract readable content from a web page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runExtract(cmd, args[0], links, images, timeout, outputJSON)
		},
	}

	cmd.Flags().BoolVar(&links, "links", false, "Include page links")
	cmd.Flags().BoolVar(&images, "images", false, "Include page images")
	cmd.Flags().IntVar(&timeout, "timeout", 10, "Fetch timeout in seconds (3-30)")

	return cmd
}

func runExtract(cmd *cobra.Command, rawURL string, links, images bool, timeout int, outputJSON bool) error {
	api, err := NewAPIClient(cmd)
	if err != nil {
		return err
	}

	req := map[string]interface{}{
		"url":            rawURL,
		"extract_links":  links,
		"extract_images": images,
		"timeout":        timeout,
	}

	var resp extractResponse
	if err := api.Post("/extract", req, &resp); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if !resp.Success {
		return fmt.Errorf("%s", resp.Message)
	}

	if resp.Title != nil && *resp.Title != "" {
		fmt.Printf("Title: %s\n", *resp.Title)
	}
	if resp.Description != nil && *resp.Description != "" {
		fmt.Printf("Description: %s\n", *resp.Description)
	}
	if resp.WordCount != nil {
		fmt.Printf("Words: %d (fetched in %.2fs)\n", *resp.WordCount, resp.FetchTime)
	}
	fmt.Println()
	if resp.Content != nil {
		fmt.Println(*resp.Content)
	}

	if links && len(resp.Links) > 0 {
		fmt.Printf("\nLinks (%d):\n", len(resp.Links))
		for _, link := range resp.Links {
			fmt.Printf("  %s - %s\n", link.Text, link.URL)
		}
	}
	if images && len(resp.Images) > 0 {
		fmt.Printf("\nImages (%d):\n", len(resp.Images))
		for _, img := range resp.Images {
			fmt.Printf("  %s\n", img.Src)
		}
	}

	return nil
}
