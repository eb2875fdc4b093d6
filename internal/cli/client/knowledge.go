package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

// KnowledgeItem represents a knowledge base entry as returned by the API.
type KnowledgeItem struct {
	ID        string   `json:"id"`
	Topic     string   `json:"topic"`
	Content   string   `json:"content"`
	Keywords  []string `json:"keywords"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

// ScoredKnowledgeItem is a search hit with its relevance score.
type ScoredKnowledgeItem struct {
	KnowledgeItem
	RelevanceScore float64 `json:"relevance_score"`
}

type knowledgeResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    *KnowledgeItem `json:"data,omitempty"`
}

type knowledgeListResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Items   []*KnowledgeItem `json:"items"`
	Count   int              `json:"count"`
}

type knowledgeSearchResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Items   []*ScoredKnowledgeItem `json:"items"`
	Count   int                    `json:"count"`
}

// AddCmd creates the add command.
func AddCmd() *cobra.Command {
	var (
		topic    string
		content  string
		keywords []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a knowledge item",
		Long: `Add an item to the knowledge base.

Examples:
  recall add --topic "Jupiter" --content "Largest planet in the solar system" --keyword planet --keyword gas
  recall add --topic "Go errors" --content "Wrap errors with %w"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runKnowledgeAdd(cmd, topic, content, keywords, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Topic of the knowledge item (required)")
	cmd.Flags().StringVarP(&content, "content", "c", "", "Content of the knowledge item (required)")
	cmd.Flags().StringArrayVarP(&keywords, "keyword", "k", nil, "Keyword (repeatable)")
	_ = cmd.MarkFlagRequired("topic")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func runKnowledgeAdd(cmd *cobra.Command, topic, content string, keywords []string, outputJSON bool) error {
	api, err := NewAPIClient(cmd)
	if err != nil {
		return err
	}

	req := map[string]interface{}{
		"topic":    topic,
		"content":  content,
		"keywords": keywords,
	}

	var resp knowledgeResponse
	if err := api.Post("/knowledge", req, &resp); err != nil {
		return fmt.Errorf("failed to add knowledge item: %w", err)
	}

	if !resp.Success {
		return fmt.Errorf("%s", resp.Message)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp.Data, "", "  ")
		fmt.Println(string(output))
	} else {
		fmt.Printf("Added knowledge item: %s\n", resp.Data.ID)
		fmt.Printf("Topic: %s\n", resp.Data.Topic)
	}

	return nil
}

// ListCmd creates the list command.
func ListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List knowledge items",
		Long:  "Lists knowledge base items, newest first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runKnowledgeList(cmd, limit, outputJSON)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of items")

	return cmd
}

func runKnowledgeList(cmd *cobra.Command, limit int, outputJSON bool) error {
	api, err := NewAPIClient(cmd)
	if err != nil {
		return err
	}

	var resp knowledgeListResponse
	if err := api.Get(fmt.Sprintf("/knowledge?limit=%d", limit), &resp); err != nil {
		return fmt.Errorf("failed to list knowledge items: %w", err)
	}

	if !resp.Success {
		return fmt.Errorf("%s", resp.Message)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp.Items, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(resp.Items) == 0 {
		fmt.Println("Knowledge base is empty.")
		return nil
	}

	fmt.Printf("%d knowledge items:\n\n", resp.Count)
	for i, item := range resp.Items {
		fmt.Printf("%d. %s\n", i+1, item.Topic)
		fmt.Printf("   ID: %s\n", item.ID)
		if len(item.Keywords) > 0 {
			fmt.Printf("   Keywords: %s\n", strings.Join(item.Keywords, ", "))
		}
		if i < len(resp.Items)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}

	return nil
}

// SearchCmd creates the search command.
func SearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the knowledge base",
		Long:  "Searches the knowledge base by keyword relevance.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runKnowledgeSearch(cmd, args[0], limit, outputJSON)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of results (1-50)")

	return cmd
}

func runKnowledgeSearch(cmd *cobra.Command, query string, limit int, outputJSON bool) error {
	api, err := NewAPIClient(cmd)
	if err != nil {
		return err
	}

	req := map[string]interface{}{
		"query": query,
		"limit": limit,
	}

	var resp knowledgeSearchResponse
	if err := api.Post("/knowledge/search", req, &resp); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if !resp.Success {
		return fmt.Errorf("%s", resp.Message)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp.Items, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(resp.Items) == 0 {
		fmt.Println("No matching items found.")
		return nil
	}

	fmt.Printf("Found %d results:\n\n", resp.Count)
	for i, item := range resp.Items {
		fmt.Printf("%d. %s (%.2f)\n", i+1, item.Topic, item.RelevanceScore)
		content := item.Content
		if len(content) > 100 {
			content = content[:97] + "..."
		}
		fmt.Printf("   %s\n", content)
		fmt.Printf("   ID: %s\n", item.ID)
		if i < len(resp.Items)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}

	return nil
}

// UpdateCmd creates the update command.
func UpdateCmd() *cobra.Command {
	var (
		topic    string
		content  string
		keywords []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a knowledge item",
		Long: `Update fields of an existing knowledge item. Only the provided
flags are changed; omitted fields keep their current value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runKnowledgeUpdate(cmd, args[0], topic, content, keywords, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "New topic")
	cmd.Flags().StringVarP(&content, "content", "c", "", "New content")
	cmd.Flags().StringArrayVarP(&keywords, "keyword", "k", nil, "New keyword set (repeatable, replaces existing)")

	return cmd
}

func runKnowledgeUpdate(cmd *cobra.Command, id, topic, content string, keywords []string, outputJSON bool) error {
	api, err := NewAPIClient(cmd)
	if err != nil {
		return err
	}

	req := map[string]interface{}{"id": id}
	if cmd.Flags().Changed("topic") {
		req["topic"] = topic
	}
	if cmd.Flags().Changed("content") {
		req["content"] = content
	}
	if cmd.Flags().Changed("keyword") {
		req["keywords"] = keywords
	}

	var resp knowledgeResponse
	if err := api.Post("/knowledge/update", req, &resp); err != nil {
		return fmt.Errorf("failed to update knowledge item: %w", err)
	}

	if !resp.Success {
		return fmt.Errorf("%s", resp.Message)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(resp.Data, "", "  ")
		fmt.Println(string(output))
	} else {
		fmt.Printf("Updated knowledge item: %s\n", resp.Data.ID)
		fmt.Printf("Topic: %s\n", resp.Data.Topic)
	}

	return nil
}

// DeleteCmd creates the delete command.
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a knowledge item by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runKnowledgeDelete(cmd, args[0], outputJSON)
		},
	}

	return cmd
}

func runKnowledgeDelete(cmd *cobra.Command, id string, outputJSON bool) error {
	api, err := NewAPIClient(cmd)
	if err != nil {
		return err
	}

	var resp knowledgeResponse
	if err := api.Delete("/knowledge/"+url.PathEscape(id), &resp); err != nil {
		return fmt.Errorf("failed to delete knowledge item: %w", err)
	}

	if !resp.Success {
		return fmt.Errorf("%s", resp.Message)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(map[string]string{"id": id, "status": "deleted"}, "", "  ")
		fmt.Println(string(output))
	} else {
		fmt.Printf("Deleted knowledge item: %s\n", id)
	}

	return nil
}
