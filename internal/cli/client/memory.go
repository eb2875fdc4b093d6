package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type memoryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type memoryListResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Memories []string `json:"memories"`
	Count    int      `json:"count"`
}

// MemoryCmd creates the memory command with store/list subcommands.
func MemoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Manage agent memories",
		Long:  "Store and list free-form memory entries.",
	}

	cmd.AddCommand(memoryStoreCmd())
	cmd.AddCommand(memoryListCmd())

	return cmd
}

func memoryStoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "store <insight>",
		Short: "Store a memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClient(cmd)
			if err != nil {
				return err
			}

			req := map[string]string{"insight": args[0]}

			var resp memoryResponse
			if err := api.Post("/memories", req, &resp); err != nil {
				return fmt.Errorf("failed to store memory: %w", err)
			}

			if !resp.Success {
				return fmt.Errorf("%s", resp.Message)
			}

			fmt.Println(resp.Message)
			return nil
		},
	}
}

func memoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored memories",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")

			api, err := NewAPIClient(cmd)
			if err != nil {
				return err
			}

			var resp memoryListResponse
			if err := api.Get("/memories", &resp); err != nil {
				return fmt.Errorf("failed to list memories: %w", err)
			}

			if !resp.Success {
				return fmt.Errorf("%s", resp.Message)
			}

			if outputJSON {
				output, _ := json.MarshalIndent(resp.Memories, "", "  ")
				fmt.Println(string(output))
				return nil
			}

			if len(resp.Memories) == 0 {
				fmt.Println("No memories stored.")
				return nil
			}

			for i, memory := range resp.Memories {
				fmt.Printf("%d. %s\n", i+1, memory)
			}
			return nil
		},
	}
}
