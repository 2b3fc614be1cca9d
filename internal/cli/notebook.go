package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"notebook-ai/internal/storage"
)

var notebookCmd = &cobra.Command{
	Use:   "notebook",
	Short: "Manage notebooks",
	Long:  `Create, list, inspect and delete notebooks.`,
}

var notebookCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a notebook",
	Long:  `Creates a notebook. Without a title, one is inferred from the first source added.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runNotebookCreate,
}

var notebookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notebooks",
	Args:  cobra.NoArgs,
	RunE:  runNotebookList,
}

var notebookSourcesCmd = &cobra.Command{
	Use:   "sources [notebook-id]",
	Short: "List a notebook's sources",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotebookSources,
}

var notebookDeleteCmd = &cobra.Command{
	Use:   "delete [notebook-id]",
	Short: "Delete a notebook and all its sources",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotebookDelete,
}

var sourceDeleteCmd = &cobra.Command{
	Use:   "delete-source [notebook-id] [source-id]",
	Short: "Delete one source from a notebook",
	Args:  cobra.ExactArgs(2),
	RunE:  runSourceDelete,
}

func init() {
	notebookCmd.AddCommand(notebookCreateCmd)
	notebookCmd.AddCommand(notebookListCmd)
	notebookCmd.AddCommand(notebookSourcesCmd)
	notebookCmd.AddCommand(notebookDeleteCmd)
	notebookCmd.AddCommand(sourceDeleteCmd)
	rootCmd.AddCommand(notebookCmd)
}

func runNotebookCreate(cmd *cobra.Command, args []string) error {
	title := ""
	if len(args) == 1 {
		title = strings.TrimSpace(args[0])
	}

	nb, err := notebookService.Create(commandContext(cmd), userID, title)
	if err != nil {
		return fmt.Errorf("failed to create notebook: %w", err)
	}
	if outputJSON {
		return printJSON(cmd, nb)
	}
	cmd.Printf("Created notebook %s\n", nb.ID)
	return nil
}

func runNotebookList(cmd *cobra.Command, _ []string) error {
	notebooks, err := notebookService.List(commandContext(cmd), userID)
	if err != nil {
		return fmt.Errorf("failed to list notebooks: %w", err)
	}
	if outputJSON {
		return printJSON(cmd, notebooks)
	}
	if len(notebooks) == 0 {
		cmd.Println("No notebooks found.")
		return nil
	}
	for _, nb := range notebooks {
		cmd.Printf("  %s  %-40s  %d sources\n", nb.ID, displayTitle(nb.Title), nb.SourceCount)
	}
	return nil
}

func runNotebookSources(cmd *cobra.Command, args []string) error {
	srcs, err := notebookService.ListSources(commandContext(cmd), userID, args[0])
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}
	if outputJSON {
		return printJSON(cmd, srcs)
	}
	if len(srcs) == 0 {
		cmd.Println("No sources found.")
		return nil
	}
	for _, src := range srcs {
		cmd.Printf("  %s  [%s/%s]  %s\n", src.ID, src.Kind, src.Status, displayTitle(src.Title))
		if src.Status == storage.StatusFailed && src.Error != "" {
			cmd.Printf("      error: %s\n", src.Error)
		}
	}
	return nil
}

func runNotebookDelete(cmd *cobra.Command, args []string) error {
	if err := notebookService.Delete(commandContext(cmd), userID, args[0]); err != nil {
		return fmt.Errorf("failed to delete notebook: %w", err)
	}
	cmd.Printf("Deleted notebook %s\n", args[0])
	return nil
}

func runSourceDelete(cmd *cobra.Command, args []string) error {
	if err := notebookService.DeleteSource(commandContext(cmd), userID, args[0], args[1]); err != nil {
		return fmt.Errorf("failed to delete source: %w", err)
	}
	cmd.Printf("Deleted source %s\n", args[1])
	return nil
}

func displayTitle(title string) string {
	if title == "" {
		return "(untitled)"
	}
	return title
}
