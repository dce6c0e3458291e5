package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [document-id]",
	Short: "Show the processing status of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := requirePipeline(); err != nil {
		return err
	}

	st, err := pipelineService.Status(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	cmd.Println(title("Document " + st.DocumentID))
	cmd.Println(field("State", stateStyle(string(st.State)).Render(string(st.State))))
	cmd.Println(field("Run", st.RunID))
	cmd.Println(field("Attempts", st.Attempts))
	cmd.Println(field("Chunks", st.ChunkCount))
	cmd.Println(field("Updated", st.UpdatedAt.Local().Format("2006-01-02 15:04:05")))
	if st.Error != "" {
		cmd.Println(field("Error", style.Error.Render(st.Error)))
	}
	return nil
}
