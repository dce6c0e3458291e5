package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/textprep/internal/adapters/driving/watch"
	"github.com/custodia-labs/textprep/internal/core/domain"
)

var (
	watchPattern    string
	watchBusinessID string
	watchNoScan     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Process files as they are written to a directory",
	Long: `Watches a directory tree and runs every created or modified file whose
relative path matches --pattern through the pipeline. Files that already
match are processed first.

Patterns use ** for any number of directories, e.g. "inbox/**/*.txt".`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchPattern, "pattern", watch.DefaultPattern, "doublestar pattern relative to dir")
	watchCmd.Flags().StringVarP(&watchBusinessID, "business-id", "b", "", "tenant identifier for every file")
	watchCmd.Flags().BoolVar(&watchNoScan, "no-scan", false, "skip files that already exist")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := requirePipeline(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w, err := watch.New(args[0], pipelineService,
		watch.WithPattern(watchPattern),
		watch.WithNormaliseOptions(normaliseDefaults()),
		watch.WithContext(domain.ProcessingContext{
			BusinessID: watchBusinessID,
			DataType:   "unstructured",
		}),
		watch.WithSkipScan(watchNoScan),
		watch.OnResult(func(path string, res *domain.ProcessResult, err error) {
			if err != nil {
				fmt.Fprintln(out, style.Error.Render("✗ "+path+": "+err.Error()))
				return
			}
			fmt.Fprintln(out, style.Success.Render(fmt.Sprintf("✓ %s -> %s (%d chunks)",
				path, res.DocumentID, len(res.Chunks))))
		}),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "Watching %s for %s (Ctrl+C to stop)\n", w.Root(), watchPattern)
	return w.Run(ctx)
}
