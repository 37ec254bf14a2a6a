package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smallnest/clickflow/engine"
	"github.com/smallnest/clickflow/htmlpage"
	"github.com/smallnest/clickflow/workflow"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the saved run progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := a.repo.LoadConfig(ctx)
			if err != nil {
				return err
			}
			cp, err := a.repo.LoadCheckpoint(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Button: %s\n", cfg.ButtonLabel)
			fmt.Fprintf(out, "Actions: %d\n", len(cfg.Actions))
			fmt.Fprintln(out, describeCheckpoint(cp, len(cfg.Actions)))
			return nil
		},
	}
}

func describeCheckpoint(cp *workflow.Checkpoint, total int) string {
	switch {
	case cp == nil:
		return "Progress: no run in progress"
	case cp.IsComplete:
		return fmt.Sprintf("Progress: completed (%d of %d steps)", cp.LastCompletedStepIndex+1, total)
	case cp.Resumable(total):
		return fmt.Sprintf("Progress: step %d of %d done, resumes at step %d", cp.LastCompletedStepIndex+1, total, cp.NextStepIndex+1)
	default:
		return fmt.Sprintf("Progress: stale checkpoint (next step %d, workflow has %d)", cp.NextStepIndex+1, total)
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the run progress so the next click starts over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.repo.ClearCheckpoint(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Run progress reset.")
			return nil
		},
	}
}

func newExportHTMLCmd(a *app) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export-html",
		Short: "Write the output screen before any click as an HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := a.repo.LoadConfig(ctx)
			if err != nil {
				return err
			}
			cp, err := a.repo.LoadCheckpoint(ctx)
			if err != nil {
				return err
			}

			button := engine.NewButton(cfg.ButtonLabel).State()
			page := pageFor(cfg, button, nil, describeCheckpoint(cp, len(cfg.Actions)))

			if outPath == "" || outPath == "-" {
				return htmlpage.Render(cmd.OutOrStdout(), page)
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			defer f.Close()
			return htmlpage.Render(f, page)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}
