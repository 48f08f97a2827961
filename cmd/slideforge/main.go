// Command slideforge inspects and controls a slide-generation pipeline
// project: it reports detected progress, shows persisted workflow state,
// and scaffolds configuration. Running the pipeline itself requires a
// host that registers concrete skills; see examples/basic_pipeline.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/slideforge/slideforge/pkg/config"
	"github.com/slideforge/slideforge/pkg/detect"
	"github.com/slideforge/slideforge/pkg/workflow"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "slideforge",
		Short:        "Controller for the slide-generation pipeline",
		SilenceUsage: true,
	}

	root.AddCommand(newInitCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newStateCmd())
	return root
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default slideforge.yaml into the project directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			path := filepath.Join(dir, "slideforge.yaml")
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [dir]",
		Short: "Scan a project directory and report pipeline progress",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			state := detect.NewDetector(dir).Scan()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Step %d of %d", state.CurrentStep, detect.TotalSteps)
			if state.LastCompletedPhase != "" {
				fmt.Fprintf(out, " (last completed phase: %s)", state.LastCompletedPhase)
			}
			fmt.Fprintln(out)

			names := make([]string, 0, len(state.Artifacts))
			for name := range state.Artifacts {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				info := state.Artifacts[name]
				mark := " "
				switch {
				case info.IsValid:
					mark = "x"
				case info.Exists:
					mark = "!"
				}
				fmt.Fprintf(out, "  [%s] %-13s %s", mark, name, info.Path)
				if info.Error != "" {
					fmt.Fprintf(out, " (%s)", info.Error)
				}
				fmt.Fprintln(out)
			}

			fmt.Fprintln(out, "Next:", state.NextStep)
			return nil
		},
	}
}

func newStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state <file>",
		Short: "Show a persisted workflow-state file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := workflow.LoadState(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "workflow:", saved.WorkflowID)
			for _, sp := range saved.CompletedPhases {
				status := "failed"
				if sp.Success {
					status = "ok"
				}
				fmt.Fprintf(out, "  %-10s %-7s artifacts=%d errors=%d\n", sp.Phase, status, len(sp.Artifacts), len(sp.Errors))
			}
			if last, ok := saved.LastSuccessfulPhase(); ok {
				fmt.Fprintln(out, "last successful phase:", last)
			}
			return nil
		},
	}
}
