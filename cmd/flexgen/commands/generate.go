package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/flexgen/internal/app"
	"go.trai.ch/flexgen/internal/core/domain"
	"go.trai.ch/flexgen/internal/engine/generator"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [projects...]",
		Short: "Run plugin goals for projects and their modules",
		Long: "Run plugin goals for the given projects and all of their modules.\n" +
			"A project is a project.yaml file or a directory containing one.\n" +
			"Without arguments the project in the workspace root is used.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			goals, _ := cmd.Flags().GetString("goals")
			force, _ := cmd.Flags().GetBool("force")
			parallelism, _ := cmd.Flags().GetInt("parallelism")
			showMetrics, _ := cmd.Flags().GetBool("metrics")

			opts := app.GenerateOptions{
				Goals:       goals,
				Force:       force,
				Parallelism: parallelism,
			}
			if showMetrics {
				opts.Metrics = cmd.ErrOrStderr()
			}

			report, err := c.app.Generate(cmd.Context(), configPath, args, opts)
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}
	cmd.Flags().StringP("goals", "g", generator.DefaultGoals, "Glob selecting the goals to run")
	cmd.Flags().BoolP("force", "f", false, "Run goals even when their outputs are up to date")
	cmd.Flags().IntP("parallelism", "j", 0, "Maximum concurrent steps (default from configuration)")
	cmd.Flags().Bool("metrics", false, "Print cache and pool counters after the run")
	return cmd
}

func printReport(w io.Writer, report *generator.Report) {
	for _, step := range report.Steps {
		_, _ = fmt.Fprintf(w, "%-9s %s %s\n", step.Status, step.Project.Coordinates, step.Identity)
	}
	_, _ = fmt.Fprintf(w, "%d projects, %d completed, %d up to date, %d failed\n",
		len(report.Projects),
		report.Count(domain.StepStatusCompleted),
		report.Count(domain.StepStatusCached),
		report.Count(domain.StepStatusFailed),
	)
}
