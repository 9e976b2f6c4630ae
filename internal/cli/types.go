package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/shouni/chart-image-kit/pkg/generator"
)

func (a *App) newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported chart types and their default questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := generator.DefaultSettings()
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tSIZE\tQUESTION")
			for _, t := range domain.AllChartTypes() {
				s := defaults.SizeFor(t)
				fmt.Fprintf(tw, "%s\t%dx%d\t%s\n", t, s.Width, s.Height, generator.DefaultQuestions[t])
			}
			return tw.Flush()
		},
	}
}
