package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/chart-image-kit/pkg/domain"
)

// requestFlags は generate と batch で共通のデータセット指定です。
type requestFlags struct {
	items        int
	question     string
	title        string
	xLabel       string
	yLabel       string
	sizeLabel    string
	categories   []string
	distribution string
	values       int
}

func (f *requestFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVarP(&f.items, "items", "n", 0, "Number of bars/slices/points/categories/bins (0 = type default)")
	fl.StringVar(&f.question, "question", "", "Question text (default: per-type template)")
	fl.StringVar(&f.title, "title", "", "Chart title override")
	fl.StringVar(&f.xLabel, "x-label", "", "X axis label override")
	fl.StringVar(&f.yLabel, "y-label", "", "Y axis (value) label override")
	fl.StringVar(&f.sizeLabel, "size-label", "", "Bubble size label override")
	fl.StringSliceVar(&f.categories, "categories", nil, "Category names (used when the count matches)")
	fl.StringVar(&f.distribution, "distribution", "", "Histogram distribution: gaussian, uniform, exponential, bimodal")
	fl.IntVar(&f.values, "values", 0, "Number of histogram samples (0 = default)")
}

// options は種別に応じたオプションを組み立てます。種別に関係しないフラグは無視されます。
func (f *requestFlags) options(t domain.ChartType) (domain.ChartOptions, error) {
	opts, err := domain.OptionsForItems(t, f.items)
	if err != nil {
		return nil, err
	}
	labels := domain.AxisLabels{Title: f.title, XLabel: f.xLabel, YLabel: f.yLabel, SizeLabel: f.sizeLabel}

	switch o := opts.(type) {
	case domain.BarOptions:
		o.Categories, o.Labels = f.categories, labels
		return o, nil
	case domain.PieOptions:
		o.Categories, o.Labels = f.categories, labels
		return o, nil
	case domain.BubbleOptions:
		o.Categories, o.Labels = f.categories, labels
		return o, nil
	case domain.ScatterOptions:
		o.Labels = labels
		return o, nil
	case domain.LineOptions:
		o.Labels = labels
		return o, nil
	case domain.AreaOptions:
		o.Labels = labels
		return o, nil
	case domain.HistogramOptions:
		o.Labels = labels
		o.NumValues = f.values
		if f.distribution != "" {
			d, err := domain.ParseDistribution(f.distribution)
			if err != nil {
				return nil, err
			}
			o.Distribution = d
		}
		return o, nil
	}
	return opts, nil
}

func (f *requestFlags) request(t domain.ChartType, seed int64) (domain.ChartRequest, error) {
	opts, err := f.options(t)
	if err != nil {
		return domain.ChartRequest{}, err
	}
	return domain.ChartRequest{Seed: &seed, Question: f.question, Options: opts}, nil
}

func (a *App) newGenerateCmd() *cobra.Command {
	var (
		chartType string
		seed      int64
		rf        requestFlags
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one chart image and its metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseChartType(chartType)
			if err != nil {
				return err
			}
			req, err := rf.request(t, seed)
			if err != nil {
				return err
			}
			core, err := a.newCore()
			if err != nil {
				return err
			}

			res, err := core.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "image:    %s\n", res.ImagePath)
			fmt.Fprintf(a.stdout, "metadata: %s\n", res.MetadataPath)
			fmt.Fprintf(a.stdout, "answer:   %v\n", res.Record.Answer)
			return nil
		},
	}

	cmd.Flags().StringVarP(&chartType, "type", "t", string(domain.ChartBar), "Chart type")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "Random seed")
	rf.register(cmd)
	return cmd
}
