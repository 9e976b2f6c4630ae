package generator

import (
	"context"
	"math/rand/v2"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/shouni/chart-image-kit/pkg/utils"

	"gonum.org/v1/gonum/floats"
)

func synthPie(ctx context.Context, r *rand.Rand, o domain.PieOptions, size Size) plan {
	xLabel := labelOr(o.Labels.XLabel, "Category")
	yLabel := labelOr(o.Labels.YLabel, "Value")
	categories := resolveCategories(ctx, o.Categories, o.NumSlices)
	values := randInts(r, len(categories), 10, 100)
	answer := categories[floats.MaxIdx(values)]
	scheme := utils.Choice(r, pieSchemes)

	return plan{
		spec: domain.ChartSpec{
			Mark:       domain.MarkArc,
			Width:      size.Width,
			Height:     size.Height,
			Title:      labelOr(o.Labels.Title, "Pie Chart of "+yLabel),
			XTitle:     xLabel,
			YTitle:     yLabel,
			Categories: categories,
			Series:     []domain.Series{{Name: yLabel, Values: values}},
			Scheme:     scheme,
		},
		record: domain.ChartRecord{
			ChartType: domain.ChartPie,
			AnswerKey: domain.AnswerMaxCategory,
			Answer:    answer,
			Variation: domain.Variation{ColorScheme: scheme, NumSlices: o.NumSlices},
		},
		overlay: true,
	}
}
