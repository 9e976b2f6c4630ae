package generator

import (
	"context"
	"math/rand/v2"
	"sort"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/shouni/chart-image-kit/pkg/utils"

	"gonum.org/v1/gonum/floats"
)

func synthBar(ctx context.Context, r *rand.Rand, o domain.BarOptions, size Size) plan {
	xLabel := labelOr(o.Labels.XLabel, "Category")
	yLabel := labelOr(o.Labels.YLabel, "Value")
	categories := resolveCategories(ctx, o.Categories, o.NumBars)
	values := randInts(r, len(categories), 10, 100)

	scheme := utils.Choice(r, barSchemes)
	sorted := utils.Choice(r, []bool{true, false})
	orientation := utils.Choice(r, orientations)

	if sorted {
		sortByValue(categories, values)
	}
	answer := categories[floats.MaxIdx(values)]

	return plan{
		spec: domain.ChartSpec{
			Mark:       domain.MarkBar,
			Width:      size.Width,
			Height:     size.Height,
			Title:      labelOr(o.Labels.Title, "Bar Chart of "+yLabel),
			XTitle:     xLabel,
			YTitle:     yLabel,
			Horizontal: orientation == "horizontal",
			Categories: categories,
			Series:     []domain.Series{{Name: yLabel, Values: values}},
			Scheme:     scheme,
		},
		record: domain.ChartRecord{
			ChartType: domain.ChartBar,
			AnswerKey: domain.AnswerMaxCategory,
			Answer:    answer,
			Variation: domain.Variation{
				ColorScheme: scheme,
				Sorted:      &sorted,
				Orientation: orientation,
				NumBars:     o.NumBars,
			},
		},
		overlay: true,
	}
}

// sortByValue は値の昇順にカテゴリと値を並べ替えます。同値は元の順序を保ちます。
func sortByValue(categories []string, values []float64) {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	cats := make([]string, len(categories))
	vals := make([]float64, len(values))
	for i, j := range idx {
		cats[i] = categories[j]
		vals[i] = values[j]
	}
	copy(categories, cats)
	copy(values, vals)
}
