package generator

import (
	"math/rand/v2"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/shouni/chart-image-kit/pkg/utils"

	"gonum.org/v1/gonum/floats"
)

// drawGrid はカテゴリ優先の順で [lo, hi] の整数を引き、系列ごとの値に並べ直します。
func drawGrid(r *rand.Rand, numCategories, numSeries, lo, hi int) []domain.Series {
	names := domain.SeriesLabels(numSeries)
	series := make([]domain.Series, numSeries)
	for j := range series {
		series[j] = domain.Series{Name: names[j], Values: make([]float64, numCategories)}
	}
	for i := 0; i < numCategories; i++ {
		for j := range series {
			series[j].Values[i] = float64(utils.RandInt(r, lo, hi))
		}
	}
	return series
}

func synthStackedBar(r *rand.Rand, o domain.StackedBarOptions, size Size) plan {
	categories := domain.LetterLabels(o.NumCategories)
	series := drawGrid(r, o.NumCategories, o.NumSeries, 10, 60)
	answer := categories[floats.MaxIdx(categoryTotals(series, o.NumCategories))]
	scheme := utils.Choice(r, stackedSchemes)

	return plan{
		spec: domain.ChartSpec{
			Mark:       domain.MarkStackedBar,
			Width:      size.Width,
			Height:     size.Height,
			XTitle:     "Category",
			YTitle:     "Value",
			Categories: categories,
			Series:     series,
			Scheme:     scheme,
		},
		record: domain.ChartRecord{
			ChartType: domain.ChartStackedBar,
			AnswerKey: domain.AnswerMaxCategory,
			Answer:    answer,
			Variation: domain.Variation{ColorScheme: scheme, NumSeries: o.NumSeries, NumCategories: o.NumCategories},
		},
		overlay: true,
	}
}

func synthStacked100(r *rand.Rand, o domain.Stacked100Options, size Size) plan {
	categories := domain.LetterLabels(o.NumCategories)
	series := drawGrid(r, o.NumCategories, o.NumSeries, 1, 100)
	totals := categoryTotals(series, o.NumCategories)

	best := domain.SegmentAnswer{}
	bestValue := -1.0
	for i, cat := range categories {
		for j := range series {
			p := series[j].Values[i] / totals[i]
			series[j].Values[i] = p
			if p > bestValue {
				bestValue = p
				best = domain.SegmentAnswer{Category: cat, Series: series[j].Name}
			}
		}
	}
	scheme := utils.Choice(r, stackedSchemes)

	return plan{
		spec: domain.ChartSpec{
			Mark:       domain.MarkNormalizedBar,
			Width:      size.Width,
			Height:     size.Height,
			XTitle:     "Category",
			YTitle:     "Proportion",
			Categories: categories,
			Series:     series,
			Scheme:     scheme,
		},
		record: domain.ChartRecord{
			ChartType: domain.ChartStacked100,
			AnswerKey: domain.AnswerMaxSegment,
			Answer:    best,
			Variation: domain.Variation{ColorScheme: scheme, NumSeries: o.NumSeries, NumCategories: o.NumCategories},
		},
		overlay: true,
	}
}

func synthStackedArea(r *rand.Rand, o domain.StackedAreaOptions, size Size) plan {
	// 系列ごとにカテゴリ A, B, ... を割り当て、系列優先の順で値を引く
	categories := domain.LetterLabels(o.NumSeries)
	series := make([]domain.Series, o.NumSeries)
	totals := make([]float64, o.NumSeries)
	for i, cat := range categories {
		series[i] = domain.Series{Name: cat, Values: randInts(r, o.NumPoints, 10, 50)}
		totals[i] = floats.Sum(series[i].Values)
	}
	answer := categories[floats.MaxIdx(totals)]
	scheme := utils.Choice(r, stackedSchemes)

	return plan{
		spec: domain.ChartSpec{
			Mark:   domain.MarkStackedArea,
			Width:  size.Width,
			Height: size.Height,
			XTitle: "x",
			YTitle: "value",
			X:      positions(o.NumPoints),
			Series: series,
			Scheme: scheme,
		},
		record: domain.ChartRecord{
			ChartType: domain.ChartStackedArea,
			AnswerKey: domain.AnswerMaxCategory,
			Answer:    answer,
			Variation: domain.Variation{ColorScheme: scheme, NumSeries: o.NumSeries, NumPoints: o.NumPoints},
		},
		overlay: true,
	}
}
