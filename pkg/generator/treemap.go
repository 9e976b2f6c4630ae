package generator

import (
	"math/rand/v2"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/shouni/chart-image-kit/pkg/imgutil"

	"gonum.org/v1/gonum/floats"
)

// synthTreemap は背景色としてオーバーレイ色を使い、正規化時のオーバーレイは行いません。
func synthTreemap(r *rand.Rand, o domain.TreemapOptions, size Size, bg imgutil.RGBA) plan {
	categories := domain.LetterLabels(o.NumCategories)
	values := randInts(r, o.NumCategories, 10, 100)
	background := bg.String()

	return plan{
		spec: domain.ChartSpec{
			Mark:       domain.MarkTreemap,
			Width:      size.Width,
			Height:     size.Height,
			Categories: categories,
			Series:     []domain.Series{{Name: "value", Values: values}},
			Scheme:     treemapScheme,
			Background: background,
		},
		record: domain.ChartRecord{
			ChartType: domain.ChartTreemap,
			AnswerKey: domain.AnswerMaxCategory,
			Answer:    categories[floats.MaxIdx(values)],
			Variation: domain.Variation{NumCategories: o.NumCategories, BackgroundColor: background},
		},
		overlay: false,
	}
}
