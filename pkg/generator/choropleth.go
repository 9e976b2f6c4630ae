package generator

import (
	"math/rand/v2"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/shouni/chart-image-kit/pkg/imgutil"

	"gonum.org/v1/gonum/floats"
)

func synthChoropleth(r *rand.Rand, size Size, bg imgutil.RGBA) plan {
	states := append([]string(nil), domain.USStates...)
	values := randInts(r, len(states), 10, 100)

	return plan{
		spec: domain.ChartSpec{
			Mark:       domain.MarkTileMap,
			Width:      size.Width,
			Height:     size.Height,
			SizeTitle:  "Value",
			Categories: states,
			Series:     []domain.Series{{Name: "value", Values: values}},
			Scheme:     choroplethScheme,
			Background: bg.String(),
		},
		record: domain.ChartRecord{
			ChartType: domain.ChartChoropleth,
			AnswerKey: domain.AnswerMaxState,
			Answer:    states[floats.MaxIdx(values)],
			Variation: domain.Variation{ColorScheme: choroplethScheme, NumStates: len(states)},
		},
		overlay: true,
	}
}
