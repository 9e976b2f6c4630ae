package generator

import (
	"math/rand/v2"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/shouni/chart-image-kit/pkg/utils"

	"gonum.org/v1/gonum/floats"
)

// trendData は x = 1..n と [10, 100] の整数 y を引き、y が最大となる x を返します。
func trendData(r *rand.Rand, n int) (xs, ys []float64, maxX int) {
	xs = positions(n)
	ys = randInts(r, n, 10, 100)
	return xs, ys, int(xs[floats.MaxIdx(ys)])
}

func synthLine(r *rand.Rand, o domain.LineOptions, size Size) plan {
	xs, ys, maxX := trendData(r, o.NumPoints)
	color := utils.Choice(r, lineColors)
	xLabel := labelOr(o.Labels.XLabel, "x")
	yLabel := labelOr(o.Labels.YLabel, "y")

	return plan{
		spec: domain.ChartSpec{
			Mark:   domain.MarkLine,
			Width:  size.Width,
			Height: size.Height,
			Title:  labelOr(o.Labels.Title, "Line Chart between "+xLabel+" and "+yLabel),
			XTitle: xLabel,
			YTitle: yLabel,
			X:      xs,
			Series: []domain.Series{{Name: yLabel, Values: ys}},
			Color:  color,
		},
		record: domain.ChartRecord{
			ChartType: domain.ChartLine,
			AnswerKey: domain.AnswerMaxX,
			Answer:    maxX,
			Variation: domain.Variation{Color: color, NumPoints: o.NumPoints},
		},
		overlay: true,
	}
}

func synthArea(r *rand.Rand, o domain.AreaOptions, size Size) plan {
	xs, ys, maxX := trendData(r, o.NumPoints)
	color := utils.Choice(r, areaColors)
	xLabel := labelOr(o.Labels.XLabel, "x")
	yLabel := labelOr(o.Labels.YLabel, "y")

	return plan{
		spec: domain.ChartSpec{
			Mark:   domain.MarkArea,
			Width:  size.Width,
			Height: size.Height,
			Title:  o.Labels.Title,
			XTitle: xLabel,
			YTitle: yLabel,
			X:      xs,
			Series: []domain.Series{{Name: yLabel, Values: ys}},
			Color:  color,
		},
		record: domain.ChartRecord{
			ChartType: domain.ChartArea,
			AnswerKey: domain.AnswerMaxX,
			Answer:    maxX,
			Variation: domain.Variation{ColorScheme: color, NumPoints: o.NumPoints},
		},
		overlay: true,
	}
}
