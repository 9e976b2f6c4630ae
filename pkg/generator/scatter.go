package generator

import (
	"math"
	"math/rand/v2"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/shouni/chart-image-kit/pkg/utils"

	"gonum.org/v1/gonum/floats"
)

func synthScatter(r *rand.Rand, o domain.ScatterOptions, size Size) plan {
	// x をすべて引いてから y を引く
	xs := uniforms(r, o.NumPoints, 10, 100)
	ys := uniforms(r, o.NumPoints, 10, 100)

	distances := make([]float64, len(xs))
	points := make([]domain.Point, len(xs))
	for i := range xs {
		distances[i] = math.Hypot(xs[i], ys[i])
		points[i] = domain.Point{X: xs[i], Y: ys[i]}
	}
	farthestX := xs[floats.MaxIdx(distances)]

	xLabel := labelOr(o.Labels.XLabel, "x")
	yLabel := labelOr(o.Labels.YLabel, "y")
	color := utils.Choice(r, scatterColors)
	shape := utils.Choice(r, pointShapes)

	return plan{
		spec: domain.ChartSpec{
			Mark:   domain.MarkPoint,
			Width:  size.Width,
			Height: size.Height,
			Title:  labelOr(o.Labels.Title, "Scatter Plot between "+xLabel+" and "+yLabel),
			XTitle: xLabel,
			YTitle: yLabel,
			Points: points,
			Color:  color,
			Shape:  shape,
		},
		record: domain.ChartRecord{
			ChartType: domain.ChartScatter,
			AnswerKey: domain.AnswerFarthestX,
			Answer:    farthestX,
			Variation: domain.Variation{ColorScheme: color, PointShape: shape, NumPoints: o.NumPoints},
		},
		overlay: true,
	}
}
