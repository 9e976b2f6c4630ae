package generator

import (
	"context"
	"math/rand/v2"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/shouni/chart-image-kit/pkg/utils"

	"gonum.org/v1/gonum/floats"
)

func synthBubble(ctx context.Context, r *rand.Rand, o domain.BubbleOptions, size Size) plan {
	xLabel := labelOr(o.Labels.XLabel, "x")
	yLabel := labelOr(o.Labels.YLabel, "y")
	sizeLabel := labelOr(o.Labels.SizeLabel, "size")
	labels := resolveCategories(ctx, o.Categories, o.NumPoints)

	xs := uniforms(r, o.NumPoints, 0, 100)
	ys := uniforms(r, o.NumPoints, 0, 100)
	sizes := randInts(r, o.NumPoints, 20, 200)

	points := make([]domain.Point, o.NumPoints)
	for i := range points {
		points[i] = domain.Point{X: xs[i], Y: ys[i], Size: sizes[i], Label: labels[i]}
	}
	largest := labels[floats.MaxIdx(sizes)]
	scheme := utils.Choice(r, bubbleSchemes)

	return plan{
		spec: domain.ChartSpec{
			Mark:      domain.MarkCircle,
			Width:     size.Width,
			Height:    size.Height,
			Title:     labelOr(o.Labels.Title, "Bubble Chart between "+xLabel+" and "+yLabel+" over "+sizeLabel),
			XTitle:    xLabel,
			YTitle:    yLabel,
			SizeTitle: sizeLabel,
			Points:    points,
			Scheme:    scheme,
		},
		record: domain.ChartRecord{
			ChartType: domain.ChartBubble,
			AnswerKey: domain.AnswerMaxLabel,
			Answer:    largest,
			Variation: domain.Variation{ColorScheme: scheme, NumPoints: o.NumPoints},
		},
		overlay: true,
	}
}
