package generator

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/shouni/chart-image-kit/pkg/imgutil"
)

// plan は合成したデータから作った描画定義とメタデータです。
// Filename と Question は Generate が埋めます。
type plan struct {
	spec    domain.ChartSpec
	record  domain.ChartRecord
	overlay bool // false の場合、正規化時にオーバーレイを重ねない
}

// synthesize はオプションの型に応じてデータセットを合成します。
func synthesize(ctx context.Context, r *rand.Rand, opts domain.ChartOptions, size Size, bg imgutil.RGBA) (plan, error) {
	switch o := opts.(type) {
	case domain.BarOptions:
		return synthBar(ctx, r, o.WithDefaults(), size), nil
	case domain.PieOptions:
		return synthPie(ctx, r, o.WithDefaults(), size), nil
	case domain.ScatterOptions:
		return synthScatter(r, o.WithDefaults(), size), nil
	case domain.LineOptions:
		return synthLine(r, o.WithDefaults(), size), nil
	case domain.AreaOptions:
		return synthArea(r, o.WithDefaults(), size), nil
	case domain.BubbleOptions:
		return synthBubble(ctx, r, o.WithDefaults(), size), nil
	case domain.StackedBarOptions:
		return synthStackedBar(r, o.WithDefaults(), size), nil
	case domain.Stacked100Options:
		return synthStacked100(r, o.WithDefaults(), size), nil
	case domain.StackedAreaOptions:
		return synthStackedArea(r, o.WithDefaults(), size), nil
	case domain.TreemapOptions:
		return synthTreemap(r, o.WithDefaults(), size, bg), nil
	case domain.HistogramOptions:
		return synthHistogram(r, o.WithDefaults(), size)
	case domain.ChoroplethOptions:
		return synthChoropleth(r, size, bg), nil
	}
	return plan{}, fmt.Errorf("%w: options %T", domain.ErrUnsupportedChartType, opts)
}
