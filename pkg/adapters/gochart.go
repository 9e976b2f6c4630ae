package adapters

import (
	"fmt"
	"io"
	"slices"

	"github.com/shouni/chart-image-kit/pkg/domain"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// renderPie はカテゴリごとの扇形で円グラフを描画します。
func renderPie(spec domain.ChartSpec, w io.Writer) error {
	if err := requireCategories(spec); err != nil {
		return err
	}
	colors, err := schemeColors(spec.Scheme, len(spec.Categories))
	if err != nil {
		return err
	}

	values := make([]chart.Value, len(spec.Categories))
	for i, v := range spec.Values() {
		values[i] = chart.Value{
			Label: spec.Categories[i],
			Value: v,
			Style: chart.Style{FillColor: colors[i], StrokeColor: drawing.ColorWhite, StrokeWidth: 1},
		}
	}

	pie := chart.PieChart{
		Title:  spec.Title,
		Width:  spec.Width,
		Height: spec.Height,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

// renderLine は点付きの折れ線グラフを描画します。
func renderLine(spec domain.ChartSpec, w io.Writer) error {
	return renderTrend(spec, w, false)
}

// renderArea は塗りつぶした面グラフを描画します。
func renderArea(spec domain.ChartSpec, w io.Writer) error {
	return renderTrend(spec, w, true)
}

func renderTrend(spec domain.ChartSpec, w io.Writer, filled bool) error {
	if len(spec.X) < 2 {
		return fmt.Errorf("%w: at least two x values are required", ErrInvalidSpec)
	}
	if err := requireSeries(spec, len(spec.X)); err != nil {
		return err
	}
	c, err := colorOr(spec.Color, "#1f77b4")
	if err != nil {
		return err
	}

	style := chart.Style{StrokeColor: c, StrokeWidth: 2}
	if filled {
		style.FillColor = c.WithAlpha(200)
	} else {
		style.DotColor = c
		style.DotWidth = 3
	}

	graph := chart.Chart{
		Title:  spec.Title,
		Width:  spec.Width,
		Height: spec.Height,
		XAxis: chart.XAxis{
			Name:  spec.XTitle,
			Range: &chart.ContinuousRange{Min: spec.X[0], Max: spec.X[len(spec.X)-1]},
		},
		YAxis: chart.YAxis{
			Name:  spec.YTitle,
			Range: &chart.ContinuousRange{Min: 0, Max: headroom(slices.Max(spec.Values()))},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    spec.YTitle,
				Style:   style,
				XValues: spec.X,
				YValues: spec.Values(),
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

// renderStackedArea は系列を累積した面グラフを凡例付きで描画します。
// 上の層から順に塗り、下の層が手前に来るようにします。
func renderStackedArea(spec domain.ChartSpec, w io.Writer) error {
	if len(spec.X) < 2 {
		return fmt.Errorf("%w: at least two x values are required", ErrInvalidSpec)
	}
	if err := requireSeries(spec, len(spec.X)); err != nil {
		return err
	}
	colors, err := schemeColors(spec.Scheme, len(spec.Series))
	if err != nil {
		return err
	}

	cumulative := make([][]float64, len(spec.Series))
	for i, s := range spec.Series {
		cumulative[i] = make([]float64, len(s.Values))
		for j, v := range s.Values {
			cumulative[i][j] = v
			if i > 0 {
				cumulative[i][j] += cumulative[i-1][j]
			}
		}
	}

	series := make([]chart.Series, 0, len(spec.Series))
	for i := len(spec.Series) - 1; i >= 0; i-- {
		series = append(series, chart.ContinuousSeries{
			Name:    spec.Series[i].Name,
			Style:   chart.Style{StrokeColor: colors[i], StrokeWidth: 1, FillColor: colors[i]},
			XValues: spec.X,
			YValues: cumulative[i],
		})
	}

	graph := chart.Chart{
		Title:      spec.Title,
		Width:      spec.Width,
		Height:     spec.Height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 10, Bottom: 10}},
		XAxis: chart.XAxis{
			Name:  spec.XTitle,
			Range: &chart.ContinuousRange{Min: spec.X[0], Max: spec.X[len(spec.X)-1]},
		},
		YAxis: chart.YAxis{
			Name:  spec.YTitle,
			Range: &chart.ContinuousRange{Min: 0, Max: headroom(slices.Max(cumulative[len(cumulative)-1]))},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}

// renderNormalizedBar は各カテゴリの合計を100%とした積み上げ棒グラフを描画します。
func renderNormalizedBar(spec domain.ChartSpec, w io.Writer) error {
	if len(spec.Categories) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidSpec)
	}
	if err := requireSeries(spec, len(spec.Categories)); err != nil {
		return err
	}
	colors, err := schemeColors(spec.Scheme, len(spec.Series))
	if err != nil {
		return err
	}

	slot := max((spec.Width-80)/len(spec.Categories), 2)
	barWidth := max(slot*3/5, 1)
	bars := make([]chart.StackedBar, len(spec.Categories))
	for i, cat := range spec.Categories {
		values := make([]chart.Value, len(spec.Series))
		for j, s := range spec.Series {
			values[j] = chart.Value{
				Label: s.Name,
				Value: s.Values[i],
				Style: chart.Style{FillColor: colors[j], StrokeColor: drawing.ColorWhite, StrokeWidth: 1},
			}
		}
		bars[i] = chart.StackedBar{Name: cat, Width: barWidth, Values: values}
	}

	sbc := chart.StackedBarChart{
		Title:      spec.Title,
		Width:      spec.Width,
		Height:     spec.Height,
		BarSpacing: max(slot-barWidth, 1),
		Background: chart.Style{Padding: chart.Box{Top: 30, Left: 10, Right: 10, Bottom: 10}},
		Bars:       bars,
	}
	return sbc.Render(chart.PNG, w)
}

// headroom は最大値に1割の余白を足した軸の上限を返します。
func headroom(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v * 1.1
}
