package adapters

import (
	"fmt"
	"io"
	"math"

	"github.com/shouni/chart-image-kit/pkg/domain"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// plotDPI は gonum/plot の長さ単位をピクセルへ換算する解像度です。
const plotDPI = 96

func px(n int) vg.Length {
	return vg.Length(n) * vg.Inch / plotDPI
}

func newPlot(spec domain.ChartSpec) *plot.Plot {
	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XTitle
	p.Y.Label.Text = spec.YTitle
	return p
}

// savePlot は spec の幅・高さのピクセル数で PNG を書き出します。
func savePlot(p *plot.Plot, spec domain.ChartSpec, w io.Writer) error {
	c := vgimg.NewWith(vgimg.UseWH(px(spec.Width), px(spec.Height)), vgimg.UseDPI(plotDPI))
	p.Draw(draw.New(c))
	_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return err
}

// renderBar はカテゴリごとに色分けした棒グラフを描画します。
func renderBar(spec domain.ChartSpec, w io.Writer) error {
	if err := requireCategories(spec); err != nil {
		return err
	}
	colors, err := schemeColors(spec.Scheme, len(spec.Categories))
	if err != nil {
		return err
	}

	p := newPlot(spec)
	barWidth := barWidthFor(spec, len(spec.Categories))
	for i, v := range spec.Values() {
		bar, err := plotter.NewBarChart(plotter.Values{v}, barWidth)
		if err != nil {
			return err
		}
		bar.XMin = float64(i)
		bar.Color = colors[i]
		bar.LineStyle.Width = 0
		bar.Horizontal = spec.Horizontal
		p.Add(bar)
	}

	if spec.Horizontal {
		p.NominalY(spec.Categories...)
		p.X.Min = 0
	} else {
		p.NominalX(spec.Categories...)
		p.Y.Min = 0
	}
	return savePlot(p, spec, w)
}

// renderStackedBar は系列を積み上げた棒グラフを凡例付きで描画します。
func renderStackedBar(spec domain.ChartSpec, w io.Writer) error {
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

	p := newPlot(spec)
	p.Legend.Top = true
	var below *plotter.BarChart
	for i, s := range spec.Series {
		bar, err := plotter.NewBarChart(plotter.Values(s.Values), barWidthFor(spec, len(spec.Categories)))
		if err != nil {
			return err
		}
		bar.Color = colors[i]
		bar.LineStyle.Width = 0
		if below != nil {
			bar.StackOn(below)
		}
		below = bar
		p.Add(bar)
		p.Legend.Add(s.Name, bar)
	}
	p.NominalX(spec.Categories...)
	p.Y.Min = 0
	return savePlot(p, spec, w)
}

// renderHistogram は Samples を Bins 個の等幅ビンに分けて描画します。
func renderHistogram(spec domain.ChartSpec, w io.Writer) error {
	if len(spec.Samples) == 0 || spec.Bins <= 0 {
		return fmt.Errorf("%w: histogram needs samples and bins", ErrInvalidSpec)
	}
	hist, err := plotter.NewHist(plotter.Values(spec.Samples), spec.Bins)
	if err != nil {
		return err
	}
	c, err := colorOr(spec.Color, "#4c78a8")
	if err != nil {
		return err
	}
	hist.FillColor = c
	hist.LineStyle.Color = withAlpha(c, 1)
	hist.LineStyle.Width = vg.Points(0.5)

	p := newPlot(spec)
	p.Add(hist)
	p.Y.Min = 0
	return savePlot(p, spec, w)
}

// renderScatter は単色・単一形状の散布図を描画します。
func renderScatter(spec domain.ChartSpec, w io.Writer) error {
	if len(spec.Points) == 0 {
		return fmt.Errorf("%w: no points", ErrInvalidSpec)
	}
	c, err := colorOr(spec.Color, "blue")
	if err != nil {
		return err
	}
	shape, err := glyphShape(spec.Shape)
	if err != nil {
		return err
	}

	sc, err := plotter.NewScatter(pointsXY(spec.Points))
	if err != nil {
		return err
	}
	sc.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(3.5), Shape: shape}

	p := newPlot(spec)
	p.Add(sc)
	return savePlot(p, spec, w)
}

// renderBubble は点の大きさを面積で表すバブルチャートを描画します。
func renderBubble(spec domain.ChartSpec, w io.Writer) error {
	if len(spec.Points) == 0 {
		return fmt.Errorf("%w: no points", ErrInvalidSpec)
	}
	colors, err := schemeColors(spec.Scheme, len(spec.Points))
	if err != nil {
		return err
	}

	maxSize := 0.0
	for _, pt := range spec.Points {
		maxSize = math.Max(maxSize, pt.Size)
	}

	sc, err := plotter.NewScatter(pointsXY(spec.Points))
	if err != nil {
		return err
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  withAlpha(colors[i], 0.7),
			Radius: bubbleRadius(spec.Points[i].Size, maxSize),
			Shape:  draw.CircleGlyph{},
		}
	}

	p := newPlot(spec)
	p.Legend.Top = true
	p.Add(sc)
	for i, pt := range spec.Points {
		p.Legend.Add(pt.Label, legendGlyph{draw.GlyphStyle{Color: withAlpha(colors[i], 0.7), Radius: vg.Points(3), Shape: draw.CircleGlyph{}}})
	}
	return savePlot(p, spec, w)
}

// legendGlyph は凡例に丸い見本だけを描く Thumbnailer です。
type legendGlyph struct {
	style draw.GlyphStyle
}

func (g legendGlyph) Thumbnail(c *draw.Canvas) {
	c.DrawGlyph(g.style, c.Center())
}

// bubbleRadius は面積が size に比例する半径を返します。最大の点は 12pt です。
func bubbleRadius(size, maxSize float64) vg.Length {
	if maxSize <= 0 {
		return vg.Points(2)
	}
	return vg.Points(math.Max(2, 12*math.Sqrt(size/maxSize)))
}

func pointsXY(points []domain.Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}
	return xys
}

func glyphShape(name string) (draw.GlyphDrawer, error) {
	switch name {
	case "", "circle":
		return draw.CircleGlyph{}, nil
	case "square":
		return draw.BoxGlyph{}, nil
	case "triangle":
		return draw.PyramidGlyph{}, nil
	}
	return nil, fmt.Errorf("%w: unknown point shape %q", ErrInvalidSpec, name)
}

// barWidthFor はプロット領域に n 本の棒が収まる幅を返します。
func barWidthFor(spec domain.ChartSpec, n int) vg.Length {
	extent := spec.Width
	if spec.Horizontal {
		extent = spec.Height
	}
	// 軸とラベルの領域を除いた幅の6割を棒に割り当てる
	return px(extent) * 0.6 * 0.7 / vg.Length(max(n, 1))
}

func colorOr(s, def string) (drawing.Color, error) {
	if s == "" {
		s = def
	}
	return parseColor(s)
}
