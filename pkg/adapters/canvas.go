package adapters

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/shouni/chart-image-kit/pkg/domain"

	"github.com/fogleman/gg"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font/basicfont"
)

const titleBand = 24.0

func newCanvas(spec domain.ChartSpec, background drawing.Color) *gg.Context {
	dc := gg.NewContext(spec.Width, spec.Height)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(background)
	dc.Clear()
	return dc
}

func drawTitle(dc *gg.Context, title string) {
	if title == "" {
		return
	}
	dc.SetColor(drawing.ColorBlack)
	dc.DrawStringAnchored(title, float64(dc.Width())/2, titleBand/2, 0.5, 0.5)
}

// renderTreemap はカテゴリの値に比例した面積の矩形で画面を分割します。
// 背景色は spec.Background で塗ります。
func renderTreemap(spec domain.ChartSpec, w io.Writer) error {
	if err := requireCategories(spec); err != nil {
		return err
	}
	colors, err := schemeColors(spec.Scheme, len(spec.Categories))
	if err != nil {
		return err
	}
	bg, err := colorOr(spec.Background, "white")
	if err != nil {
		return err
	}

	dc := newCanvas(spec, bg)
	top := 0.0
	if spec.Title != "" {
		top = titleBand
		drawTitle(dc, spec.Title)
	}

	bounds := rect{X: 0, Y: top, W: float64(spec.Width), H: float64(spec.Height) - top}
	cells := squarify(spec.Values(), bounds)
	for i, cell := range cells {
		dc.DrawRectangle(cell.X, cell.Y, cell.W, cell.H)
		dc.SetColor(colors[i])
		dc.FillPreserve()
		dc.SetColor(bg)
		dc.SetLineWidth(2)
		dc.Stroke()

		label := spec.Categories[i]
		if tw, th := dc.MeasureString(label); tw+4 < cell.W && th+4 < cell.H {
			dc.SetColor(drawing.ColorBlack)
			dc.DrawStringAnchored(label, cell.X+cell.W/2, cell.Y+cell.H/2, 0.5, 0.5)
		}
	}
	return dc.EncodePNG(w)
}

// renderTileMap は州ごとのタイルを値に応じた Blues の濃淡で塗ります。
// 凡例は下部に描きます。
func renderTileMap(spec domain.ChartSpec, w io.Writer) error {
	if err := requireCategories(spec); err != nil {
		return err
	}
	for _, st := range spec.Categories {
		if _, ok := stateTiles[st]; !ok {
			return fmt.Errorf("%w: no tile for state %q", ErrInvalidSpec, st)
		}
	}

	values := spec.Values()
	lo, hi := slices.Min(values), slices.Max(values)
	scale := func(v float64) float64 {
		if hi == lo {
			return 1
		}
		return (v - lo) / (hi - lo)
	}

	bg, err := colorOr(spec.Background, "white")
	if err != nil {
		return err
	}
	dc := newCanvas(spec, bg)
	drawTitle(dc, spec.Title)

	const legendBand = 40.0
	const margin = 10.0
	gridW := float64(spec.Width) - 2*margin
	gridH := float64(spec.Height) - titleBand - legendBand - margin
	cell := math.Min(gridW/tileCols, gridH/tileRows)
	originX := (float64(spec.Width) - cell*tileCols) / 2
	originY := titleBand + (gridH-cell*tileRows)/2

	for i, st := range spec.Categories {
		t := stateTiles[st]
		x := originX + float64(t.Col)*cell
		y := originY + float64(t.Row)*cell
		shade := scale(values[i])

		dc.DrawRectangle(x+1, y+1, cell-2, cell-2)
		dc.SetColor(bluesAt(shade))
		dc.Fill()

		if shade > 0.5 {
			dc.SetColor(drawing.ColorWhite)
		} else {
			dc.SetColor(drawing.ColorBlack)
		}
		dc.DrawStringAnchored(st, x+cell/2, y+cell/2, 0.5, 0.5)
	}

	drawBluesLegend(dc, spec, lo, hi, legendBand)
	return dc.EncodePNG(w)
}

// drawBluesLegend は画面下部に連続値の凡例を描きます。
func drawBluesLegend(dc *gg.Context, spec domain.ChartSpec, lo, hi, band float64) {
	barW := float64(spec.Width) * 0.6
	barH := 10.0
	x0 := (float64(spec.Width) - barW) / 2
	y0 := float64(spec.Height) - band + 6

	steps := int(barW)
	for i := 0; i < steps; i++ {
		dc.DrawRectangle(x0+float64(i), y0, 1, barH)
		dc.SetColor(bluesAt(float64(i) / float64(steps-1)))
		dc.Fill()
	}

	dc.SetColor(drawing.ColorBlack)
	dc.DrawStringAnchored(formatTick(lo), x0, y0+barH+10, 0.5, 0.5)
	dc.DrawStringAnchored(formatTick(hi), x0+barW, y0+barH+10, 0.5, 0.5)
	if spec.SizeTitle != "" {
		dc.DrawStringAnchored(spec.SizeTitle, x0+barW/2, y0+barH+10, 0.5, 0.5)
	}
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
