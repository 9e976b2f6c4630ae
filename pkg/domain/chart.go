package domain

import (
	"fmt"
	"strings"
)

// ChartType はデータセット生成器の種類を表します。
type ChartType string

const (
	ChartBar         ChartType = "bar"
	ChartPie         ChartType = "pie"
	ChartScatter     ChartType = "scatter"
	ChartLine        ChartType = "line"
	ChartArea        ChartType = "area"
	ChartBubble      ChartType = "bubble"
	ChartChoropleth  ChartType = "choropleth"
	ChartTreemap     ChartType = "treemap"
	ChartStackedBar  ChartType = "stacked_bar"
	ChartStacked100  ChartType = "stacked_bar_100"
	ChartStackedArea ChartType = "stacked_area"
	ChartHistogram   ChartType = "histogram"
)

// AllChartTypes はサポートしているチャート種別を固定順で返します。
func AllChartTypes() []ChartType {
	return []ChartType{
		ChartBar, ChartPie, ChartScatter, ChartLine, ChartArea, ChartBubble,
		ChartChoropleth, ChartTreemap, ChartStackedBar, ChartStacked100,
		ChartStackedArea, ChartHistogram,
	}
}

// ParseChartType は文字列をチャート種別に変換します。
// 大文字小文字と前後の空白は無視します。
func ParseChartType(s string) (ChartType, error) {
	name := ChartType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range AllChartTypes() {
		if t == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedChartType, s)
}

// Mark は描画バックエンドが解釈する図形の種類です。
type Mark string

const (
	MarkBar           Mark = "bar"
	MarkStackedBar    Mark = "stacked_bar"
	MarkNormalizedBar Mark = "normalized_bar"
	MarkArc           Mark = "arc"
	MarkPoint         Mark = "point"
	MarkCircle        Mark = "circle"
	MarkLine          Mark = "line"
	MarkArea          Mark = "area"
	MarkStackedArea   Mark = "stacked_area"
	MarkHistogram     Mark = "histogram"
	MarkTreemap       Mark = "treemap"
	MarkTileMap       Mark = "tile_map"
)

// Series は名前付きの数値列です。積み上げ系チャートで利用します。
type Series struct {
	Name   string
	Values []float64
}

// Point は散布図・バブルチャートの1点です。
type Point struct {
	X     float64
	Y     float64
	Size  float64
	Label string
}

// ChartSpec はレンダラーへ渡す抽象的なチャート定義です。
// Mark ごとに参照されるフィールドが異なります。
type ChartSpec struct {
	Mark   Mark
	Width  int
	Height int

	Title     string
	XTitle    string
	YTitle    string
	SizeTitle string

	Horizontal bool

	// Categories はカテゴリ軸のラベルです (bar, arc, stacked_*, treemap, tile_map)。
	Categories []string
	// Series は値の列です。単系列チャートでは Series[0] のみを使います。
	Series []Series
	// X は line/area/stacked_area の横軸の値です。
	X       []float64
	Points  []Point
	Samples []float64
	Bins    int

	Scheme     string
	Color      string
	Shape      string
	Background string
}

// Values は先頭系列の値を返します。系列がない場合は nil です。
func (s ChartSpec) Values() []float64 {
	if len(s.Series) == 0 {
		return nil
	}
	return s.Series[0].Values
}
