package domain

import (
	"fmt"
	"strings"
)

const (
	// MaxLetteredItems は A, B, C... と英字で命名する項目の上限です。
	MaxLetteredItems = 26
	// MaxItems は数値で命名する項目 (点、ビン) の上限です。
	MaxItems = 100
	// MaxSamples はヒストグラムの標本数の上限です。
	MaxSamples = 100000
)

// Distribution はヒストグラムの標本分布です。
type Distribution string

const (
	DistGaussian    Distribution = "gaussian"
	DistUniform     Distribution = "uniform"
	DistExponential Distribution = "exponential"
	DistBimodal     Distribution = "bimodal"
)

// ParseDistribution は分布名を検証して返します。
func ParseDistribution(s string) (Distribution, error) {
	switch d := Distribution(strings.ToLower(strings.TrimSpace(s))); d {
	case DistGaussian, DistUniform, DistExponential, DistBimodal:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDistribution, s)
}

// AxisLabels はタイトルと軸ラベルの上書き値です。空文字は既定値を意味します。
type AxisLabels struct {
	Title     string
	XLabel    string
	YLabel    string
	SizeLabel string
}

// ChartOptions はチャート種別ごとのオプションです。
// 実装はこのパッケージ内の型に限られます。
type ChartOptions interface {
	ChartType() ChartType
	Validate() error
	sealed()
}

// ChartRequest は1回の生成呼び出しの入力です。
type ChartRequest struct {
	Seed     *int64 // nil の場合は 0
	Question string // 空の場合は種別ごとの既定の質問文
	Options  ChartOptions
}

// BarOptions は棒グラフのオプションです。
type BarOptions struct {
	NumBars    int
	Categories []string
	Labels     AxisLabels
}

// PieOptions は円グラフのオプションです。
type PieOptions struct {
	NumSlices  int
	Categories []string
	Labels     AxisLabels
}

// ScatterOptions は散布図のオプションです。
type ScatterOptions struct {
	NumPoints int
	Labels    AxisLabels
}

// LineOptions は折れ線グラフのオプションです。
type LineOptions struct {
	NumPoints int
	Labels    AxisLabels
}

// AreaOptions は面グラフのオプションです。
type AreaOptions struct {
	NumPoints int
	Labels    AxisLabels
}

// BubbleOptions はバブルチャートのオプションです。
type BubbleOptions struct {
	NumPoints  int
	Categories []string
	Labels     AxisLabels
}

// StackedBarOptions は積み上げ棒グラフのオプションです。
type StackedBarOptions struct {
	NumCategories int
	NumSeries     int
}

// Stacked100Options は100%積み上げ棒グラフのオプションです。
type Stacked100Options struct {
	NumCategories int
	NumSeries     int
}

// StackedAreaOptions は積み上げ面グラフのオプションです。
type StackedAreaOptions struct {
	NumSeries int
	NumPoints int
}

// TreemapOptions はツリーマップのオプションです。
type TreemapOptions struct {
	NumCategories int
}

// HistogramOptions はヒストグラムのオプションです。
type HistogramOptions struct {
	NumBins      int
	NumValues    int
	Distribution Distribution
	Labels       AxisLabels
}

// ChoroplethOptions は米国50州のコロプレス図のオプションです。調整項目はありません。
type ChoroplethOptions struct{}

func (BarOptions) ChartType() ChartType         { return ChartBar }
func (PieOptions) ChartType() ChartType         { return ChartPie }
func (ScatterOptions) ChartType() ChartType     { return ChartScatter }
func (LineOptions) ChartType() ChartType        { return ChartLine }
func (AreaOptions) ChartType() ChartType        { return ChartArea }
func (BubbleOptions) ChartType() ChartType      { return ChartBubble }
func (StackedBarOptions) ChartType() ChartType  { return ChartStackedBar }
func (Stacked100Options) ChartType() ChartType  { return ChartStacked100 }
func (StackedAreaOptions) ChartType() ChartType { return ChartStackedArea }
func (TreemapOptions) ChartType() ChartType     { return ChartTreemap }
func (HistogramOptions) ChartType() ChartType   { return ChartHistogram }
func (ChoroplethOptions) ChartType() ChartType  { return ChartChoropleth }

func (BarOptions) sealed()         {}
func (PieOptions) sealed()         {}
func (ScatterOptions) sealed()     {}
func (LineOptions) sealed()        {}
func (AreaOptions) sealed()        {}
func (BubbleOptions) sealed()      {}
func (StackedBarOptions) sealed()  {}
func (Stacked100Options) sealed()  {}
func (StackedAreaOptions) sealed() {}
func (TreemapOptions) sealed()     {}
func (HistogramOptions) sealed()   {}
func (ChoroplethOptions) sealed()  {}

// WithDefaults はゼロ値の項目を既定値で埋めたコピーを返します。
func (o BarOptions) WithDefaults() BarOptions {
	o.NumBars = orDefault(o.NumBars, 4)
	return o
}

func (o PieOptions) WithDefaults() PieOptions {
	o.NumSlices = orDefault(o.NumSlices, 4)
	return o
}

func (o ScatterOptions) WithDefaults() ScatterOptions {
	o.NumPoints = orDefault(o.NumPoints, 10)
	return o
}

func (o LineOptions) WithDefaults() LineOptions {
	o.NumPoints = orDefault(o.NumPoints, 10)
	return o
}

func (o AreaOptions) WithDefaults() AreaOptions {
	o.NumPoints = orDefault(o.NumPoints, 10)
	return o
}

func (o BubbleOptions) WithDefaults() BubbleOptions {
	o.NumPoints = orDefault(o.NumPoints, 10)
	return o
}

func (o StackedBarOptions) WithDefaults() StackedBarOptions {
	o.NumCategories = orDefault(o.NumCategories, 4)
	o.NumSeries = orDefault(o.NumSeries, 3)
	return o
}

func (o Stacked100Options) WithDefaults() Stacked100Options {
	o.NumCategories = orDefault(o.NumCategories, 4)
	o.NumSeries = orDefault(o.NumSeries, 3)
	return o
}

func (o StackedAreaOptions) WithDefaults() StackedAreaOptions {
	o.NumSeries = orDefault(o.NumSeries, 3)
	o.NumPoints = orDefault(o.NumPoints, 10)
	return o
}

func (o TreemapOptions) WithDefaults() TreemapOptions {
	o.NumCategories = orDefault(o.NumCategories, 6)
	return o
}

func (o HistogramOptions) WithDefaults() HistogramOptions {
	o.NumBins = orDefault(o.NumBins, 10)
	o.NumValues = orDefault(o.NumValues, 100)
	if o.Distribution == "" {
		o.Distribution = DistGaussian
	}
	return o
}

func (o BarOptions) Validate() error {
	return checkCount("num_bars", o.WithDefaults().NumBars, 1, MaxLetteredItems)
}

func (o PieOptions) Validate() error {
	return checkCount("num_slices", o.WithDefaults().NumSlices, 1, MaxLetteredItems)
}

func (o ScatterOptions) Validate() error {
	return checkCount("num_points", o.WithDefaults().NumPoints, 1, MaxItems)
}

func (o LineOptions) Validate() error {
	return checkCount("num_points", o.WithDefaults().NumPoints, 2, MaxItems)
}

func (o AreaOptions) Validate() error {
	return checkCount("num_points", o.WithDefaults().NumPoints, 2, MaxItems)
}

func (o BubbleOptions) Validate() error {
	return checkCount("num_points", o.WithDefaults().NumPoints, 1, MaxLetteredItems)
}

func (o StackedBarOptions) Validate() error {
	o = o.WithDefaults()
	if err := checkCount("num_categories", o.NumCategories, 1, MaxLetteredItems); err != nil {
		return err
	}
	return checkCount("num_series", o.NumSeries, 1, MaxItems)
}

func (o Stacked100Options) Validate() error {
	o = o.WithDefaults()
	if err := checkCount("num_categories", o.NumCategories, 1, MaxLetteredItems); err != nil {
		return err
	}
	return checkCount("num_series", o.NumSeries, 1, MaxItems)
}

func (o StackedAreaOptions) Validate() error {
	o = o.WithDefaults()
	if err := checkCount("num_series", o.NumSeries, 1, MaxLetteredItems); err != nil {
		return err
	}
	return checkCount("num_points", o.NumPoints, 2, MaxItems)
}

func (o TreemapOptions) Validate() error {
	return checkCount("num_categories", o.WithDefaults().NumCategories, 1, MaxLetteredItems)
}

func (o HistogramOptions) Validate() error {
	o = o.WithDefaults()
	if err := checkCount("num_bins", o.NumBins, 1, MaxItems); err != nil {
		return err
	}
	if err := checkCount("num_values", o.NumValues, 1, MaxSamples); err != nil {
		return err
	}
	_, err := ParseDistribution(string(o.Distribution))
	return err
}

func (ChoroplethOptions) Validate() error { return nil }

// DefaultOptions は種別ごとの既定オプションを返します。
func DefaultOptions(t ChartType) (ChartOptions, error) {
	switch t {
	case ChartBar:
		return BarOptions{}.WithDefaults(), nil
	case ChartPie:
		return PieOptions{}.WithDefaults(), nil
	case ChartScatter:
		return ScatterOptions{}.WithDefaults(), nil
	case ChartLine:
		return LineOptions{}.WithDefaults(), nil
	case ChartArea:
		return AreaOptions{}.WithDefaults(), nil
	case ChartBubble:
		return BubbleOptions{}.WithDefaults(), nil
	case ChartStackedBar:
		return StackedBarOptions{}.WithDefaults(), nil
	case ChartStacked100:
		return Stacked100Options{}.WithDefaults(), nil
	case ChartStackedArea:
		return StackedAreaOptions{}.WithDefaults(), nil
	case ChartTreemap:
		return TreemapOptions{}.WithDefaults(), nil
	case ChartHistogram:
		return HistogramOptions{}.WithDefaults(), nil
	case ChartChoropleth:
		return ChoroplethOptions{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedChartType, t)
}

// OptionsForItems は「項目数」1つを種別ごとの主要な件数オプションへ割り当てます。
// コロプレス図は州の数が固定のため n を無視します。
func OptionsForItems(t ChartType, n int) (ChartOptions, error) {
	switch t {
	case ChartBar:
		return BarOptions{NumBars: n}, nil
	case ChartPie:
		return PieOptions{NumSlices: n}, nil
	case ChartScatter:
		return ScatterOptions{NumPoints: n}, nil
	case ChartLine:
		return LineOptions{NumPoints: n}, nil
	case ChartArea:
		return AreaOptions{NumPoints: n}, nil
	case ChartBubble:
		return BubbleOptions{NumPoints: n}, nil
	case ChartStackedBar:
		return StackedBarOptions{NumCategories: n}, nil
	case ChartStacked100:
		return Stacked100Options{NumCategories: n}, nil
	case ChartStackedArea:
		return StackedAreaOptions{NumPoints: n}, nil
	case ChartTreemap:
		return TreemapOptions{NumCategories: n}, nil
	case ChartHistogram:
		return HistogramOptions{NumBins: n}, nil
	case ChartChoropleth:
		return ChoroplethOptions{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedChartType, t)
}

// LetterLabels は "A", "B", ... の n 個のラベルを返します。
func LetterLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = string(rune('A' + i))
	}
	return labels
}

// SeriesLabels は "S1", "S2", ... の n 個のラベルを返します。
func SeriesLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("S%d", i+1)
	}
	return labels
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func checkCount(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrInvalidOptions, name, lo, hi, v)
	}
	return nil
}
