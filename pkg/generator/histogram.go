package generator

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/shouni/chart-image-kit/pkg/domain"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// sampleDistribution は指定された分布から n 個の値を引きます。
// bimodal は前半を N(30, 5)、後半を N(70, 5) から引きます。
func sampleDistribution(r *rand.Rand, dist domain.Distribution, n int) ([]float64, error) {
	var draw func(i int) float64
	switch dist {
	case domain.DistGaussian:
		d := distuv.Normal{Mu: 50, Sigma: 15, Src: r}
		draw = func(int) float64 { return d.Rand() }
	case domain.DistUniform:
		d := distuv.Uniform{Min: 0, Max: 100, Src: r}
		draw = func(int) float64 { return d.Rand() }
	case domain.DistExponential:
		d := distuv.Exponential{Rate: 1.0 / 30, Src: r}
		draw = func(int) float64 { return d.Rand() }
	case domain.DistBimodal:
		low := distuv.Normal{Mu: 30, Sigma: 5, Src: r}
		high := distuv.Normal{Mu: 70, Sigma: 5, Src: r}
		draw = func(i int) float64 {
			if i < n/2 {
				return low.Rand()
			}
			return high.Rand()
		}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedDistribution, dist)
	}

	samples := make([]float64, n)
	for i := range samples {
		samples[i] = draw(i)
	}
	return samples, nil
}

// binCounts は [min, max] を等幅に n 分割した各ビンのラベルと度数を返します。
// 最後のビンだけは上端を含みます。
// すべて同じ値の場合は描画側と同じく [x, x+1] の 1 ビンにまとめます。
func binCounts(samples []float64, n int) ([]string, []float64) {
	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		return []string{fmt.Sprintf("[%.2f, %.2f]", lo, lo+1)}, []float64{float64(len(sorted))}
	}
	edges := floats.Span(make([]float64, n+1), lo, hi)

	dividers := slices.Clone(edges)
	dividers[n] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, sorted, nil)

	labels := make([]string, n)
	for i := range labels {
		if i == n-1 {
			labels[i] = fmt.Sprintf("[%.2f, %.2f]", edges[i], edges[i+1])
			continue
		}
		labels[i] = fmt.Sprintf("[%.2f, %.2f)", edges[i], edges[i+1])
	}
	return labels, counts
}

func synthHistogram(r *rand.Rand, o domain.HistogramOptions, size Size) (plan, error) {
	samples, err := sampleDistribution(r, o.Distribution, o.NumValues)
	if err != nil {
		return plan{}, err
	}
	labels, counts := binCounts(samples, o.NumBins)
	valueLabel := labelOr(o.Labels.YLabel, "Value")

	return plan{
		spec: domain.ChartSpec{
			Mark:    domain.MarkHistogram,
			Width:   size.Width,
			Height:  size.Height,
			Title:   labelOr(o.Labels.Title, "Histogram of "+valueLabel),
			XTitle:  valueLabel,
			YTitle:  "Frequency",
			Samples: samples,
			Bins:    len(labels),
		},
		record: domain.ChartRecord{
			ChartType: domain.ChartHistogram,
			AnswerKey: domain.AnswerMaxBin,
			Answer:    labels[floats.MaxIdx(counts)],
			Variation: domain.Variation{
				Distribution: string(o.Distribution),
				NumBins:      o.NumBins,
				NumValues:    o.NumValues,
			},
		},
		overlay: true,
	}, nil
}
