package generator

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/shouni/chart-image-kit/pkg/domain"
	"github.com/shouni/chart-image-kit/pkg/utils"
)

// labelOr は上書き値が空の場合に既定値を返すのだ。
func labelOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// resolveCategories は指定されたカテゴリ名の数が n と一致すればそれを使い、
// そうでなければ A, B, C... を生成するのだ。
func resolveCategories(ctx context.Context, given []string, n int) []string {
	if len(given) == n {
		return append([]string(nil), given...)
	}
	if len(given) > 0 {
		slog.WarnContext(ctx, "カテゴリ数が件数と一致しないため既定のラベルを使用します", "given", len(given), "want", n)
	}
	return domain.LetterLabels(n)
}

// randInts は [lo, hi] の整数を n 個引いて float64 で返すのだ。
func randInts(r *rand.Rand, n, lo, hi int) []float64 {
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = float64(utils.RandInt(r, lo, hi))
	}
	return vs
}

// uniforms は [lo, hi) の実数を n 個引くのだ。
func uniforms(r *rand.Rand, n int, lo, hi float64) []float64 {
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = utils.Uniform(r, lo, hi)
	}
	return vs
}

// positions は 1..n の横軸の値を返すのだ。
func positions(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	return xs
}

// categoryTotals は系列を横断したカテゴリごとの合計を返すのだ。
func categoryTotals(series []domain.Series, numCategories int) []float64 {
	totals := make([]float64, numCategories)
	for _, s := range series {
		for i, v := range s.Values {
			totals[i] += v
		}
	}
	return totals
}
