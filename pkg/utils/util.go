package utils

import (
	"math/rand/v2"

	"github.com/shouni/chart-image-kit/pkg/imgutil"
)

// DereferenceSeed は、int64のポインタを安全にデリファレンスします。
// ポインタがnilの場合は0を返します。
func DereferenceSeed(seed *int64) int64 {
	if seed == nil {
		return 0
	}
	return *seed
}

// NewRand はシードから決定的な乱数生成器を作ります。
// 1回の生成呼び出しにつき1つ作り、全ての乱数をここから引きます。
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// RandInt は [lo, hi] の整数を一様に返します。両端を含みます。
func RandInt(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

// Uniform は [lo, hi) の実数を一様に返します。
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Choice は xs から要素を1つ一様に選びます。xs は空であってはいけません。
func Choice[T any](r *rand.Rand, xs []T) T {
	return xs[r.IntN(len(xs))]
}

// PastelRGBA は各チャンネルが [220, 255] の淡い不透明色を返します。
// R, G, B の順に3回乱数を引きます。
func PastelRGBA(r *rand.Rand) imgutil.RGBA {
	red := RandInt(r, 220, 255)
	green := RandInt(r, 220, 255)
	blue := RandInt(r, 220, 255)
	return imgutil.RGBA{R: uint8(red), G: uint8(green), B: uint8(blue), A: 1}
}
