package generator

import (
	"fmt"

	"github.com/shouni/chart-image-kit/pkg/domain"
)

// GenerationError は1回の生成呼び出しの失敗を、種別・シード・段階とともに保持します。
type GenerationError struct {
	ChartType domain.ChartType
	Seed      int64
	Stage     Stage
	Err       error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s (seed=%d) の %s に失敗しました: %v", e.ChartType, e.Seed, e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
