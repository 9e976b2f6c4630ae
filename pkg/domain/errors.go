package domain

import "errors"

var (
	// ErrUnsupportedChartType は未知のチャート種別が指定された場合に返されます。
	ErrUnsupportedChartType = errors.New("unsupported chart type")
	// ErrUnsupportedDistribution はヒストグラムの分布名が未知の場合に返されます。
	ErrUnsupportedDistribution = errors.New("unsupported distribution")
	// ErrInvalidOptions はオプションの値が範囲外の場合に返されます。
	ErrInvalidOptions = errors.New("invalid chart options")
)
