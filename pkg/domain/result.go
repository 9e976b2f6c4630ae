package domain

// ChartResult は生成されたチャート画像とメタデータの出力先です。
type ChartResult struct {
	ImagePath    string
	MetadataPath string
	Record       ChartRecord
	UsedSeed     int64 // 戻り値は情報欠落を防ぐため int64
}
