package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/shouni/chart-image-kit/pkg/domain"
)

// SidecarPath は画像パスと同じディレクトリ・同じベース名の .json パスを返します。
func SidecarPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ".json"
}

// Write はレコードを2スペースでインデントした JSON として path に書き出します。
// ディレクトリは事前に存在している必要があります。既存のファイルは原子的に置き換えます。
func Write(path string, rec domain.ChartRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("メタデータのシリアライズに失敗しました: %w", err)
	}
	data = append(data, '\n')

	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("メタデータの書き込みに失敗しました (%s): %w", path, err)
	}
	return nil
}

// Read は Write で書き出したメタデータを読み込みます。
func Read(path string) (domain.ChartRecord, error) {
	var rec domain.ChartRecord
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, fmt.Errorf("メタデータの読み込みに失敗しました (%s): %w", path, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("メタデータの解析に失敗しました (%s): %w", path, err)
	}
	return rec, nil
}
