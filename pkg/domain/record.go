package domain

import (
	"encoding/json"
	"fmt"
)

// 答えのキー名。メタデータ上ではチャート種別ごとに1つだけ現れます。
const (
	AnswerMaxCategory = "max_category"
	AnswerFarthestX   = "farthest_x"
	AnswerMaxX        = "max_x"
	AnswerMaxLabel    = "max_label"
	AnswerMaxBin      = "max_bin"
	AnswerMaxState    = "max_state"
	AnswerMaxSegment  = "max_segment"
)

var answerKeys = []string{
	AnswerMaxCategory,
	AnswerFarthestX,
	AnswerMaxX,
	AnswerMaxLabel,
	AnswerMaxBin,
	AnswerMaxState,
	AnswerMaxSegment,
}

// SegmentAnswer は100%積み上げ棒グラフの最大セグメントです。
type SegmentAnswer struct {
	Category string `json:"category"`
	Series   string `json:"series"`
}

// Variation は描画時に選ばれたスタイルと件数の記録です。
// 種別に関係のない項目は出力されません。
type Variation struct {
	ColorScheme     string `json:"color_scheme,omitempty"`
	Color           string `json:"color,omitempty"`
	Sorted          *bool  `json:"sorted,omitempty"`
	Orientation     string `json:"orientation,omitempty"`
	PointShape      string `json:"point_shape,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	Distribution    string `json:"distribution,omitempty"`
	NumBars         int    `json:"num_bars,omitempty"`
	NumSlices       int    `json:"num_slices,omitempty"`
	NumPoints       int    `json:"num_points,omitempty"`
	NumSeries       int    `json:"num_series,omitempty"`
	NumCategories   int    `json:"num_categories,omitempty"`
	NumBins         int    `json:"num_bins,omitempty"`
	NumValues       int    `json:"num_values,omitempty"`
	NumStates       int    `json:"num_states,omitempty"`
}

// ChartRecord は画像1枚に対応するメタデータです。
// AnswerKey の名前で Answer と同じ値がもう一度出力されます。
type ChartRecord struct {
	Filename  string
	ChartType ChartType
	AnswerKey string
	Answer    any // string, int, float64 または SegmentAnswer
	Variation Variation
	Question  string
}

// MarshalJSON はキーを辞書順に並べたオブジェクトとして出力します。
func (r ChartRecord) MarshalJSON() ([]byte, error) {
	if r.AnswerKey == "" {
		return nil, fmt.Errorf("answer key is required for %s", r.ChartType)
	}
	m := map[string]any{
		"filename":   r.Filename,
		"chart_type": r.ChartType,
		"variation":  r.Variation,
		"question":   r.Question,
		"answer":     r.Answer,
		r.AnswerKey:  r.Answer,
	}
	return json.Marshal(m)
}

// UnmarshalJSON は MarshalJSON の出力を読み戻します。
func (r *ChartRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out ChartRecord
	fields := map[string]any{
		"filename":   &out.Filename,
		"chart_type": &out.ChartType,
		"variation":  &out.Variation,
		"question":   &out.Question,
	}
	for key, dst := range fields {
		if v, ok := raw[key]; ok {
			if err := json.Unmarshal(v, dst); err != nil {
				return fmt.Errorf("%s の読み込みに失敗しました: %w", key, err)
			}
		}
	}

	// 未知のキーは無視し、既知の答えのキーがちょうど 1 つあることを要求する
	var found []string
	for _, key := range answerKeys {
		if _, ok := raw[key]; ok {
			found = append(found, key)
		}
	}
	switch len(found) {
	case 0:
		return fmt.Errorf("answer key not found in metadata")
	case 1:
		out.AnswerKey = found[0]
	default:
		return fmt.Errorf("multiple answer keys in metadata: %v", found)
	}

	answer, err := decodeAnswer(out.AnswerKey, raw[out.AnswerKey])
	if err != nil {
		return err
	}
	out.Answer = answer
	*r = out
	return nil
}

func decodeAnswer(key string, data json.RawMessage) (any, error) {
	switch key {
	case AnswerMaxSegment:
		var v SegmentAnswer
		err := json.Unmarshal(data, &v)
		return v, err
	case AnswerMaxX:
		var v int
		err := json.Unmarshal(data, &v)
		return v, err
	case AnswerFarthestX:
		var v float64
		err := json.Unmarshal(data, &v)
		return v, err
	default:
		var v string
		err := json.Unmarshal(data, &v)
		return v, err
	}
}
