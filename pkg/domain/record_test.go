package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartRecord_MarshalJSON(t *testing.T) {
	t.Run("答えのキーと answer の両方に同じ値が出力される", func(t *testing.T) {
		sorted := true
		rec := ChartRecord{
			Filename:  "bar_42.png",
			ChartType: ChartBar,
			AnswerKey: AnswerMaxCategory,
			Answer:    "C",
			Variation: Variation{ColorScheme: "dark2", Sorted: &sorted, Orientation: "vertical", NumBars: 4},
			Question:  "Which category has the highest value?",
		}

		data, err := json.Marshal(rec)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		assert.Equal(t, "C", m["max_category"])
		assert.Equal(t, "C", m["answer"])
		assert.Equal(t, "bar", m["chart_type"])

		variation := m["variation"].(map[string]any)
		assert.Equal(t, true, variation["sorted"])
		assert.NotContains(t, variation, "point_shape")
	})

	t.Run("キーは辞書順で安定している", func(t *testing.T) {
		rec := ChartRecord{Filename: "pie_1.png", ChartType: ChartPie, AnswerKey: AnswerMaxCategory, Answer: "A"}
		a, err := json.Marshal(rec)
		require.NoError(t, err)
		b, err := json.Marshal(rec)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b))
		assert.Regexp(t, `^\{"answer":.*"chart_type":.*"filename":.*"max_category":.*"question":.*"variation":`, string(a))
	})

	t.Run("答えのキーがない場合はエラー", func(t *testing.T) {
		_, err := json.Marshal(ChartRecord{ChartType: ChartBar})
		assert.Error(t, err)
	})
}

func TestChartRecord_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		rec  ChartRecord
	}{
		{"文字列の答え", ChartRecord{Filename: "treemap_3.png", ChartType: ChartTreemap, AnswerKey: AnswerMaxCategory, Answer: "B",
			Variation: Variation{NumCategories: 6, BackgroundColor: "rgba(230,240,250,1)"}}},
		{"整数の答え", ChartRecord{Filename: "line_3.png", ChartType: ChartLine, AnswerKey: AnswerMaxX, Answer: 7,
			Variation: Variation{Color: "#1f77b4", NumPoints: 10}}},
		{"小数の答え", ChartRecord{Filename: "scatter_3.png", ChartType: ChartScatter, AnswerKey: AnswerFarthestX, Answer: 87.25}},
		{"セグメントの答え", ChartRecord{Filename: "stacked_bar_100_3.png", ChartType: ChartStacked100, AnswerKey: AnswerMaxSegment,
			Answer: SegmentAnswer{Category: "C", Series: "S2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.rec)
			require.NoError(t, err)

			var got ChartRecord
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, tt.rec, got)
		})
	}

	t.Run("答えのキーがないメタデータはエラー", func(t *testing.T) {
		var got ChartRecord
		err := json.Unmarshal([]byte(`{"filename":"a.png","chart_type":"bar","answer":"A"}`), &got)
		assert.Error(t, err)
	})

	t.Run("未知のフィールドがあっても答えのキーを取り違えない", func(t *testing.T) {
		data := []byte(`{"filename":"bar_1.png","chart_type":"bar","answer":"C","max_category":"C",` +
			`"annotator":"alice","source_run":"r-42","z_extra":1}`)
		for i := 0; i < 20; i++ {
			var got ChartRecord
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, AnswerMaxCategory, got.AnswerKey)
			assert.Equal(t, "C", got.Answer)
		}
	})

	t.Run("答えのキーが 2 つあるメタデータはエラー", func(t *testing.T) {
		var got ChartRecord
		err := json.Unmarshal([]byte(`{"filename":"a.png","chart_type":"bar","answer":"A","max_category":"A","max_label":"A"}`), &got)
		assert.ErrorContains(t, err, "multiple answer keys")
	})

	t.Run("未知のキーだけでは答えのキーにならない", func(t *testing.T) {
		var got ChartRecord
		err := json.Unmarshal([]byte(`{"filename":"a.png","chart_type":"bar","answer":"A","best":"A"}`), &got)
		assert.ErrorContains(t, err, "answer key not found")
	})
}
